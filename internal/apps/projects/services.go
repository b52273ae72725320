package projects

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidStatus   = errors.New("invalid project status")
	ErrInvalidPrivacy  = errors.New("invalid privacy level")
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) GetProjects(userID uuid.UUID) ([]Project, error) {
	var projects []Project
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) CreateProject(userID uuid.UUID, req CreateProjectRequest) (*Project, error) {
	privacy := req.PrivacyLevel
	if privacy == "" {
		privacy = "private"
	}
	if !contains(PrivacyLevels, privacy) {
		return nil, ErrInvalidPrivacy
	}

	project := Project{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       "active",
		PrivacyLevel: privacy,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (s *ProjectService) UpdateProject(userID uuid.UUID, projectID uuid.UUID, req UpdateProjectRequest) (*Project, error) {
	project, err := s.getOwned(userID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		if !contains(ProjectStatuses, *req.Status) {
			return nil, ErrInvalidStatus
		}
		project.Status = *req.Status
	}
	if req.PrivacyLevel != nil {
		if !contains(PrivacyLevels, *req.PrivacyLevel) {
			return nil, ErrInvalidPrivacy
		}
		project.PrivacyLevel = *req.PrivacyLevel
	}

	if err := s.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(userID uuid.UUID, projectID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", projectID, userID).Delete(&Project{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return tx.Where("project_id = ?", projectID).Delete(&Task{}).Error
	})
}

func (s *ProjectService) GetTasks(userID uuid.UUID, projectID uuid.UUID) ([]Task, error) {
	if _, err := s.getOwned(userID, projectID); err != nil {
		return nil, err
	}
	var tasks []Task
	err := s.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *ProjectService) CreateTask(userID uuid.UUID, projectID uuid.UUID, req CreateTaskRequest) (*Task, error) {
	if _, err := s.getOwned(userID, projectID); err != nil {
		return nil, err
	}

	task := Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// ToggleTask flips completion, stamping completed_at on completion and
// clearing it on revert.
func (s *ProjectService) ToggleTask(userID uuid.UUID, taskID uuid.UUID) (*Task, error) {
	var task Task
	err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Completed = !task.Completed
	if task.Completed {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.db.Save(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return &task, nil
}

func (s *ProjectService) DeleteTask(userID uuid.UUID, taskID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", taskID, userID).Delete(&Task{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// GetProgress computes the completed-task percentage for a project. An
// empty project reports zero percent.
func (s *ProjectService) GetProgress(userID uuid.UUID, projectID uuid.UUID) (*ProgressResponse, error) {
	if _, err := s.getOwned(userID, projectID); err != nil {
		return nil, err
	}

	var total, completed int64
	if err := s.db.Model(&Task{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	if err := s.db.Model(&Task{}).Where("project_id = ? AND completed = true", projectID).Count(&completed).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	progress := &ProgressResponse{Total: int(total), Completed: int(completed)}
	if total > 0 {
		progress.Percent = int(completed * 100 / total)
	}
	return progress, nil
}

func (s *ProjectService) getOwned(userID uuid.UUID, projectID uuid.UUID) (*Project, error) {
	var project Project
	err := s.db.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
