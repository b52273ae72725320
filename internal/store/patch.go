package store

import (
	"time"

	"github.com/soulquest-app/soulquest-backend/internal/models"
)

// UserPatch is a partial update of a User row. Nil fields are left untouched;
// for nullable columns an explicitly set empty string clears the column.
type UserPatch struct {
	Username   *string
	FirstName  *string
	LastName   *string
	AvatarURL  *string
	Level      *int
	TotalXP    *int
	StreakDays *int
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.FirstName == nil && p.LastName == nil &&
		p.AvatarURL == nil && p.Level == nil && p.TotalXP == nil && p.StreakDays == nil
}

// Fields renders the patch as a column map for GORM Updates.
func (p UserPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Username != nil {
		fields["username"] = nullable(p.Username)
	}
	if p.FirstName != nil {
		fields["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		fields["last_name"] = nullable(p.LastName)
	}
	if p.AvatarURL != nil {
		fields["avatar_url"] = nullable(p.AvatarURL)
	}
	if p.Level != nil {
		fields["level"] = *p.Level
	}
	if p.TotalXP != nil {
		fields["total_xp"] = *p.TotalXP
	}
	if p.StreakDays != nil {
		fields["streak_days"] = *p.StreakDays
	}
	return fields
}

// Apply patches the in-memory copy directly. Used for the optimistic local
// patch when a remote write fails and for the local-fallback mode.
func (p UserPatch) Apply(user *models.User, now time.Time) {
	if p.Username != nil {
		user.Username = nullable(p.Username)
	}
	if p.FirstName != nil {
		user.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		user.LastName = nullable(p.LastName)
	}
	if p.AvatarURL != nil {
		user.AvatarURL = nullable(p.AvatarURL)
	}
	if p.Level != nil {
		user.Level = *p.Level
	}
	if p.TotalXP != nil {
		user.TotalXP = *p.TotalXP
	}
	if p.StreakDays != nil {
		user.StreakDays = *p.StreakDays
	}
	user.UpdatedAt = now
}

// ProfilePatch is a partial update of a UserProfile row.
type ProfilePatch struct {
	Bio                *string
	City               *string
	BirthDate          *time.Time
	ZodiacSign         *string
	Profession         *string
	MBTIType           *string
	HumanDesignType    *string
	HumanDesignProfile *string
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Bio == nil && p.City == nil && p.BirthDate == nil &&
		p.ZodiacSign == nil && p.Profession == nil && p.MBTIType == nil &&
		p.HumanDesignType == nil && p.HumanDesignProfile == nil
}

func (p ProfilePatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Bio != nil {
		fields["bio"] = nullable(p.Bio)
	}
	if p.City != nil {
		fields["city"] = nullable(p.City)
	}
	if p.BirthDate != nil {
		fields["birth_date"] = *p.BirthDate
	}
	if p.ZodiacSign != nil {
		fields["zodiac_sign"] = nullable(p.ZodiacSign)
	}
	if p.Profession != nil {
		fields["profession"] = nullable(p.Profession)
	}
	if p.MBTIType != nil {
		fields["mbti_type"] = nullable(p.MBTIType)
	}
	if p.HumanDesignType != nil {
		fields["human_design_type"] = nullable(p.HumanDesignType)
	}
	if p.HumanDesignProfile != nil {
		fields["human_design_profile"] = nullable(p.HumanDesignProfile)
	}
	return fields
}

func (p ProfilePatch) Apply(profile *models.UserProfile, now time.Time) {
	if p.Bio != nil {
		profile.Bio = nullable(p.Bio)
	}
	if p.City != nil {
		profile.City = nullable(p.City)
	}
	if p.BirthDate != nil {
		profile.BirthDate = p.BirthDate
	}
	if p.ZodiacSign != nil {
		profile.ZodiacSign = nullable(p.ZodiacSign)
	}
	if p.Profession != nil {
		profile.Profession = nullable(p.Profession)
	}
	if p.MBTIType != nil {
		profile.MBTIType = nullable(p.MBTIType)
	}
	if p.HumanDesignType != nil {
		profile.HumanDesignType = nullable(p.HumanDesignType)
	}
	if p.HumanDesignProfile != nil {
		profile.HumanDesignProfile = nullable(p.HumanDesignProfile)
	}
	profile.UpdatedAt = now
}

func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
