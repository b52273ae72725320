package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		totalXP int
		level   int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{115, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForXP(tc.totalXP), "totalXP=%d", tc.totalXP)
	}
}

func TestLevelForXPNegativeClampsToFirstLevel(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(-50))
}
