package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User represents an account in the system.
type User struct {
	gorm.Model
	Firstname    string `gorm:"size:255"`
	Lastname     string `gorm:"size:255"`
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`

	// RecommendationList holds the game-id ordering returned by the
	// scorer for the user's last preference submission. NULL until the
	// first submission; its presence is the onboarding-completion flag.
	RecommendationList pq.Int64Array `gorm:"column:preference_list;type:bigint[]"`

	// PreferenceVector is the raw 20-flag topic vector from the last
	// submission, stored in taxonomy order. Overwritten, not versioned.
	PreferenceVector pq.BoolArray `gorm:"column:preference_list1;type:boolean[]"`
}
