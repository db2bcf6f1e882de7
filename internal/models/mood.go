package models

import (
	"time"

	"gorm.io/gorm"
)

// MoodEntry is a single timestamped self-reported mood value with an
// optional note. Entries belong exclusively to one Account.
//
// RecordedAt is set at creation time and is immutable afterwards; updates
// may change Mood and Note but RecordedAt remains the ordering key.
type MoodEntry struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	AccountID  string    `json:"account_id" gorm:"index;type:varchar(36)" validate:"required"`
	Mood       int       `json:"mood" validate:"required,min=1,max=10"`
	Note       string    `json:"note" gorm:"type:varchar(1000)" validate:"omitempty,max=1000"`
	RecordedAt time.Time `json:"recorded_at" gorm:"index"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// MoodStatistics aggregates a set of mood entries over a time window.
// Distribution bucket i counts entries with Mood == i+1.
type MoodStatistics struct {
	Count        int     `json:"count"`
	Average      float64 `json:"average"`
	Min          int     `json:"min"`
	Max          int     `json:"max"`
	Distribution [10]int `json:"distribution"`
}
