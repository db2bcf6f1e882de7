package repositories

import (
	"time"

	"moodbloom/internal/models"
)

// MoodRepository defines the interface for mood entry data access.
// Entries are owned by a single account; every query is owner-scoped.
type MoodRepository interface {
	Create(entry *models.MoodEntry) error
	GetByID(id string) (*models.MoodEntry, error)
	// GetByOwnerAndRange returns the owner's entries with RecordedAt within
	// [from, to] (both bounds inclusive), ordered by RecordedAt descending.
	GetByOwnerAndRange(ownerID string, from, to time.Time) ([]models.MoodEntry, error)
	Update(entry *models.MoodEntry) error
	Delete(id string) error
	DeleteByOwner(ownerID string) error
}
