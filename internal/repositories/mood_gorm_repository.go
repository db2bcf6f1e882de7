package repositories

import (
	"errors"
	"fmt"
	"time"

	"moodbloom/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMoodRepository is a GORM implementation of MoodRepository.
type GORMMoodRepository struct {
	db *gorm.DB
}

// NewGORMMoodRepository creates a new instance of GORMMoodRepository.
func NewGORMMoodRepository(db *gorm.DB) *GORMMoodRepository {
	return &GORMMoodRepository{
		db: db,
	}
}

// Create creates a new mood entry in the database.
func (r *GORMMoodRepository) Create(entry *models.MoodEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create mood entry: %w", err)
	}
	return nil
}

// GetByID retrieves a single mood entry by its ID from the database.
func (r *GORMMoodRepository) GetByID(id string) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mood entry with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get mood entry by ID %s: %w", id, err)
	}
	return &entry, nil
}

// GetByOwnerAndRange retrieves the owner's entries recorded within
// [from, to], newest first.
func (r *GORMMoodRepository) GetByOwnerAndRange(ownerID string, from, to time.Time) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := r.db.
		Where("account_id = ? AND recorded_at >= ? AND recorded_at <= ?", ownerID, from, to).
		Order("recorded_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries for account %s: %w", ownerID, err)
	}
	return entries, nil
}

// Update updates an existing mood entry in the database.
func (r *GORMMoodRepository) Update(entry *models.MoodEntry) error {
	res := r.db.Save(entry)
	if res.Error != nil {
		return fmt.Errorf("failed to update mood entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mood entry with ID %s for update: %w", entry.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a mood entry by its ID from the database.
func (r *GORMMoodRepository) Delete(id string) error {
	res := r.db.Delete(&models.MoodEntry{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete mood entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mood entry with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByOwner removes every entry owned by the account. Used when the
// account itself is deleted.
func (r *GORMMoodRepository) DeleteByOwner(ownerID string) error {
	if err := r.db.Delete(&models.MoodEntry{}, "account_id = ?", ownerID).Error; err != nil {
		return fmt.Errorf("failed to delete mood entries for account %s: %w", ownerID, err)
	}
	return nil
}
