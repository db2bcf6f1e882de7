package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"moodbloom/internal/models"

	"github.com/google/uuid"
)

// MockMoodRepository is an in-memory implementation of MoodRepository.
type MockMoodRepository struct {
	entries map[string]models.MoodEntry
	mu      sync.RWMutex
}

// NewMockMoodRepository creates a new instance of MockMoodRepository.
func NewMockMoodRepository() *MockMoodRepository {
	return &MockMoodRepository{
		entries: make(map[string]models.MoodEntry),
	}
}

// Create adds a new mood entry.
func (r *MockMoodRepository) Create(entry *models.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries[entry.ID] = *entry
	return nil
}

// GetByID returns a mood entry by its ID.
func (r *MockMoodRepository) GetByID(id string) (*models.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("mood entry with ID %s: %w", id, ErrNotFound)
	}
	return &entry, nil
}

// GetByOwnerAndRange returns the owner's entries within [from, to],
// newest first.
func (r *MockMoodRepository) GetByOwnerAndRange(ownerID string, from, to time.Time) ([]models.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []models.MoodEntry
	for _, entry := range r.entries {
		if entry.AccountID != ownerID {
			continue
		}
		if entry.RecordedAt.Before(from) || entry.RecordedAt.After(to) {
			continue
		}
		matches = append(matches, entry)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].RecordedAt.After(matches[j].RecordedAt)
	})
	return matches, nil
}

// Update modifies an existing mood entry.
func (r *MockMoodRepository) Update(entry *models.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[entry.ID]
	if !ok {
		return fmt.Errorf("mood entry with ID %s for update: %w", entry.ID, ErrNotFound)
	}
	r.entries[entry.ID] = *entry
	return nil
}

// Delete removes a mood entry by its ID.
func (r *MockMoodRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("mood entry with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.entries, id)
	return nil
}

// DeleteByOwner removes every entry owned by the account.
func (r *MockMoodRepository) DeleteByOwner(ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.entries {
		if entry.AccountID == ownerID {
			delete(r.entries, id)
		}
	}
	return nil
}
