package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"moodbloom/internal/models"
	"moodbloom/internal/repositories"
)

// Period names a relative time window ending now.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// MoodService handles business logic for the mood journal: recording,
// querying, updating and aggregating a user's mood entries.
type MoodService struct {
	moodRepo repositories.MoodRepository
	events   EventPublisher
}

// NewMoodService creates a new MoodService.
func NewMoodService(moodRepo repositories.MoodRepository, events EventPublisher) *MoodService {
	return &MoodService{
		moodRepo: moodRepo,
		events:   events,
	}
}

// Record stores a new mood entry for the owner. A zero recordedAt defaults
// to now; the value is immutable afterwards.
func (s *MoodService) Record(ownerID string, mood int, note string, recordedAt time.Time) (*models.MoodEntry, error) {
	if mood < 1 || mood > 10 {
		return nil, fmt.Errorf("mood must be between 1 and 10, got %d", mood)
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	entry := &models.MoodEntry{
		AccountID:  ownerID,
		Mood:       mood,
		Note:       note,
		RecordedAt: recordedAt,
	}
	if err := s.moodRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to record mood: %w", err)
	}

	if s.events != nil {
		body, err := json.Marshal(map[string]interface{}{
			"entryID":   entry.ID,
			"accountID": entry.AccountID,
			"mood":      entry.Mood,
		})
		if err != nil {
			log.Printf("Failed to marshal mood.recorded event: %v", err)
		} else if err := s.events.Publish("moodbloom", "mood.recorded", body); err != nil {
			log.Printf("Warning: failed to publish mood.recorded event for entry %s: %v", entry.ID, err)
		}
	}
	return entry, nil
}

// GetEntry retrieves a single entry, hiding entries owned by other
// accounts behind the same not-found error as missing ones.
func (s *MoodService) GetEntry(ownerID, entryID string) (*models.MoodEntry, error) {
	entry, err := s.moodRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry.AccountID != ownerID {
		return nil, fmt.Errorf("mood entry with ID %s: %w", entryID, repositories.ErrNotFound)
	}
	return entry, nil
}

// UpdateEntry changes the mood value and note of an owned entry.
// RecordedAt is the ordering key and is never modified.
func (s *MoodService) UpdateEntry(ownerID, entryID string, mood int, note string) (*models.MoodEntry, error) {
	if mood < 1 || mood > 10 {
		return nil, fmt.Errorf("mood must be between 1 and 10, got %d", mood)
	}

	entry, err := s.GetEntry(ownerID, entryID)
	if err != nil {
		return nil, err
	}
	entry.Mood = mood
	entry.Note = note

	if err := s.moodRepo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update mood entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes an owned entry.
func (s *MoodService) DeleteEntry(ownerID, entryID string) error {
	if _, err := s.GetEntry(ownerID, entryID); err != nil {
		return err
	}
	return s.moodRepo.Delete(entryID)
}

// EntriesInRange returns the owner's entries recorded within [from, to],
// both bounds inclusive, newest first.
func (s *MoodService) EntriesInRange(ownerID string, from, to time.Time) ([]models.MoodEntry, error) {
	return s.moodRepo.GetByOwnerAndRange(ownerID, from, to)
}

// RecentEntries returns entries from the last 7 days. The window is
// computed at call time, not stored.
func (s *MoodService) RecentEntries(ownerID string) ([]models.MoodEntry, error) {
	now := time.Now()
	return s.moodRepo.GetByOwnerAndRange(ownerID, now.AddDate(0, 0, -7), now)
}

// Statistics aggregates the owner's entries over [from, to].
func (s *MoodService) Statistics(ownerID string, from, to time.Time) (models.MoodStatistics, error) {
	entries, err := s.moodRepo.GetByOwnerAndRange(ownerID, from, to)
	if err != nil {
		return models.MoodStatistics{}, err
	}
	return ComputeStatistics(entries), nil
}

// RangeForPeriod returns the [from, to] window for a named period ending
// now. Unrecognized periods default to a week.
func RangeForPeriod(period Period) (time.Time, time.Time) {
	now := time.Now()
	switch period {
	case PeriodMonth:
		return now.AddDate(0, -1, 0), now
	case PeriodYear:
		return now.AddDate(-1, 0, 0), now
	default:
		return now.AddDate(0, 0, -7), now
	}
}

// ComputeStatistics computes count, average, min, max and the 10-bucket
// mood distribution for a set of entries. Pure and order-independent: the
// zero value of every field is returned for an empty input, so there is
// no division by zero.
func ComputeStatistics(entries []models.MoodEntry) models.MoodStatistics {
	stats := models.MoodStatistics{Count: len(entries)}
	if stats.Count == 0 {
		return stats
	}

	sum := 0
	stats.Min = entries[0].Mood
	stats.Max = entries[0].Mood
	for _, entry := range entries {
		sum += entry.Mood
		if entry.Mood < stats.Min {
			stats.Min = entry.Mood
		}
		if entry.Mood > stats.Max {
			stats.Max = entry.Mood
		}
		if entry.Mood >= 1 && entry.Mood <= 10 {
			stats.Distribution[entry.Mood-1]++
		}
	}
	stats.Average = float64(sum) / float64(stats.Count)
	return stats
}
