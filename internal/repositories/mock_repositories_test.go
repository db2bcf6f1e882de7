package repositories_test

import (
	"testing"
	"time"

	"moodbloom/internal/models"
	"moodbloom/internal/repositories"

	"github.com/stretchr/testify/assert"
)

// Both in-memory repositories must satisfy the same interfaces as the
// GORM ones so services can run against either.
var _ repositories.AccountRepository = (*repositories.MockAccountRepository)(nil)
var _ repositories.MoodRepository = (*repositories.MockMoodRepository)(nil)

func TestMockAccountRepository(t *testing.T) {
	repo := repositories.NewMockAccountRepository()

	account := &models.Account{Email: "a@example.com", Username: "alice", Password: "hash"}
	assert.NoError(t, repo.Create(account))
	assert.NotEmpty(t, account.ID, "Create assigns an ID")

	t.Run("lookups", func(t *testing.T) {
		byID, err := repo.GetByID(account.ID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)

		byEmail, err := repo.GetByEmail("a@example.com")
		assert.NoError(t, err)
		assert.Equal(t, account.ID, byEmail.ID)

		byUsername, err := repo.GetByUsername("alice")
		assert.NoError(t, err)
		assert.Equal(t, account.ID, byUsername.ID)

		matches, err := repo.FindByUsername("alice")
		assert.NoError(t, err)
		assert.Len(t, matches, 1)

		matches, err = repo.FindByUsername("nobody")
		assert.NoError(t, err)
		assert.Empty(t, matches)

		_, err = repo.GetByID("missing")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("counts", func(t *testing.T) {
		count, err := repo.CountByEmail("a@example.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.CountByUsername("free_name")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("update and delete", func(t *testing.T) {
		account.Nickname = "Ally"
		assert.NoError(t, repo.Update(account))
		updated, err := repo.GetByID(account.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Ally", updated.Nickname)

		assert.ErrorIs(t, repo.Update(&models.Account{ID: "missing"}), repositories.ErrNotFound)

		assert.NoError(t, repo.Delete(account.ID))
		_, err = repo.GetByID(account.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(account.ID), repositories.ErrNotFound)
	})
}

func TestMockMoodRepository_Range(t *testing.T) {
	repo := repositories.NewMockMoodRepository()
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	for day, mood := range map[int]int{0: 5, 1: 7, 2: 3, 9: 8} {
		entry := &models.MoodEntry{
			AccountID:  "acc-1",
			Mood:       mood,
			RecordedAt: base.AddDate(0, 0, day),
		}
		assert.NoError(t, repo.Create(entry))
	}
	// Another owner's entry in the same window stays invisible.
	assert.NoError(t, repo.Create(&models.MoodEntry{AccountID: "acc-2", Mood: 1, RecordedAt: base}))

	t.Run("bounds are inclusive and results newest first", func(t *testing.T) {
		entries, err := repo.GetByOwnerAndRange("acc-1", base, base.AddDate(0, 0, 2))
		assert.NoError(t, err)
		assert.Len(t, entries, 3)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].RecordedAt.After(entries[i-1].RecordedAt))
		}
	})

	t.Run("window excludes entries outside it", func(t *testing.T) {
		entries, err := repo.GetByOwnerAndRange("acc-1", base.AddDate(0, 0, 3), base.AddDate(0, 0, 8))
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("delete by owner clears only that owner", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByOwner("acc-1"))
		entries, err := repo.GetByOwnerAndRange("acc-1", base.AddDate(0, 0, -1), base.AddDate(0, 0, 10))
		assert.NoError(t, err)
		assert.Empty(t, entries)

		others, err := repo.GetByOwnerAndRange("acc-2", base.AddDate(0, 0, -1), base.AddDate(0, 0, 10))
		assert.NoError(t, err)
		assert.Len(t, others, 1)
	})
}
