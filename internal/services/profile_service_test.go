package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"moodbloom/internal/models"
	"moodbloom/internal/services"
	"moodbloom/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProfileService_UpdateProfile(t *testing.T) {
	t.Run("updates nickname and bio", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		profileService := services.NewProfileService(mockRepo, storage.NewMemoryStore())

		account := &models.Account{ID: "acc-1", Username: "alice", Nickname: "alice"}
		mockRepo.On("GetByID", "acc-1").Return(account, nil).Once()
		mockRepo.On("Update", mock.AnythingOfType("*models.Account")).Return(nil).Once()

		updated, err := profileService.UpdateProfile("acc-1", "Ally", "hello there")
		assert.NoError(t, err)
		assert.Equal(t, "Ally", updated.Nickname)
		assert.Equal(t, "hello there", updated.Bio)
		mockRepo.AssertExpectations(t)
	})

	t.Run("clearing the nickname falls back to the username", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		profileService := services.NewProfileService(mockRepo, storage.NewMemoryStore())

		account := &models.Account{ID: "acc-1", Username: "alice", Nickname: "Ally"}
		mockRepo.On("GetByID", "acc-1").Return(account, nil).Once()
		mockRepo.On("Update", mock.AnythingOfType("*models.Account")).Return(nil).Once()

		updated, err := profileService.UpdateProfile("acc-1", "", "")
		assert.NoError(t, err)
		assert.Equal(t, "alice", updated.Nickname)
		mockRepo.AssertExpectations(t)
	})
}

func drainProgress(t *testing.T, progress <-chan storage.Progress) storage.Progress {
	t.Helper()
	var terminal storage.Progress
	sawTerminal := false
	timeout := time.After(5 * time.Second)
	for {
		select {
		case update, open := <-progress:
			if !open {
				assert.True(t, sawTerminal, "channel closed without a terminal element")
				return terminal
			}
			if update.Done {
				terminal = update
				sawTerminal = true
			}
		case <-timeout:
			t.Fatal("progress channel did not finish")
		}
	}
}

func TestProfileService_UploadAvatar(t *testing.T) {
	t.Run("streams the file and finishes with the avatar URL", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		store := storage.NewMemoryStore()
		profileService := services.NewProfileService(mockRepo, store)

		account := &models.Account{ID: "acc-1", Username: "alice"}
		mockRepo.On("GetByID", "acc-1").Return(account, nil).Once()
		mockRepo.On("Update", mock.AnythingOfType("*models.Account")).Return(nil).Once()

		data := "fake image bytes"
		progress := profileService.UploadAvatar(context.Background(), "acc-1", "me.png",
			strings.NewReader(data), int64(len(data)), "image/png")

		terminal := drainProgress(t, progress)
		assert.NoError(t, terminal.Err)
		assert.NotEmpty(t, terminal.URL)
		assert.Equal(t, 1.0, terminal.Fraction)

		assert.Equal(t, terminal.URL, account.AvatarURL)
		assert.NotEmpty(t, account.AvatarKey)
		assert.True(t, strings.HasPrefix(account.AvatarKey, "avatars/acc-1/"))
		assert.True(t, strings.HasSuffix(account.AvatarKey, ".png"))

		stored, ok := store.Get(account.AvatarKey)
		assert.True(t, ok)
		assert.Equal(t, data, string(stored))
		mockRepo.AssertExpectations(t)
	})

	t.Run("replacing an avatar deletes the previous object", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		store := storage.NewMemoryStore()
		profileService := services.NewProfileService(mockRepo, store)

		oldURL, err := store.Upload(context.Background(), "avatars/acc-1/old.png",
			strings.NewReader("old"), 3, "image/png")
		assert.NoError(t, err)

		account := &models.Account{ID: "acc-1", Username: "alice", AvatarURL: oldURL, AvatarKey: "avatars/acc-1/old.png"}
		mockRepo.On("GetByID", "acc-1").Return(account, nil).Once()
		mockRepo.On("Update", mock.AnythingOfType("*models.Account")).Return(nil).Once()

		data := "new image"
		progress := profileService.UploadAvatar(context.Background(), "acc-1", "new.jpg",
			strings.NewReader(data), int64(len(data)), "image/jpeg")

		terminal := drainProgress(t, progress)
		assert.NoError(t, terminal.Err)

		_, ok := store.Get("avatars/acc-1/old.png")
		assert.False(t, ok, "old object should be gone")
		_, ok = store.Get(account.AvatarKey)
		assert.True(t, ok)
		mockRepo.AssertExpectations(t)
	})

	t.Run("a failed lookup surfaces as the terminal element", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		profileService := services.NewProfileService(mockRepo, storage.NewMemoryStore())

		mockRepo.On("GetByID", "acc-missing").Return(nil, assert.AnError).Once()

		progress := profileService.UploadAvatar(context.Background(), "acc-missing", "me.png",
			strings.NewReader("x"), 1, "image/png")

		terminal := drainProgress(t, progress)
		assert.Error(t, terminal.Err)
		assert.Empty(t, terminal.URL)
		mockRepo.AssertExpectations(t)
	})
}

func TestProfileService_RemoveAvatar(t *testing.T) {
	t.Run("clears the reference and deletes the object", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		store := storage.NewMemoryStore()
		profileService := services.NewProfileService(mockRepo, store)

		_, err := store.Upload(context.Background(), "avatars/acc-1/pic.png",
			strings.NewReader("pic"), 3, "image/png")
		assert.NoError(t, err)

		account := &models.Account{ID: "acc-1", AvatarURL: "mem://avatars/acc-1/pic.png", AvatarKey: "avatars/acc-1/pic.png"}
		mockRepo.On("GetByID", "acc-1").Return(account, nil).Once()
		mockRepo.On("Update", mock.AnythingOfType("*models.Account")).Return(nil).Once()

		assert.NoError(t, profileService.RemoveAvatar(context.Background(), "acc-1"))
		assert.Empty(t, account.AvatarURL)
		assert.Empty(t, account.AvatarKey)

		_, ok := store.Get("avatars/acc-1/pic.png")
		assert.False(t, ok)
		mockRepo.AssertExpectations(t)
	})

	t.Run("no avatar set is a no-op", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		profileService := services.NewProfileService(mockRepo, storage.NewMemoryStore())

		mockRepo.On("GetByID", "acc-1").Return(&models.Account{ID: "acc-1"}, nil).Once()

		assert.NoError(t, profileService.RemoveAvatar(context.Background(), "acc-1"))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})
}
