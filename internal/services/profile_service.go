package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"moodbloom/internal/models"
	"moodbloom/internal/repositories"
	"moodbloom/internal/storage"

	"github.com/google/uuid"
)

// ProfileService handles profile reads and updates, including avatar
// uploads to the blob store.
type ProfileService struct {
	accountRepo repositories.AccountRepository
	store       storage.BlobStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(accountRepo repositories.AccountRepository, store storage.BlobStore) *ProfileService {
	return &ProfileService{
		accountRepo: accountRepo,
		store:       store,
	}
}

// Get retrieves the account backing a profile.
func (s *ProfileService) Get(accountID string) (*models.Account, error) {
	return s.accountRepo.GetByID(accountID)
}

// UpdateProfile changes nickname and bio. Clearing the nickname falls
// back to the username, the same default used at registration.
func (s *ProfileService) UpdateProfile(accountID, nickname, bio string) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	if nickname == "" {
		nickname = account.Username
	}
	account.Nickname = nickname
	account.Bio = bio

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return account, nil
}

// UploadAvatar streams a new profile image to the blob store and returns
// a progress channel: intermediate elements carry the uploaded fraction,
// the final element has Done set with the avatar URL or the error. The
// channel is closed after the terminal element. Cancelling ctx aborts the
// upload.
//
// The previous avatar object is deleted only after the account record
// points at the new one.
func (s *ProfileService) UploadAvatar(ctx context.Context, accountID, filename string, r io.Reader, size int64, contentType string) <-chan storage.Progress {
	progress := make(chan storage.Progress, 16)

	go func() {
		defer close(progress)

		fail := func(err error) {
			progress <- storage.Progress{Err: err, Done: true}
		}

		account, err := s.accountRepo.GetByID(accountID)
		if err != nil {
			fail(err)
			return
		}

		key := avatarKey(accountID, filename)
		reader := storage.NewProgressReader(r, size, func(fraction float64) {
			// Drop updates the consumer has not kept up with; the
			// terminal element is the only one that must arrive.
			select {
			case progress <- storage.Progress{Fraction: fraction}:
			default:
			}
		})

		url, err := s.store.Upload(ctx, key, reader, size, contentType)
		if err != nil {
			fail(fmt.Errorf("failed to upload avatar: %w", err))
			return
		}

		oldKey := account.AvatarKey
		account.AvatarURL = url
		account.AvatarKey = key
		if err := s.accountRepo.Update(account); err != nil {
			fail(fmt.Errorf("failed to store avatar reference: %w", err))
			return
		}

		if oldKey != "" {
			if err := s.store.Delete(ctx, oldKey); err != nil {
				log.Printf("Warning: failed to delete old avatar %s: %v", oldKey, err)
			}
		}

		progress <- storage.Progress{Fraction: 1, URL: url, Done: true}
	}()

	return progress
}

// RemoveAvatar clears the profile image and deletes the stored object.
func (s *ProfileService) RemoveAvatar(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if account.AvatarKey == "" {
		return nil
	}

	key := account.AvatarKey
	account.AvatarURL = ""
	account.AvatarKey = ""
	if err := s.accountRepo.Update(account); err != nil {
		return fmt.Errorf("failed to clear avatar reference: %w", err)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		log.Printf("Warning: failed to delete avatar %s: %v", key, err)
	}
	return nil
}

// avatarKey builds a per-account storage key that keeps the original
// extension and never collides across uploads.
func avatarKey(accountID, filename string) string {
	d := time.Now()
	return fmt.Sprintf("avatars/%s/%d/%d/%s%s", accountID, d.Year(), d.Month(), uuid.New(), path.Ext(filename))
}
