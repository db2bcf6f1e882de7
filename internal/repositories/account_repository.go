package repositories

import "moodbloom/internal/models"

// AccountRepository defines the interface for account directory access.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetByUsername(username string) (*models.Account, error)
	// FindByUsername returns every account matching the username so that
	// callers can detect violations of the uniqueness invariant.
	FindByUsername(username string) ([]models.Account, error)
	CountByEmail(email string) (int64, error)
	CountByUsername(username string) (int64, error)
	Update(account *models.Account) error
	Delete(id string) error
}
