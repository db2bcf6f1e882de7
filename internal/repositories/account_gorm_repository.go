package repositories

import (
	"errors"
	"fmt"

	"moodbloom/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAccountRepository is a GORM implementation of AccountRepository.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *GORMAccountRepository) Create(account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by its ID from the database.
func (r *GORMAccountRepository) GetByID(id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by ID %s: %w", id, err)
	}
	return &account, nil
}

// GetByEmail retrieves an account by its email from the database.
func (r *GORMAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by email %s: %w", email, err)
	}
	return &account, nil
}

// GetByUsername retrieves an account by its username from the database.
func (r *GORMAccountRepository) GetByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by username %s: %w", username, err)
	}
	return &account, nil
}

// FindByUsername retrieves every account matching the username.
// The uniqueIndex on username means more than one result signals a
// corrupted directory; callers are expected to log that case.
func (r *GORMAccountRepository) FindByUsername(username string) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Find(&accounts, "username = ?", username).Error; err != nil {
		return nil, fmt.Errorf("failed to find accounts by username %s: %w", username, err)
	}
	return accounts, nil
}

// CountByEmail counts accounts registered with the given email.
func (r *GORMAccountRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts by email: %w", err)
	}
	return count, nil
}

// CountByUsername counts accounts registered with the given username.
func (r *GORMAccountRepository) CountByUsername(username string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts by username: %w", err)
	}
	return count, nil
}

// Update updates an existing account in the database.
func (r *GORMAccountRepository) Update(account *models.Account) error {
	res := r.db.Save(account) // Save updates all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account with ID %s for update: %w", account.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes an account by its ID from the database.
func (r *GORMAccountRepository) Delete(id string) error {
	res := r.db.Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}
