package repositories

import (
	"fmt"
	"sync"

	"moodbloom/internal/models"

	"github.com/google/uuid"
)

// MockAccountRepository is an in-memory implementation of AccountRepository.
type MockAccountRepository struct {
	accounts map[string]models.Account
	mu       sync.RWMutex
}

// NewMockAccountRepository creates a new instance of MockAccountRepository.
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]models.Account),
	}
}

// Create adds a new account.
func (r *MockAccountRepository) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	r.accounts[account.ID] = *account
	return nil
}

// GetByID returns an account by its ID.
func (r *MockAccountRepository) GetByID(id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account with ID %s: %w", id, ErrNotFound)
	}
	return &account, nil
}

// GetByEmail returns an account by its email.
func (r *MockAccountRepository) GetByEmail(email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Email == email {
			a := account
			return &a, nil
		}
	}
	return nil, fmt.Errorf("account with email %s: %w", email, ErrNotFound)
}

// GetByUsername returns an account by its username.
func (r *MockAccountRepository) GetByUsername(username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Username == username {
			a := account
			return &a, nil
		}
	}
	return nil, fmt.Errorf("account with username %s: %w", username, ErrNotFound)
}

// FindByUsername returns every account matching the username.
func (r *MockAccountRepository) FindByUsername(username string) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []models.Account
	for _, account := range r.accounts {
		if account.Username == username {
			matches = append(matches, account)
		}
	}
	return matches, nil
}

// CountByEmail counts accounts registered with the given email.
func (r *MockAccountRepository) CountByEmail(email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, account := range r.accounts {
		if account.Email == email {
			count++
		}
	}
	return count, nil
}

// CountByUsername counts accounts registered with the given username.
func (r *MockAccountRepository) CountByUsername(username string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, account := range r.accounts {
		if account.Username == username {
			count++
		}
	}
	return count, nil
}

// Update modifies an existing account.
func (r *MockAccountRepository) Update(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.accounts[account.ID]
	if !ok {
		return fmt.Errorf("account with ID %s for update: %w", account.ID, ErrNotFound)
	}
	r.accounts[account.ID] = *account
	return nil
}

// Delete removes an account by its ID.
func (r *MockAccountRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.accounts, id)
	return nil
}
