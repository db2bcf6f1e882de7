package services_test

import (
	"time"

	"moodbloom/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of repositories.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(account *models.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(id string) (*models.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(email string) (*models.Account, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(username string) (*models.Account, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(username string) ([]models.Account, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountRepository) CountByEmail(email string) (int64, error) {
	args := m.Called(email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) CountByUsername(username string) (int64, error) {
	args := m.Called(username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Update(account *models.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockMoodRepository is a mock implementation of repositories.MoodRepository
type MockMoodRepository struct {
	mock.Mock
}

func (m *MockMoodRepository) Create(entry *models.MoodEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockMoodRepository) GetByID(id string) (*models.MoodEntry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MoodEntry), args.Error(1)
}

func (m *MockMoodRepository) GetByOwnerAndRange(ownerID string, from, to time.Time) ([]models.MoodEntry, error) {
	args := m.Called(ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MoodEntry), args.Error(1)
}

func (m *MockMoodRepository) Update(entry *models.MoodEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockMoodRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMoodRepository) DeleteByOwner(ownerID string) error {
	args := m.Called(ownerID)
	return args.Error(0)
}

// MockMailer records password reset mails.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(toEmail, token string) error {
	args := m.Called(toEmail, token)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}
