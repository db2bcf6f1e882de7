package services

import (
	"log"
	"strings"

	"moodbloom/internal/repositories"
	"moodbloom/internal/validation"
)

// Field selects which unique account attribute an availability check
// targets.
type Field string

const (
	FieldEmail    Field = "email"
	FieldUsername Field = "username"
)

// AvailabilityState is a three-valued answer: a failed directory query
// yields Unknown, never Taken, so sign-up is not blocked on an
// indeterminate result and never falsely claims a value is in use.
type AvailabilityState string

const (
	Unknown   AvailabilityState = "unknown"
	Available AvailabilityState = "available"
	Taken     AvailabilityState = "taken"
)

// Availability is the result of a single availability check.
type Availability struct {
	Field     Field             `json:"field"`
	Value     string            `json:"value"`
	Valid     bool              `json:"valid"`
	Available AvailabilityState `json:"available"`
	Message   string            `json:"message,omitempty"`
}

// AvailabilityService answers whether a candidate email or username is
// well-formed and not already registered. Format problems are settled
// locally; only a valid value costs a directory query.
type AvailabilityService struct {
	accountRepo repositories.AccountRepository
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(accountRepo repositories.AccountRepository) *AvailabilityService {
	return &AvailabilityService{
		accountRepo: accountRepo,
	}
}

// Check validates the candidate value and, when valid, issues one
// directory query for it. Safe to call repeatedly; callers doing
// interactive checks should debounce with Debouncer.
func (s *AvailabilityService) Check(field Field, value string) Availability {
	value = strings.ToLower(strings.TrimSpace(value))
	result := Availability{Field: field, Value: value, Available: Unknown}

	switch field {
	case FieldEmail:
		if !validation.IsValidEmail(value) {
			result.Message = "Please enter a valid email address"
			return result
		}
	case FieldUsername:
		if ok, message := validation.ValidateUsername(value); !ok {
			result.Message = message
			return result
		}
	default:
		result.Message = "Unknown field"
		return result
	}
	result.Valid = true

	var (
		count int64
		err   error
	)
	if field == FieldEmail {
		count, err = s.accountRepo.CountByEmail(value)
	} else {
		count, err = s.accountRepo.CountByUsername(value)
	}
	if err != nil {
		// Indeterminate, not taken. The caller must not block on this.
		log.Printf("Availability check for %s %q failed: %v", field, value, err)
		result.Message = "Could not verify availability, please try again"
		return result
	}

	if count == 0 {
		result.Available = Available
	} else {
		result.Available = Taken
		if field == FieldEmail {
			result.Message = "This email is already registered"
		} else {
			result.Message = "This username is already taken"
		}
	}
	return result
}
