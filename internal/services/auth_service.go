package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"moodbloom/internal/models"
	"moodbloom/internal/repositories"
	"moodbloom/internal/validation"
	"moodbloom/pkg/mailer"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization:
// registration, email-or-username login, password reset, re-authentication
// and account deletion.
type AuthService struct {
	accountRepo repositories.AccountRepository
	moodRepo    repositories.MoodRepository
	events      EventPublisher
	mail        mailer.Mailer
	broker      *SessionBroker
	jwtSecret   []byte
	tokenDurat  time.Duration // Duration for which a session JWT is valid
	resetDurat  time.Duration // Duration for which a reset token is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(accountRepo repositories.AccountRepository, moodRepo repositories.MoodRepository,
	events EventPublisher, mail mailer.Mailer, broker *SessionBroker, jwtSecret string) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		moodRepo:    moodRepo,
		events:      events,
		mail:        mail,
		broker:      broker,
		jwtSecret:   []byte(jwtSecret),
		tokenDurat:  24 * time.Hour,
		resetDurat:  time.Hour,
	}
}

// NormalizeIdentifier prepares a user-entered login identifier for
// resolution: surrounding whitespace is dropped and the value lowercased.
// Emails and usernames are both stored lowercase, so lookups stay
// case-insensitive regardless of how the user typed the value.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// ResolveLoginEmail turns a login identifier into the email to
// authenticate with. Email-shaped input is returned unchanged without a
// directory query; the auth step itself rejects unknown emails. Anything
// else is treated as a username and resolved via one directory lookup.
//
// The uniqueness invariant guarantees at most one match per username. If
// the directory ever returns more, that is logged and the first match is
// used rather than failing the login.
func (s *AuthService) ResolveLoginEmail(identifier string) (string, error) {
	identifier = NormalizeIdentifier(identifier)

	if validation.IsValidEmail(identifier) {
		return identifier, nil
	}

	matches, err := s.accountRepo.FindByUsername(identifier)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	if len(matches) == 0 {
		return "", ErrAccountNotFound
	}
	if len(matches) > 1 {
		log.Printf("Directory invariant violated: username %q matches %d accounts, using the first", identifier, len(matches))
	}
	return matches[0].Email, nil
}

// Register creates a new account. Email and username are re-checked for
// availability, the password is hashed, and the credential and directory
// record are written as a single row, so a half-created account cannot be
// left behind.
func (s *AuthService) Register(account *models.Account, password string) error {
	account.Email = NormalizeIdentifier(account.Email)
	account.Username = NormalizeIdentifier(account.Username)

	if !validation.IsValidEmail(account.Email) {
		return ErrInvalidEmail
	}
	if ok, _ := validation.ValidateUsername(account.Username); !ok {
		return ErrInvalidUsername
	}
	if !validation.CheckPassword(password).Valid {
		return ErrWeakPassword
	}
	// Nickname defaults to the username.
	if account.Nickname == "" {
		account.Nickname = account.Username
	}

	if count, err := s.accountRepo.CountByEmail(account.Email); err != nil {
		return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	} else if count > 0 {
		return ErrEmailTaken
	}
	if count, err := s.accountRepo.CountByUsername(account.Username); err != nil {
		return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	} else if count > 0 {
		return ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.Password = string(hashedPassword)

	if err := s.accountRepo.Create(account); err != nil {
		return fmt.Errorf("failed to register account: %w", err)
	}

	s.publishEvent("account.created", map[string]interface{}{
		"accountID": account.ID,
		"username":  account.Username,
	})
	if s.broker != nil {
		s.broker.Publish(SessionEvent{Kind: SessionRegistered, AccountID: account.ID, Username: account.Username})
	}
	return nil
}

// Login authenticates by email or username and returns a session JWT.
// Unknown identifier, wrong password and directory outage all surface as
// ErrInvalidCredentials; the distinction is logged but never returned, so
// responses cannot be used to probe which part of the credentials failed.
func (s *AuthService) Login(identifier, password string) (string, error) {
	email, err := s.ResolveLoginEmail(identifier)
	if err != nil {
		log.Printf("Login resolution failed for %q: %v", identifier, err)
		return "", ErrInvalidCredentials
	}

	account, err := s.accountRepo.GetByEmail(email)
	if err != nil {
		log.Printf("Login lookup failed for %q: %v", email, err)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.issueSessionToken(account)
	if err != nil {
		return "", err
	}

	if s.broker != nil {
		s.broker.Publish(SessionEvent{Kind: SessionLoggedIn, AccountID: account.ID, Username: account.Username})
	}
	return token, nil
}

// Logout only notifies subscribers; JWTs are stateless and expire on
// their own.
func (s *AuthService) Logout(accountID, username string) {
	if s.broker != nil {
		s.broker.Publish(SessionEvent{Kind: SessionLoggedOut, AccountID: accountID, Username: username})
	}
}

// ValidateToken parses and validates a session JWT, returning the claims
// if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		// Reset tokens must not pass as session tokens.
		if purpose, _ := claims["purpose"].(string); purpose != "" {
			return nil, fmt.Errorf("invalid token")
		}
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// RequestPasswordReset resolves the identifier the same way login does and
// mails a reset link to the resolved address. Unlike login, an unknown
// username is reported as ErrAccountNotFound: the reset form shows a
// specific message, an accepted enumeration tradeoff.
func (s *AuthService) RequestPasswordReset(identifier string) error {
	email, err := s.ResolveLoginEmail(identifier)
	if err != nil {
		return err
	}

	account, err := s.accountRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": account.ID,
		"purpose": "password_reset",
		"exp":     time.Now().Add(s.resetDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.mail.SendPasswordReset(account.Email, tokenString); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *AuthService) ResetPassword(tokenString, newPassword string) error {
	if !validation.CheckPassword(newPassword).Valid {
		return ErrWeakPassword
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidResetToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidResetToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return ErrInvalidResetToken
	}
	accountID, _ := claims["user_id"].(string)
	if accountID == "" {
		return ErrInvalidResetToken
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return fmt.Errorf("failed to load account for reset: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.Password = string(hashedPassword)

	if err := s.accountRepo.Update(account); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}
	return nil
}

// Reauthenticate verifies the account's current password. Sensitive
// operations (password change, account deletion) require it.
func (s *AuthService) Reauthenticate(accountID, password string) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		log.Printf("Reauthentication lookup failed for %q: %v", accountID, err)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// ChangePassword re-authenticates with the current password before
// storing the new one.
func (s *AuthService) ChangePassword(accountID, currentPassword, newPassword string) error {
	account, err := s.Reauthenticate(accountID, currentPassword)
	if err != nil {
		return err
	}
	if !validation.CheckPassword(newPassword).Valid {
		return ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.Password = string(hashedPassword)

	if err := s.accountRepo.Update(account); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}
	return nil
}

// DeleteAccount re-authenticates, then removes the account and all of its
// mood entries.
func (s *AuthService) DeleteAccount(accountID, password string) error {
	account, err := s.Reauthenticate(accountID, password)
	if err != nil {
		return err
	}

	if err := s.moodRepo.DeleteByOwner(account.ID); err != nil {
		return fmt.Errorf("failed to delete mood entries: %w", err)
	}
	if err := s.accountRepo.Delete(account.ID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if s.broker != nil {
		s.broker.Publish(SessionEvent{Kind: SessionDeleted, AccountID: account.ID, Username: account.Username})
	}
	return nil
}

// issueSessionToken generates an HS256 session JWT for the account.
func (s *AuthService) issueSessionToken(account *models.Account) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  account.ID,
		"username": account.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// publishEvent marshals and publishes a domain event, logging rather than
// failing the caller on broker trouble.
func (s *AuthService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish("moodbloom", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
