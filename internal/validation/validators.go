package validation

import "regexp"

var (
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	whitespaceRegex = regexp.MustCompile(`\s`)
	upperRegex      = regexp.MustCompile(`[A-Z]`)
	lowerRegex      = regexp.MustCompile(`[a-z]`)
	numberRegex     = regexp.MustCompile(`[0-9]`)
	specialRegex    = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// MinPasswordLength is the only enforced password rule. The character-class
// checks below are reported but deliberately not required.
const MinPasswordLength = 6

// MinUsernameLength is the minimum accepted username length.
const MinUsernameLength = 3

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	if s == "" {
		return false
	}
	return emailRegex.MatchString(s)
}

// ValidateUsername checks a candidate username and returns a
// field-specific message when it is rejected.
func ValidateUsername(s string) (bool, string) {
	if s == "" {
		return false, "Username is required"
	}
	if len(s) < MinUsernameLength {
		return false, "Username must be at least 3 characters"
	}
	if whitespaceRegex.MatchString(s) {
		return false, "Username cannot contain spaces"
	}
	if !usernameRegex.MatchString(s) {
		return false, "Username can only contain letters, numbers, underscore (_) and hyphen (-)"
	}
	return true, ""
}

// PasswordReport carries the individual password checks. Only
// MeetsMinLength determines Valid; the rest is advisory feedback
// for sign-up forms.
type PasswordReport struct {
	Valid          bool `json:"valid"`
	MeetsMinLength bool `json:"meets_min_length"`
	HasUpperCase   bool `json:"has_upper_case"`
	HasLowerCase   bool `json:"has_lower_case"`
	HasNumber      bool `json:"has_number"`
	HasSpecialChar bool `json:"has_special_char"`
}

// CheckPassword evaluates a candidate password.
func CheckPassword(s string) PasswordReport {
	if s == "" {
		return PasswordReport{}
	}
	r := PasswordReport{
		MeetsMinLength: len(s) >= MinPasswordLength,
		HasUpperCase:   upperRegex.MatchString(s),
		HasLowerCase:   lowerRegex.MatchString(s),
		HasNumber:      numberRegex.MatchString(s),
		HasSpecialChar: specialRegex.MatchString(s),
	}
	r.Valid = r.MeetsMinLength
	return r
}

// PasswordsMatch reports whether a non-empty password equals its confirmation.
func PasswordsMatch(password, confirm string) bool {
	return password != "" && password == confirm
}
