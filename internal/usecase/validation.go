package usecase

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
)

// ValidEmail checks the address shape without attempting delivery checks.
func ValidEmail(email string) bool {
	return len(email) <= 254 && emailPattern.MatchString(email)
}

// ValidPhone accepts international digits with common separators. An empty
// phone is handled by the caller, since some forms treat it as optional.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
