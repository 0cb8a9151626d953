package utils

import "regexp"

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmail reports whether value looks like an email address. Used to decide
// whether a login name should be resolved by email or by username.
func IsEmail(value string) bool {
	if value == "" {
		return false
	}
	return emailRegexp.MatchString(value)
}
