package services

import "strings"

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. The modernc driver exposes no typed error for this, so the
// message is matched.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
