package validate

import "regexp"

// Local part without whitespace or '@', domain labels without dots or
// whitespace, and a top-level domain of at least two characters.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)*\.[^\s@.]{2,}$`)

// IsValidEmailAddress reports whether email is syntactically acceptable.
func IsValidEmailAddress(email string) bool {
	return emailPattern.MatchString(email)
}
