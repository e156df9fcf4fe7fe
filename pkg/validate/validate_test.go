package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPasswords(t *testing.T) {
	for _, password := range []string{"Lightdash1!", "Light@123", "#@#@#dash123", "light_dash"} {
		assert.Equal(t, PasswordResult{Valid: true}, ValidatePassword(password), password)
	}
}

func TestPasswordMissingLetter(t *testing.T) {
	for _, password := range []string{"12345678!", "@$%^&*()123"} {
		result := ValidatePassword(password)
		assert.False(t, result.Valid, password)
		assert.Equal(t, MessagePasswordNoLetter, result.Message, password)
	}
}

func TestPasswordMissingNumberOrSymbol(t *testing.T) {
	for _, password := range []string{"PasswordOnlyLetters", "AnotherPassword"} {
		result := ValidatePassword(password)
		assert.False(t, result.Valid, password)
		assert.Equal(t, MessagePasswordNoNumOrSymbol, result.Message, password)
	}
}

func TestPasswordTooShortWinsFirst(t *testing.T) {
	for _, password := range []string{"short", "only", "1234", ""} {
		result := ValidatePassword(password)
		assert.False(t, result.Valid, password)
		assert.Equal(t, MessagePasswordTooShort, result.Message, password)
	}
}

func TestValidEmails(t *testing.T) {
	for _, email := range []string{
		"demo@lightdash.com",
		"de.mo@lightdash.com",
		"Demo@lightdash.com",
		"user+tag@domain.co.uk",
		"user@sub.domain.com",
		"user@domain.info",
		"user123@domain.org",
	} {
		assert.True(t, IsValidEmailAddress(email), email)
	}
}

func TestInvalidEmails(t *testing.T) {
	cases := map[string]string{
		"demo@lightdash":      "missing top-level domain",
		"de mo@lightdash.com": "whitespace",
		"demo@lightdash..com": "double dot in domain",
		"@lightdash.com":      "missing local part",
		"demo@.com":           "missing domain name",
		"demo@lightdash.c":    "top-level domain too short",
		"":                    "empty",
	}
	for email, reason := range cases {
		assert.False(t, IsValidEmailAddress(email), reason)
	}
}
