package validate

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Password policy messages, reported for the first failing rule.
const (
	MessagePasswordTooShort      = "must be at least 8 characters long"
	MessagePasswordNoLetter      = "must contain a letter"
	MessagePasswordNoNumOrSymbol = "must contain a number or symbol"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// PasswordResult reports the outcome of a password check.
type PasswordResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type passwordRule struct {
	schema  *jsonschema.Schema
	message string
}

var passwordRules = []passwordRule{
	{
		schema:  jsonschema.MustCompileString("password-length.json", fmt.Sprintf(`{"type":"string","minLength":%d}`, MinPasswordLength)),
		message: MessagePasswordTooShort,
	},
	{
		schema:  jsonschema.MustCompileString("password-letter.json", `{"type":"string","pattern":"[a-zA-Z]"}`),
		message: MessagePasswordNoLetter,
	},
	{
		schema:  jsonschema.MustCompileString("password-number-or-symbol.json", `{"type":"string","pattern":"[\\d\\W_]"}`),
		message: MessagePasswordNoNumOrSymbol,
	},
}

// ValidatePassword applies the password policy. Rules run in order: length,
// letter, then number or symbol.
func ValidatePassword(password string) PasswordResult {
	for _, rule := range passwordRules {
		if err := rule.schema.Validate(password); err != nil {
			return PasswordResult{Message: rule.message}
		}
	}
	return PasswordResult{Valid: true}
}
