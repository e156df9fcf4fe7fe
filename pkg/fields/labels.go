package fields

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ettle/strcase"
)

var nonWordRun = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// DateGroupLabel returns the label of a grouped date dimension with its
// trailing interval name removed. When the label does not end with the
// interval name as a plain word, the friendly form of the label is returned.
// Non-date fields and ungrouped dimensions yield false.
func DateGroupLabel(field Field) (string, bool) {
	if !field.IsDateDimension() || field.Group == "" {
		return "", false
	}
	if interval := field.TimeInterval.Label(); interval != "" {
		suffix := " " + strings.ToLower(interval)
		if strings.HasSuffix(field.Label, suffix) {
			return strings.TrimSuffix(field.Label, suffix), true
		}
	}
	return FriendlyName(field.Label), true
}

// FriendlyName splits text into lower-case words (on punctuation, spaces and
// camelCase boundaries) and capitalises the first one.
func FriendlyName(text string) string {
	if text == strings.ToUpper(text) {
		text = strings.ToLower(text)
	}
	normalised := strings.TrimSpace(nonWordRun.ReplaceAllString(text, " "))
	if normalised == "" {
		return ""
	}
	words := strings.Fields(strings.ReplaceAll(strcase.ToSnake(normalised), "_", " "))
	if len(words) == 0 {
		return ""
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}
