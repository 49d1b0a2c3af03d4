package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// validate checks a draft value against the session constraints. Rules are
// evaluated in fixed order: required first, then max length. Length counts
// runes, not bytes, so multibyte goal text is measured as the user sees it.
func validate(v string, maxLength int) Validation {
	if strings.TrimSpace(v) == "" {
		return Validation{Valid: false, Message: "input required"}
	}
	if maxLength > 0 && utf8.RuneCountInString(v) > maxLength {
		return Validation{Valid: false, Message: fmt.Sprintf("must be at most %d characters", maxLength)}
	}
	return Validation{Valid: true}
}
