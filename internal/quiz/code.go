package quiz

import (
	"strings"

	"github.com/google/uuid"
)

// NewCode returns a short join code: the first group of a random UUID,
// eight lowercase hex characters.
func NewCode() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// NormalizeCode trims and lower-cases user-entered codes.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
