package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxProjectIDLen caps sanitized project ids.
const MaxProjectIDLen = 64

// CleanProjectID strips every character outside [A-Za-z0-9_-] and truncates
// the result to MaxProjectIDLen. An empty result means the id is invalid.
func CleanProjectID(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	id := b.String()
	if len(id) > MaxProjectIDLen {
		id = id[:MaxProjectIDLen]
	}
	return id
}

// NewProjectID generates a shareable short project id.
func NewProjectID() string {
	return "plan-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewGuestID generates a roster-unique guest id.
func NewGuestID() string {
	return "g-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// NewTableID generates a table id.
func NewTableID() string {
	return "t-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// AutoTableID derives the id used for tables created implicitly during CSV
// import, keyed on the table name so re-imports stay stable.
func AutoTableID(name string) string {
	return fmt.Sprintf("t-auto-%s", name)
}
