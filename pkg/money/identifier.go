package money

import (
	"strings"

	"github.com/google/uuid"
)

// SafeIdentifier renders id in the character set the gateway allows for
// merchant-defined identifiers (letters, digits, spaces) by dropping the
// hyphens from its canonical form. The result is always 32 characters.
//
// The gateway keeps only the last 10 characters of some of these fields, so
// two distinct ids can still collide on its side.
func SafeIdentifier(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
