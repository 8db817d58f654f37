// Package certid generates the short opaque tokens used as certificate ids.
// Uniqueness is assumed, not enforced: eight hex characters keep ids easy to
// read off a printed certificate while staying reasonably collision-resistant
// for the volumes a school program sees.
package certid

import (
	"strings"

	"github.com/google/uuid"
)

const length = 8

// New returns an uppercase token like "3F2A91BC".
func New() string {
	id := uuid.NewString()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:length])
}
