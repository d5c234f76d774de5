package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// AssertSameInstant compares timestamps ignoring location and sub-microsecond
// precision lost in Postgres round trips.
func AssertSameInstant(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.True(t, want.Truncate(time.Microsecond).Equal(got.Truncate(time.Microsecond)),
		"want %s, got %s", want, got)
}
