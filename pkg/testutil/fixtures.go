package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers for deterministic tests.
var (
	TestTenantID        = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestOtherTenantID   = uuid.MustParse("00000000-0000-0000-0000-000000000011")
	TestAccountID       = uuid.MustParse("00000000-0000-0000-0000-000000000020")
	TestPaymentID       = uuid.MustParse("00000000-0000-0000-0000-000000000030")
	TestPaymentMethodID = uuid.MustParse("00000000-0000-0000-0000-000000000040")
)

// Gateway receipt date and time as the gateway formats them.
const (
	TestTransDate = "2014-03-10"
	TestTransTime = "12:42:01"
)

// TestEffectiveDate is TestTransDate and TestTransTime read as UTC.
var TestEffectiveDate = time.Date(2014, time.March, 10, 12, 42, 1, 0, time.UTC)

// Ptr returns a pointer to v, for building optional receipt fields inline.
func Ptr[T any](v T) *T {
	return &v
}
