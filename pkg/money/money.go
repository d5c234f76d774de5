package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// gatewayScale is the number of fractional digits the gateway accepts.
const gatewayScale = 2

// MaxGatewayAmount is the largest amount the gateway accepts in one request.
var MaxGatewayAmount = decimal.RequireFromString("9999999.99")

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

func (c Currency) String() string {
	return c.code
}

// GatewayAmount formats an amount the way the gateway expects it: exactly two
// fractional digits, rounded toward positive infinity so the customer is never
// under-charged. A nil amount stays nil.
func GatewayAmount(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	s := amount.RoundCeil(gatewayScale).StringFixed(gatewayScale)
	return &s
}

// WithinGatewayLimit reports whether amount, once rounded the way
// GatewayAmount rounds it, fits the gateway's amount field.
func WithinGatewayLimit(amount decimal.Decimal) bool {
	return amount.RoundCeil(gatewayScale).LessThanOrEqual(MaxGatewayAmount)
}

// ParseGatewayAmount parses an amount string reported by the gateway. The
// second return value is false when the string is empty or not a number.
func ParseGatewayAmount(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
