// Package phone normalizes lead phone numbers. Numbers without a country
// code are read as UAE numbers.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "AE"

// ErrUndialable is returned for input that is not a valid phone number.
var ErrUndialable = errors.New("phone number is not dialable")

// NormalizeE164 formats input as E.164 when it parses as a valid number and
// returns the trimmed input unchanged otherwise. Use it for storage, where
// agent-entered values must never be lost.
func NormalizeE164(input string) string {
	normalized, err := Dialable(input)
	if err != nil {
		return strings.TrimSpace(input)
	}
	return normalized
}

// Dialable returns the E.164 form of input or ErrUndialable. Use it before
// handing a number to a call or messaging provider.
func Dialable(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrUndialable
	}
	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", ErrUndialable
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

// Digits returns the dialable number without the leading plus, as messaging
// gateways address recipients by bare number.
func Digits(input string) (string, error) {
	normalized, err := Dialable(input)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(normalized, "+"), nil
}
