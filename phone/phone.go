// Package phone normalises phone numbers for use as join keys.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalize strips everything that is not a digit and then removes a single leading
// '1' (US country code). Empty values are returned unchanged. Arabic-Indic digits are
// mapped to their ASCII equivalents.
//
// The leading '1' is removed unconditionally, so a number that genuinely starts with
// '1' after the country code has been dropped (e.g. 18005551234 -> 8005551234) is
// indistinguishable from one that had a country code.
func Normalize(v string) string {
	if v == "" {
		return v
	}

	return strings.TrimPrefix(phonenumbers.NormalizeDigitsOnly(v), "1")
}
