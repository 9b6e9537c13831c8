package util

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field normalization lives here, applied explicitly at the request boundary
// rather than inside ORM hooks.

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CapitalizeName trims a name part and uppercases its first rune.
func CapitalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}

const (
	schoolCodePrefix = "SCH"
	schoolCodeOffset = 1000

	registrationNumberPrefix = "TCH"
	registrationNumberOffset = 10000
)

// FormatSchoolCode renders a school's serial as its public registration code,
// e.g. serial 1 -> "SCH01001".
func FormatSchoolCode(serial uint) string {
	return fmt.Sprintf("%s%05d", schoolCodePrefix, serial+schoolCodeOffset)
}

// ParseSchoolCode decodes a registration code back to a serial. The second
// return value is false when the string is not a school code at all, so
// callers can fall back to treating it as a plain id.
func ParseSchoolCode(code string) (uint, bool) {
	if !strings.HasPrefix(code, schoolCodePrefix) {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(code, schoolCodePrefix), 10, 32)
	if err != nil || n < schoolCodeOffset {
		return 0, false
	}
	return uint(n) - schoolCodeOffset, true
}

// FormatRegistrationNumber renders a staff member's serial as their
// registration number, e.g. serial 1 -> "TCH0000010001".
func FormatRegistrationNumber(serial uint) string {
	return fmt.Sprintf("%s%010d", registrationNumberPrefix, serial+registrationNumberOffset)
}
