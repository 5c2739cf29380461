// Package sanitize cleans raw form input before it is stored. Every function is
// total and idempotent, so a stored value never needs sanitizing twice.
package sanitize

import (
	"regexp"
	"strings"
)

const (
	MaxNameLen     = 25
	MaxPhoneLen    = 10
	MaxLocationLen = 25
	MaxTextLen     = 500
	MaxAmountLen   = 9
)

var (
	nameDisallowed     = regexp.MustCompile(`[^a-zA-Z\s'.-]`)
	whitespaceRun      = regexp.MustCompile(`\s+`)
	punctuationRun     = regexp.MustCompile(`[.'-]{3,}`)
	nonDigit           = regexp.MustCompile(`\D`)
	locationDisallowed = regexp.MustCompile(`[^a-zA-Z0-9 .,/\-()&]`)
)

// Name keeps letters, spaces, apostrophes, periods and hyphens, collapses
// whitespace, shortens punctuation runs to two marks and caps the length.
func Name(v string) string {
	v = nameDisallowed.ReplaceAllString(v, "")
	v = whitespaceRun.ReplaceAllString(v, " ")
	v = strings.TrimSpace(v)
	v = punctuationRun.ReplaceAllStringFunc(v, func(run string) string { return run[:2] })
	return strings.TrimSpace(truncate(v, MaxNameLen))
}

func Phone(v string) string {
	return truncate(nonDigit.ReplaceAllString(v, ""), MaxPhoneLen)
}

func Location(v string) string {
	return truncate(locationDisallowed.ReplaceAllString(v, ""), MaxLocationLen)
}

// Text only caps free text; any character is allowed.
func Text(v string) string {
	return truncate(v, MaxTextLen)
}

// Amount keeps digits only, so signs and decimals never survive.
func Amount(v string) string {
	return truncate(nonDigit.ReplaceAllString(v, ""), MaxAmountLen)
}

// truncate cuts v to at most n runes.
func truncate(v string, n int) string {
	if len(v) <= n {
		return v
	}
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n])
}
