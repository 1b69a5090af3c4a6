package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reRoomNumber = regexp.MustCompile(`[^0-9A-Za-z-]+`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SanitizeEmail normalizes the requester identity used as the booking owner.
// The format itself is not validated; addresses are treated as opaque keys.
func SanitizeEmail(input string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reWhitespace.ReplaceAllString(s, "") },
	}
	return p.Apply(input)
}

// SanitizeRoomNumber keeps room identifiers comparable across requests:
// "  101 " and "101" must address the same room.
func SanitizeRoomNumber(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		func(s string) string { return reRoomNumber.ReplaceAllString(s, "") },
		strings.ToUpper,
	}
	return p.Apply(input)
}

// SanitizeRoomType matches the case-insensitive room category filter.
func SanitizeRoomType(input string) string {
	return trimAndLower(input)
}
