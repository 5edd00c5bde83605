package customer

import (
	"strings"
	"unicode"
)

// Profile is the POS view of a storefront customer. Bonus is in minor units.
type Profile struct {
	ClientID string
	Name     string
	Phone    string
	Bonus    int64
}

// Session is the authenticated caller as carried by the session token.
type Session struct {
	ClientID string
	Phone    string
	Name     string
}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders Uzbek numbers as +998XXXXXXXXX and leaves anything else as given.
func FormatPhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "+") {
		return raw
	}
	digits := DigitsOnly(raw)
	switch {
	case digits == "":
		return raw
	case strings.HasPrefix(digits, "998"):
		return "+" + digits
	case len(digits) == 9:
		return "+998" + digits
	case len(digits) == 10 && digits[0] == '0':
		return "+998" + digits[1:]
	default:
		return raw
	}
}

// JoinName joins non-blank name parts with single spaces.
func JoinName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimFunc(p, unicode.IsSpace)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
