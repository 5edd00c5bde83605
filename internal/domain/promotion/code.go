package promotion

import "strings"

const codeDelimiter = "$"

// NormalizeCode trims and upper-cases user input for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Code extracts the promo code from a display name such as "Spring sale$SPRING10".
// Names without the delimiter carry no code.
func (p Promotion) Code() string {
	parts := strings.Split(p.Name, codeDelimiter)
	if len(parts) < 2 {
		return ""
	}
	return NormalizeCode(parts[1])
}

// DisplayName strips the code part from the name.
func (p Promotion) DisplayName() string {
	name, _, _ := strings.Cut(p.Name, codeDelimiter)
	return strings.TrimSpace(name)
}
