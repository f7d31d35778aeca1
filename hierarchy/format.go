package hierarchy

import "strings"

// StripDots removes dot notation from a code identifier for storage and
// lookup. "E11.621" becomes "E11621".
func StripDots(code string) string {
	return strings.ReplaceAll(code, ".", "")
}

// AddDots formats an undotted code identifier with standard dot notation:
// a dot after the third character. Codes of three characters or fewer are
// returned unchanged.
func AddDots(code string) string {
	code = StripDots(code)
	if len(code) <= 3 {
		return code
	}
	return code[:3] + "." + code[3:]
}

// NormalizeCode converts a code identifier in any format to the canonical
// uppercase dotted form.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(StripDots(code)))
	return AddDots(code)
}
