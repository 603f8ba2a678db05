package shared

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CanonicalName returns the NFC form of a display name. Hangul typed on some
// clients arrives decomposed (NFD); without this two visually identical names
// would not compare equal.
func CanonicalName(name string) string {
	return norm.NFC.String(name)
}

// CleanName trims surrounding whitespace and canonicalizes a name before it is
// stored or checked for duplicates.
func CleanName(name string) string {
	return CanonicalName(strings.TrimSpace(name))
}
