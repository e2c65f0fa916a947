package ewaybill

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Characters the portal accepts besides letters, digits and underscore.
const (
	IdentifierChars = "/. -"
	AddressChars    = "@#/,&. -"
)

var (
	identifierStrip = stripPattern(IdentifierChars)
	addressStrip    = stripPattern(AddressChars)
)

// stripPattern matches any rune that is not a word character or in allowed.
func stripPattern(allowed string) *regexp.Regexp {
	var class strings.Builder
	for _, r := range allowed {
		if r < utf8.RuneSelf && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			class.WriteByte('\\')
		}
		class.WriteRune(r)
	}
	return regexp.MustCompile(`[^\p{L}\p{N}_` + class.String() + `]`)
}

// Sanitize removes every character of value that is not a word character or
// one of allowed.
func Sanitize(value, allowed string) string {
	if value == "" {
		return ""
	}
	var re *regexp.Regexp
	switch allowed {
	case IdentifierChars:
		re = identifierStrip
	case AddressChars:
		re = addressStrip
	default:
		re = stripPattern(allowed)
	}
	return re.ReplaceAllString(value, "")
}

func sanitizeFields(b *Bill) {
	for _, f := range []*string{&b.DocNo, &b.FromTrdName, &b.ToTrdName, &b.TransDocNo} {
		*f = Sanitize(*f, IdentifierChars)
	}
	for _, f := range []*string{&b.FromAddr1, &b.FromAddr2, &b.FromPlace, &b.ToAddr1, &b.ToAddr2, &b.ToPlace, &b.TransporterName} {
		*f = Sanitize(*f, AddressChars)
	}
}
