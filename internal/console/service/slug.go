package service

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugBase = 48

// Slug folds name to lower-case ASCII words joined by hyphens, so
// "Société Générale" becomes "societe-generale".
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
		if b.Len() >= maxSlugBase {
			break
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// OrganizationSlug is Slug(name) with a base-36 millisecond suffix.
func OrganizationSlug(name string, now time.Time) string {
	suffix := strconv.FormatInt(now.UnixMilli(), 36)
	base := Slug(name)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
