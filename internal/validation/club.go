package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var reservedClubSlugs = map[string]struct{}{
	"admin":       {},
	"api":         {},
	"auth":        {},
	"clubs":       {},
	"login":       {},
	"logout":      {},
	"members":     {},
	"memberships": {},
	"metrics":     {},
	"new":         {},
	"posts":       {},
	"requests":    {},
	"settings":    {},
	"signup":      {},
	"swagger":     {},
	"users":       {},
}

// ValidateClubName checks length and printable content of a club name.
func ValidateClubName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return fmt.Errorf("club name must be at least 3 characters long")
	}
	if len(trimmed) > 200 {
		return fmt.Errorf("club name must not exceed 200 characters")
	}
	return nil
}

var slugStripRegex = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugCollapseRegex = regexp.MustCompile(`[\s-]+`)

// Slugify derives a URL slug from a club name: lowercase, alphanumerics
// kept, runs of whitespace and hyphens collapsed to single hyphens.
func Slugify(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	lower = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, lower)
	lower = slugStripRegex.ReplaceAllString(lower, "")
	lower = slugCollapseRegex.ReplaceAllString(lower, "-")
	return strings.Trim(lower, "-")
}

// ValidateClubSlug validates a derived slug's format and reserved names.
func ValidateClubSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("club name must contain at least one letter or number")
	}
	if len(slug) > 220 {
		return fmt.Errorf("slug must not exceed 220 characters")
	}
	if _, exists := reservedClubSlugs[slug]; exists {
		return fmt.Errorf("club name is reserved")
	}
	return nil
}
