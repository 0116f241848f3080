package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

// DefaultProductSlugBase is used when a product name slugifies to nothing
const DefaultProductSlugBase = "product"

// Slug column widths
const (
	MaxCategorySlugLength = 100
	MaxTagSlugLength      = 60
	MaxProductSlugLength  = 140
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// IsValidSlug reports whether s uses only letters, digits, underscores and hyphens
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// separatorRunes are spelled out as words by the slug library's English
// table ("&" becomes "and"); here they separate words like other punctuation.
var separatorRunes = map[rune]string{
	'&': " ",
	'@': " ",
}

// Slugify converts a display name to a URL-safe slug: lower-case ASCII,
// with runs of other characters collapsed to single hyphens.
func Slugify(s string) string {
	return slug.Make(slug.SubstituteRune(s, separatorRunes))
}

// SlugTakenFunc reports whether a slug candidate is already in use
type SlugTakenFunc func(candidate string) (bool, error)

// UniqueSlug returns base, base-2, base-3, ... whichever comes first that
// taken reports as free. Candidates are trimmed to maxLen.
func UniqueSlug(base string, maxLen int, taken SlugTakenFunc) (string, error) {
	candidate := truncateSlug(base, maxLen)
	for i := 2; ; i++ {
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		suffix := fmt.Sprintf("-%d", i)
		candidate = truncateSlug(base, maxLen-len(suffix)) + suffix
	}
}

func truncateSlug(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return strings.TrimRight(s[:maxLen], "-")
}

func validateSlug(code, value string, maxLen int) error {
	if value == "" {
		return nil
	}
	if utf8.RuneCountInString(value) > maxLen {
		return newValidationError(code, fmt.Sprintf("Slug cannot exceed %d characters", maxLen))
	}
	if !slugPattern.MatchString(value) {
		return newValidationError(code, "Slug can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}
