package helper

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

// SlugOptions says where uniqueness is checked.
type SlugOptions struct {
	Table       string
	SlugColumn  string
	MaxLen      int    // 0 = DefaultSlugMaxLen
	DefaultBase string // used when the base normalises to ""
}

// GenerateSlug lower-cases s and turns every run of non-alphanumerics into a single "-".
func GenerateSlug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func cutToLen(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(s[:n], "-")
}

func slugTaken(db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	var cnt int64
	err := db.Table(opts.Table).
		Where(fmt.Sprintf("lower(%s) = lower(?)", opts.SlugColumn), candidate).
		Count(&cnt).Error
	return cnt > 0, err
}

// GenerateUniqueSlug tries base, then base-2, base-3, ...
func GenerateUniqueSlug(db *gorm.DB, opts SlugOptions, base string) (string, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return "", errors.New("slug options: table/slug column required")
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	base = GenerateSlug(base)
	if base == "" {
		base = GenerateSlug(opts.DefaultBase)
	}
	if base == "" {
		base = "x"
	}
	base = cutToLen(base, maxLen)

	taken, err := slugTaken(db, opts, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 2; i < 10000; i++ {
		suf := fmt.Sprintf("-%d", i)
		candidate := cutToLen(base, maxLen-len(suf)) + suf
		taken, err = slugTaken(db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
