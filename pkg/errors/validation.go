package errors

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// ISODateLayout is the calendar date layout used in share links and date inputs.
const ISODateLayout = "2006-01-02"

// isoDateRegex matches the exact shape of an ISO calendar date (no time component).
var isoDateRegex = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// ValidateISODate checks that s is a real calendar date written as YYYY-MM-DD.
//
// The shape is checked before parsing so that inputs like "2020-1-1" or
// "2020-01-01T00:00" are rejected even though lenient parsers accept them.
func ValidateISODate(s string) error {
	if s == "" {
		return New(ErrCodeInvalidDate, "date cannot be empty")
	}
	if !isoDateRegex.MatchString(s) {
		return New(ErrCodeInvalidDate, "date must be formatted as YYYY-MM-DD: %q", s)
	}
	if _, err := time.Parse(ISODateLayout, s); err != nil {
		return Wrap(ErrCodeInvalidDate, err, "not a calendar date: %q", s)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "URL contains whitespace or control characters")
		}
	}

	return nil
}

// cacheVersionRegex matches cache version labels such as "v1", "1.4.0" or "dev".
var cacheVersionRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateCacheVersion validates the version label that namespaces offline caches.
// Versions end up inside cache keys, so separators are not allowed.
func ValidateCacheVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidConfig, "cache version cannot be empty")
	}
	if len(version) > 64 {
		return New(ErrCodeInvalidConfig, "cache version too long (max 64 characters)")
	}
	if !cacheVersionRegex.MatchString(version) {
		return New(ErrCodeInvalidConfig, "invalid cache version: %q", version)
	}
	return nil
}
