package utils

import (
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// CleanName makes a scraped title safe to use as a file name.
func CleanName(input string) string {
	cleaned := unsafeNameChars.ReplaceAllString(input, "_")

	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}

// StripQuery normalizes an image URL by dropping the query string.
// Wordpress serves the same file under varying resize parameters.
func StripQuery(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
