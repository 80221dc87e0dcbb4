package services

import "strings"

// knownPlaceholders are substrings of image URLs that providers serve in place of a real artist image.
var knownPlaceholders = []string{
	"2a96cbd8b46e442fc41c2b86b821562f.png",
	"default_avatar.png",
	"_avatar.png",
}

// IsKnownPlaceholder reports whether url points at a provider's stock placeholder image.
func IsKnownPlaceholder(url string) bool {
	if url == "" {
		return false
	}
	for _, p := range knownPlaceholders {
		if strings.Contains(url, p) {
			return true
		}
	}
	return false
}

// PreferredImage returns the first candidate that is neither empty nor a known placeholder.
func PreferredImage(candidates ...string) string {
	for _, c := range candidates {
		if c != "" && !IsKnownPlaceholder(c) {
			return c
		}
	}
	return ""
}
