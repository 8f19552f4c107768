package extensions

import (
	"strings"

	"github.com/thoas/go-funk"
)

// NormalizeTags lowercases, trims and dedupes a tag set. Length limits
// are the caller's concern.
func NormalizeTags(tags []string) []string {
	normalized := funk.Map(tags, func(tag string) string {
		return strings.ToLower(strings.TrimSpace(tag))
	}).([]string)

	normalized = funk.FilterString(normalized, func(tag string) bool {
		return len(tag) > 0
	})
	return funk.UniqString(normalized)
}
