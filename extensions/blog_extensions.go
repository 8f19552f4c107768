package extensions

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// MakeBlogId derives a url-safe blog identifier from the title plus a
// random suffix so distinct blogs with the same title never collide.
func MakeBlogId(title string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) == 0 {
		slug = "blog"
	}
	return slug + "-" + RandomSuffix()
}

// RandomSuffix returns a short random fragment, also used to
// disambiguate usernames on collision.
func RandomSuffix() string {
	return strings.Split(uuid.NewString(), "-")[0]
}
