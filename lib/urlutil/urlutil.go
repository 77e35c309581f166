package urlutil

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIdRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID accepts a YouTube URL (watch, youtu.be, embed, shorts) or
// a raw 11-character video ID and returns the video ID.
func ExtractVideoID(urlOrId string) (string, error) {
	s := strings.TrimSpace(urlOrId)

	if videoIdRegex.MatchString(s) {
		return s, nil
	}

	parsed, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("could not extract video id from %q: %w", urlOrId, err)
	}

	// watch?v=ID
	if v := parsed.Query().Get("v"); videoIdRegex.MatchString(v) {
		return v, nil
	}

	// youtu.be/ID, /embed/ID, /shorts/ID
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) > 0 {
		last := parts[len(parts)-1]
		if videoIdRegex.MatchString(last) {
			return last, nil
		}
	}

	return "", fmt.Errorf("could not extract video id from %q", urlOrId)
}
