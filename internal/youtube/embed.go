// Package youtube normalizes lesson video links into embeddable URLs.
package youtube

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const embedBase = "https://www.youtube.com/embed/"

var (
	// idPattern matches the characters YouTube uses in video ids.
	idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	// timestampPattern accepts 90, 90s, 1m30s and 1h2m3s.
	timestampPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s?)?$`)
)

// ConvertToEmbed returns the canonical embed URL for a YouTube link in any of
// the watch?v=ID, youtu.be/ID or embed/ID forms. A t= timestamp becomes
// ?start=<seconds>. Other absolute URLs are returned unchanged. The second
// result is false for empty input and for anything that is not a valid URL.
func ConvertToEmbed(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if id, start, ok := parse(raw); ok {
		embed := embedBase + id
		if start != "" {
			embed += "?start=" + start
		}
		return embed, true
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return "", false
	}

	return raw, true
}

// VideoID extracts the video id from a YouTube link.
func VideoID(raw string) (string, bool) {
	id, _, ok := parse(strings.TrimSpace(raw))
	return id, ok
}

// parse recognizes YouTube links, tolerating a missing scheme.
func parse(raw string) (id, start string, ok bool) {
	target := raw
	if !strings.Contains(target, "://") {
		target = "https://" + target
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	query := u.Query()

	switch {
	case host == "youtu.be":
		id = strings.Trim(u.Path, "/")
		start = seconds(query.Get("t"))
	case host == "youtube.com" && u.Path == "/watch":
		id = query.Get("v")
		start = seconds(query.Get("t"))
	case host == "youtube.com" && strings.HasPrefix(u.Path, "/embed/"):
		id = strings.TrimPrefix(u.Path, "/embed/")
		start = seconds(query.Get("start"))
	default:
		return "", "", false
	}

	if !idPattern.MatchString(id) {
		return "", "", false
	}

	return id, start, true
}

// seconds converts a timestamp parameter into whole seconds, or "" when the
// parameter is absent or malformed.
func seconds(t string) string {
	if t == "" {
		return ""
	}

	m := timestampPattern.FindStringSubmatch(t)
	if m == nil {
		return ""
	}

	total := 0
	for i, unit := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return ""
		}
		total += n * unit
	}

	return strconv.Itoa(total)
}
