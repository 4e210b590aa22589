package validate

import (
	"regexp"
	"strings"
)

// Participant codes: optional leading P, then 2 to 4 digits.
// Accepted: "P014", "p014", "014". Canonical form always carries the P.
var codePattern = regexp.MustCompile(`^[Pp]?\d{2,4}$`)

// Hashtag content after stripping the leading '#': letters and digits
// only. No underscores, hyphens, emojis or punctuation.
var hashtagPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ParticipantCode normalizes a raw participant code into its canonical
// form ("P" + 2-4 digits). The second return is false when the input
// does not match the expected shape.
func ParticipantCode(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return "", false
	}
	if !codePattern.MatchString(t) {
		return "", false
	}
	t = strings.ToUpper(t)
	if !strings.HasPrefix(t, "P") {
		t = "P" + t
	}
	return t, true
}

// Hashtag extracts the bare token from a hashtag-style response.
// A single leading '#' is stripped; the remainder must be non-empty
// and consist of ASCII letters and digits only.
func Hashtag(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return "", false
	}
	t = strings.TrimPrefix(t, "#")
	if strings.ContainsAny(t, " \t\n") {
		return "", false
	}
	if !hashtagPattern.MatchString(t) {
		return "", false
	}
	return t, true
}
