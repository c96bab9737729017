package parse

import (
	"regexp"
	"strings"
)

// marker is the invisible left-to-right mark exports put before placeholders.
const marker = `\x{200E}?`

type rule struct {
	re    *regexp.Regexp
	kind  Kind
	label string
}

// rules are evaluated top to bottom; the first match wins.
var rules = []rule{
	{regexp.MustCompile(`(?i)^` + marker + `sticker omitted`), KindSticker, "Sticker"},
	{regexp.MustCompile(`(?i)^` + marker + `image omitted`), KindImage, "Image"},
	{regexp.MustCompile(`(?i)^` + marker + `video omitted`), KindVideo, "Video"},
	{regexp.MustCompile(`(?i)^` + marker + `audio omitted`), KindAudio, "Audio"},
	{regexp.MustCompile(`(?i)^` + marker + `document omitted`), KindDocument, "Document"},
	{regexp.MustCompile(`(?i)^` + marker + `This message was deleted\.`), KindDeleted, "Deleted message"},
	{regexp.MustCompile(`(?i)^` + marker + `Location:\s*(https?://\S+)`), KindLocation, "Location"},
}

// Classify maps a message body to its content kind.
func Classify(body string) Content {
	t := strings.TrimSpace(body)
	for _, r := range rules {
		m := r.re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		c := Content{Kind: r.kind, Label: r.label}
		if len(m) > 1 {
			c.URL = m[1]
		}
		return c
	}
	return Content{Kind: KindText}
}

// IsMedia reports whether the content renders as a badge instead of text.
func (c Content) IsMedia() bool {
	return c.Kind != KindText
}
