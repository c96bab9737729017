package parse

import "time"

// SystemAuthor labels lines that precede the first recognizable message,
// e.g. export metadata headers.
const SystemAuthor = "system"

type Message struct {
	Timestamp time.Time
	Author    string // trimmed sender label or SystemAuthor
	Body      string // continuation lines joined with "\n"
	Line      int    // 1-based line number of the start line in the export
}

// IsSystem reports whether the message was synthesized for an unattributed line.
func (m Message) IsSystem() bool {
	return m.Author == SystemAuthor
}

type Kind string

const (
	KindText     Kind = "text"
	KindSticker  Kind = "sticker"
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindDocument Kind = "document"
	KindDeleted  Kind = "deleted"
	KindLocation Kind = "location"
)

// Content is the classification of a message body.
type Content struct {
	Kind  Kind
	Label string // badge label, empty for KindText
	URL   string // only set for KindLocation
}
