package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Zuo-Peng/wa-transcript/internal/load"
	"github.com/Zuo-Peng/wa-transcript/internal/parse"
)

// Session is one loaded export. A new load builds a new Session; nothing is
// carried over from the previous one.
type Session struct {
	ID       uuid.UUID
	Path     string
	Size     int64
	LoadedAt time.Time
	Messages []parse.Message
}

// New parses the export. A nil export yields an empty session.
func New(exp *load.Export) *Session {
	s := &Session{
		ID:       uuid.New(),
		LoadedAt: time.Now(),
	}
	if exp == nil {
		return s
	}
	s.Path = exp.Path
	s.Size = exp.Size
	s.Messages = parse.Parse(exp.Text)
	return s
}

func (s *Session) Empty() bool {
	return len(s.Messages) == 0
}

// Message returns the n-th message (1-based), as numbered by `wat view`.
func (s *Session) Message(n int) (parse.Message, error) {
	if n < 1 || n > len(s.Messages) {
		return parse.Message{}, fmt.Errorf("message %d out of range (1..%d)", n, len(s.Messages))
	}
	return s.Messages[n-1], nil
}

func (s *Session) String() string {
	return fmt.Sprintf("%s messages=%d size=%s", s.ID.String()[:8], len(s.Messages), humanize.Bytes(uint64(s.Size)))
}

type AuthorStats struct {
	Author   string
	Messages int
	Media    int
	First    time.Time
	Last     time.Time
}

type Stats struct {
	Authors []AuthorStats
	Kinds   map[parse.Kind]int
	Days    int
}

// Stats counts messages per author (busiest first) and per content kind.
func (s *Session) Stats() Stats {
	byAuthor := lo.GroupBy(s.Messages, func(m parse.Message) string { return m.Author })

	authors := lo.MapToSlice(byAuthor, func(author string, msgs []parse.Message) AuthorStats {
		a := AuthorStats{
			Author:   author,
			Messages: len(msgs),
			Media: lo.CountBy(msgs, func(m parse.Message) bool {
				return parse.Classify(m.Body).IsMedia()
			}),
		}
		a.First = lo.MinBy(msgs, func(x, y parse.Message) bool { return x.Timestamp.Before(y.Timestamp) }).Timestamp
		a.Last = lo.MaxBy(msgs, func(x, y parse.Message) bool { return x.Timestamp.After(y.Timestamp) }).Timestamp
		return a
	})
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Messages != authors[j].Messages {
			return authors[i].Messages > authors[j].Messages
		}
		return strings.ToLower(authors[i].Author) < strings.ToLower(authors[j].Author)
	})

	kinds := lo.CountValuesBy(s.Messages, func(m parse.Message) parse.Kind {
		return parse.Classify(m.Body).Kind
	})

	days := lo.Uniq(lo.Map(s.Messages, func(m parse.Message, _ int) string {
		return m.Timestamp.Format("2006-01-02")
	}))

	return Stats{Authors: authors, Kinds: kinds, Days: len(days)}
}
