package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"github.com/Zuo-Peng/wa-transcript/internal/parse"
)

const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorBoldRed = "\033[1;31m" // keyword highlights
)

// palette holds the ANSI colours for one theme.
type palette struct {
	self   string
	other  string
	third  string // group members and system lines
	badge  string
	dayBar string
	hit    string
}

var (
	darkPalette = palette{
		self:   "\033[1;34m", // bold blue
		other:  "\033[1;32m", // bold green
		third:  "\033[2;35m", // dim magenta
		badge:  "\033[7m",    // reverse video
		dayBar: "\033[2m",
		hit:    "\033[43m", // yellow background
	}
	lightPalette = palette{
		self:   "\033[34m",
		other:  "\033[32m",
		third:  "\033[35m",
		badge:  "\033[7m",
		dayBar: "\033[90m",
		hit:    "\033[103m", // bright yellow background
	}
)

// EmptyPlaceholder is rendered when there are no messages.
const EmptyPlaceholder = "No messages yet. Load a WhatsApp .txt export."

type Options struct {
	Self  string // messages from this author are "you"
	Other string
	Width int    // wrap width (0 = no wrap)
	Query string // keyword highlighting
	Hit   int    // index of the message to highlight, -1 for none
	Light bool
}

// Attribution is who a message belongs to from the reader's point of view.
type Attribution int

const (
	AttrThird Attribution = iota
	AttrSelf
	AttrOther
)

func normalizeName(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// Attribute matches author case-insensitively against the self and other labels.
func Attribute(author, self, other string) Attribution {
	a := normalizeName(author)
	switch {
	case self != "" && a == normalizeName(self):
		return AttrSelf
	case other != "" && a == normalizeName(other):
		return AttrOther
	default:
		return AttrThird
	}
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	for _, term := range strings.Fields(query) {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			if pos+len(term) > len(text) {
				break
			}
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth && visW > 0 {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// DayLabel formats the day separator for the message.
func DayLabel(m parse.Message) string {
	return m.Timestamp.Format("Mon, 02/01/06")
}

func dayKey(m parse.Message) string {
	return m.Timestamp.Format("2006-01-02")
}

// Body renders a message body without colour: media kinds become a badge.
func Body(body string) string {
	c := parse.Classify(body)
	switch c.Kind {
	case parse.KindText:
		return body
	case parse.KindLocation:
		return "[" + c.Label + "] " + c.URL
	default:
		return "[" + c.Label + "]"
	}
}

// Transcript renders messages grouped by calendar day and returns the content
// and the 0-based line of the Hit message header (-1 if no hit).
func Transcript(messages []parse.Message, opts Options) (string, int) {
	if len(messages) == 0 {
		return EmptyPlaceholder + "\n", -1
	}

	pal := darkPalette
	if opts.Light {
		pal = lightPalette
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	wrapW := opts.Width

	// helper to track line count; wraps long lines if Width is set
	writeLine := func(s string) {
		wrapped := wrapLine(s, wrapW)
		for _, wl := range wrapped {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	lastDay := ""
	for i, m := range messages {
		if day := dayKey(m); day != lastDay {
			writeLine(fmt.Sprintf("%s=== %s ===%s", pal.dayBar, DayLabel(m), colorReset))
			lastDay = day
		}

		isHit := i == opts.Hit
		if isHit {
			hitLine = lineCount
		}

		var color, label, indent string
		switch Attribute(m.Author, opts.Self, opts.Other) {
		case AttrSelf:
			color, label, indent = pal.self, m.Author+" (you)", "      "
		case AttrOther:
			color, label, indent = pal.other, m.Author, "  "
		default:
			color, label, indent = pal.third, m.Author, "  "
		}
		ts := m.Timestamp.Format("15:04")

		if isHit {
			writeLine(fmt.Sprintf("%s>> %s > %s <<%s", pal.hit, label, ts, colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", color, label, colorReset, colorDim, ts, colorReset))
		}

		var text string
		c := parse.Classify(m.Body)
		switch c.Kind {
		case parse.KindText:
			text = highlightKeywords(m.Body, opts.Query)
		case parse.KindLocation:
			text = fmt.Sprintf("%s[%s]%s\n%s", pal.badge, c.Label, colorReset, highlightKeywords(c.URL, opts.Query))
		default:
			text = fmt.Sprintf("%s[%s]%s", pal.badge, c.Label, colorReset)
		}
		if m.IsSystem() {
			text = colorDim + text + colorReset
		}

		for _, tl := range strings.Split(indentLines(text, indent), "\n") {
			writeLine(tl)
		}
		writeLine("") // blank line after message
	}

	return b.String(), hitLine
}
