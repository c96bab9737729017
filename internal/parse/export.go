package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// startRe matches a message-start line: "[DD/MM/YY, HH.MM.SS] Author: Body".
// The author segment cannot contain a colon.
var startRe = regexp.MustCompile(`^\[(\d{2})/(\d{2})/(\d{2}), (\d{2})\.(\d{2})\.(\d{2})\] ([^:]+): (.*)$`)

// Parse splits an export into messages. It never fails: lines that do not
// start a message are folded into the previous one, and leading lines with
// no message to attach to become system messages stamped with time.Now.
func Parse(text string) []Message {
	return ParseWithClock(text, time.Now)
}

// ParseWithClock is Parse with an injectable clock for system messages.
func ParseWithClock(text string, now func() time.Time) []Message {
	var p parser
	p.now = now

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		p.feed(strings.TrimRightFunc(raw, unicode.IsSpace), i+1)
	}
	p.flush()

	return p.out
}

type parseState int

const (
	stateNoCurrent parseState = iota
	stateHaveCurrent
)

type parser struct {
	now     func() time.Time
	state   parseState
	current Message
	body    strings.Builder
	out     []Message
}

func (p *parser) feed(line string, lineNum int) {
	if m := startRe.FindStringSubmatch(line); m != nil {
		p.flush()
		p.start(Message{
			Timestamp: startTime(m[1:7]),
			Author:    strings.TrimSpace(m[7]),
			Line:      lineNum,
		}, m[8])
		return
	}

	switch p.state {
	case stateHaveCurrent:
		p.body.WriteByte('\n')
		p.body.WriteString(line)
	case stateNoCurrent:
		if line == "" {
			return
		}
		p.start(Message{
			Timestamp: p.now(),
			Author:    SystemAuthor,
			Line:      lineNum,
		}, line)
	}
}

func (p *parser) start(msg Message, body string) {
	p.current = msg
	p.body.Reset()
	p.body.WriteString(body)
	p.state = stateHaveCurrent
}

// flush commits the current message, if any.
func (p *parser) flush() {
	if p.state != stateHaveCurrent {
		return
	}
	p.current.Body = p.body.String()
	p.out = append(p.out, p.current)
	p.current = Message{}
	p.state = stateNoCurrent
}

// startTime builds a local time from DD, MM, YY, hh, mm, ss. Fields are not
// range checked; time.Date normalizes overflow (month 13 rolls into the next year).
func startTime(f []string) time.Time {
	n := make([]int, len(f))
	for i, s := range f {
		// two ASCII digits, guaranteed by startRe
		n[i], _ = strconv.Atoi(s)
	}
	day, month, year := n[0], n[1], n[2]
	return time.Date(2000+year, time.Month(month), day, n[3], n[4], n[5], 0, time.Local)
}
