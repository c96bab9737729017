package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/wa-transcript/internal/parse"
	"github.com/Zuo-Peng/wa-transcript/internal/render"
	"github.com/Zuo-Peng/wa-transcript/internal/search"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

// renderList renders the left panel: matching messages with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		text := "No matches"
		if m.sess.Empty() {
			text = render.EmptyPlaceholder
		}
		return lipgloss.NewStyle().
			Foreground(m.styles.dim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(text)
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := m.formatResultLine(r, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatResultLine formats a single match as two lines:
//
//	line 1: [>] author  DD/MM HH:MM
//	line 2:    snippet (dimmed)
func (m model) formatResultLine(r search.Result, width int, selected bool) []string {
	msg := r.Message

	author := strings.ReplaceAll(msg.Author, "\n", " ")
	authorMax := width - 2 - 12 - 1 // prefix + date + padding
	if authorMax < 0 {
		authorMax = 0
	}
	if runewidth.StringWidth(author) > authorMax {
		author = runewidth.Truncate(author, authorMax, "")
	}
	switch render.Attribute(msg.Author, m.opts.Self, m.opts.Other) {
	case render.AttrSelf:
		author = m.styles.authorSelf.Render(author)
	case render.AttrOther:
		author = m.styles.authorOther.Render(author)
	default:
		author = m.styles.authorThird.Render(author)
	}

	line1 := fmt.Sprintf("%s %s", author, msg.Timestamp.Format("02/01 15:04"))
	if selected {
		line1 = m.styles.listSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	// Line 2: snippet, or the badge for media
	snippet := r.Snippet
	if r.Kind != parse.KindText {
		snippet = render.Body(msg.Body)
	}
	snippet = strings.ReplaceAll(snippet, "\n", " ")
	snippet = strings.ReplaceAll(snippet, "\t", " ")
	snippet = strings.ReplaceAll(snippet, ">>>", "")
	snippet = strings.ReplaceAll(snippet, "<<<", "")
	snippetMax := width - 4 // indent
	if snippetMax < 0 {
		snippetMax = 0
	}
	if runewidth.StringWidth(snippet) > snippetMax {
		snippet = runewidth.Truncate(snippet, snippetMax, "")
	}
	line2 := "    " + m.styles.snippet.Render(snippet)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
