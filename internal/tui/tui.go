package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/wa-transcript/internal/load"
	"github.com/Zuo-Peng/wa-transcript/internal/prefs"
	"github.com/Zuo-Peng/wa-transcript/internal/render"
	"github.com/Zuo-Peng/wa-transcript/internal/search"
	"github.com/Zuo-Peng/wa-transcript/internal/session"
)

const debounceDelay = 200 * time.Millisecond

// Options configures the viewer. Self and Other are the name labels used to
// attribute messages.
type Options struct {
	Self  string
	Other string
	Query string
	Theme prefs.Theme

	// Prefs persists theme toggles; nil keeps them for this run only.
	Prefs *prefs.Store
	// Changes, when set, reloads the session on every event.
	Changes <-chan load.Event
}

// message types

type searchResultMsg struct {
	query   string
	results []search.Result
}

type debounceTickMsg struct {
	query string
}

type fileChangedMsg struct {
	event load.Event
}

type sessionLoadedMsg struct {
	sess *session.Session
	err  error
}

type themeSavedMsg struct {
	err error
}

// model

type model struct {
	log         *slog.Logger
	opts        Options
	sess        *session.Session
	theme       prefs.Theme
	styles      styles
	query       string
	results     []search.Result
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // avoids duplicate renders
	width       int
	height      int
	ready       bool
	quitting    bool
	status      string
}

func initialModel(log *slog.Logger, sess *session.Session, opts Options) model {
	theme := opts.Theme
	if theme == "" {
		theme = prefs.ThemeDark
	}
	st := newStyles(theme.Light())

	ti := textinput.New()
	ti.Placeholder = "Search messages..."
	ti.Focus()
	ti.SetValue(opts.Query)
	ti.Prompt = "> "
	ti.PromptStyle = st.inputPrompt
	ti.TextStyle = st.input
	ti.CharLimit = 256

	return model{
		log:         log,
		opts:        opts,
		sess:        sess,
		theme:       theme,
		styles:      st,
		query:       opts.Query,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Run starts the viewer and blocks until it exits.
func Run(log *slog.Logger, sess *session.Session, opts Options) error {
	m := initialModel(log, sess, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Init triggers the initial search and starts listening for file changes.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.doSearch(m.query)}
	if m.opts.Changes != nil {
		cmds = append(cmds, waitForChange(m.opts.Changes))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight(), m.styles)
		m.previewKey = ""
		cmds = append(cmds, m.loadCurrentPreview())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Copy):
			if len(m.results) > 0 && m.cursor < len(m.results) {
				r := m.results[m.cursor]
				if err := clipboard.WriteAll(r.Message.Body); err != nil {
					m.status = "clipboard unavailable"
					m.log.Warn("copy message", "err", err)
				} else {
					m.status = fmt.Sprintf("copied message %d", r.Index+1)
				}
			}
			return m, nil

		case key.Matches(msg, keys.Theme):
			m.theme = m.theme.Toggle()
			m.applyTheme()
			cmds = append(cmds, m.saveTheme(), m.loadCurrentPreview())
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		// Check if query changed
		newQuery := m.filterInput.Value()
		if newQuery != m.query {
			m.query = newQuery
			cmds = append(cmds, m.scheduleDebouncedSearch(newQuery))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.results) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			visibleItems := m.panelHeight() / linesPerItem
			maxOffset := len(m.results) - visibleItems
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.results) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case debounceTickMsg:
		// Only fire search if query hasn't changed since debounce was scheduled
		if msg.query == m.query {
			cmds = append(cmds, m.doSearch(msg.query))
		}
		return m, tea.Batch(cmds...)

	case searchResultMsg:
		// Only apply if this result matches current query
		if msg.query != m.query {
			return m, nil
		}
		m.results = msg.results
		m.cursor = 0
		m.listOffset = 0
		m.previewKey = ""
		cmds = append(cmds, m.loadCurrentPreview())
		return m, tea.Batch(cmds...)

	case fileChangedMsg:
		m.log.Debug("export changed", "path", msg.event.Path, "op", msg.event.Op.String())
		cmds = append(cmds, reloadCmd(msg.event.Path), waitForChange(m.opts.Changes))
		return m, tea.Batch(cmds...)

	case sessionLoadedMsg:
		if msg.err != nil {
			// keep showing the previous session
			m.status = "reload failed: " + msg.err.Error()
			m.log.Warn("reload export", "err", msg.err)
			return m, nil
		}
		m.sess = msg.sess
		m.status = fmt.Sprintf("reloaded %d messages", len(m.sess.Messages))
		m.log.Info("session loaded", "session", m.sess.ID, "messages", len(m.sess.Messages))
		return m, m.doSearch(m.query)

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Warn("save theme", "err", msg.err)
		}
		return m, nil

	case previewRenderedMsg:
		if msg.key != m.wantPreviewKey() {
			return m, nil // stale preview
		}
		m.preview.SetContent(msg.content)
		if msg.hitLine > 0 {
			m.preview.SetYOffset(msg.hitLine)
		} else {
			m.preview.GotoTop()
		}
		m.previewKey = msg.key
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	// Layout dimensions
	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	// Input row
	inputRow := m.filterInput.View()

	// List panel
	listContent := m.renderList(listW, panelH)
	listPanel := m.styles.panelBorder.
		Width(listW).
		Height(panelH).
		Render(listContent)

	// Transcript panel
	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := m.styles.activeBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	// Join panels side by side
	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// helper methods

func (m *model) applyTheme() {
	m.styles = newStyles(m.theme.Light())
	m.filterInput.PromptStyle = m.styles.inputPrompt
	m.filterInput.TextStyle = m.styles.input
	m.preview.Style = m.styles.panelBorder
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 40% for list, minus border padding
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	// 60% for transcript, minus border padding
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		itemIndex := m.listOffset + (relY / linesPerItem)
		return regionList, itemIndex
	}

	if x > listBoxRight+1 {
		return regionPreview, -1
	}

	return regionNone, -1
}

func (m model) statusBar() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d/%d messages", len(m.results), len(m.sess.Messages)))
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, "up/dn navigate")
	parts = append(parts, "C-u/C-d scroll")
	parts = append(parts, "Enter copy")
	parts = append(parts, "C-t "+string(m.theme.Toggle()))
	parts = append(parts, "Esc quit")
	return m.styles.statusBar.Render(strings.Join(parts, " | "))
}

func (m model) doSearch(query string) tea.Cmd {
	messages := m.sess.Messages
	return func() tea.Msg {
		return searchResultMsg{
			query:   query,
			results: search.Match(messages, search.Options{Query: query}),
		}
	}
}

func (m model) scheduleDebouncedSearch(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) saveTheme() tea.Cmd {
	store := m.opts.Prefs
	theme := m.theme
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{err: store.SetTheme(theme)}
	}
}

// renderOptions are the transcript options for the current selection.
func (m model) renderOptions() render.Options {
	hit := -1
	if len(m.results) > 0 && m.cursor < len(m.results) {
		hit = m.results[m.cursor].Index
	}
	return render.Options{
		Self:  m.opts.Self,
		Other: m.opts.Other,
		Width: m.previewWidth(),
		Query: m.query,
		Hit:   hit,
		Light: m.theme.Light(),
	}
}

func (m model) wantPreviewKey() string {
	o := m.renderOptions()
	return previewCacheKey(m.sess.ID.String(), o.Hit, o.Light, o.Query, o.Width)
}

func (m model) loadCurrentPreview() tea.Cmd {
	key := m.wantPreviewKey()
	if key == m.previewKey {
		return nil // already showing this transcript
	}
	return loadPreviewCmd(m.sess.Messages, key, m.renderOptions())
}

func waitForChange(ch <-chan load.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{event: ev}
	}
}

func reloadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		exp, err := load.File(path)
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		return sessionLoadedMsg{sess: session.New(exp)}
	}
}
