package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/wa-transcript/internal/parse"
	"github.com/Zuo-Peng/wa-transcript/internal/render"
)

// previewRenderedMsg is sent when an async transcript render completes.
type previewRenderedMsg struct {
	key     string
	content string
	hitLine int
}

// loadPreviewCmd returns a tea.Cmd that renders the transcript async,
// highlighting the message at index hit.
func loadPreviewCmd(messages []parse.Message, key string, opts render.Options) tea.Cmd {
	return func() tea.Msg {
		content, hitLine := render.Transcript(messages, opts)
		return previewRenderedMsg{
			key:     key,
			content: content,
			hitLine: hitLine,
		}
	}
}

func previewCacheKey(sessionID string, hit int, light bool, query string, width int) string {
	return fmt.Sprintf("%s:%d:%t:%d:%s", sessionID, hit, light, width, query)
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int, st styles) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = st.panelBorder
	return vp
}
