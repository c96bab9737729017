package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/wa-transcript/internal/load"
	"github.com/Zuo-Peng/wa-transcript/internal/parse"
)

const chat = `[01/02/23, 09.05.00] Alice: Hello
world
[01/02/23, 09.06.00] Bob: image omitted
[02/02/23, 10.00.00] alice: Location: https://maps.example/x
[02/02/23, 10.01.00] Alice: ok`

func TestNew(t *testing.T) {
	s := New(&load.Export{Path: "_chat.txt", Text: chat, Size: int64(len(chat))})

	require.Len(t, s.Messages, 4)
	assert.Equal(t, "_chat.txt", s.Path)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.False(t, s.Empty())
	assert.Contains(t, s.String(), "messages=4")
}

func TestNew_ReplacesWholesale(t *testing.T) {
	first := New(&load.Export{Text: chat})
	second := New(&load.Export{Text: "[01/02/23, 09.05.00] Carol: hi"})

	assert.NotEqual(t, first.ID, second.ID)
	require.Len(t, second.Messages, 1)
	assert.Equal(t, "Carol", second.Messages[0].Author)
}

func TestNew_NilExport(t *testing.T) {
	s := New(nil)
	assert.True(t, s.Empty())
}

func TestMessage(t *testing.T) {
	s := New(&load.Export{Text: chat})

	m, err := s.Message(2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", m.Author)
	assert.Equal(t, 3, m.Line)

	_, err = s.Message(0)
	require.Error(t, err)
	_, err = s.Message(5)
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	st := New(&load.Export{Text: chat}).Stats()

	require.Len(t, st.Authors, 3)
	assert.Equal(t, "Alice", st.Authors[0].Author)
	assert.Equal(t, 2, st.Authors[0].Messages)
	assert.Equal(t, 0, st.Authors[0].Media)
	// author labels are kept verbatim, so "alice" is its own row
	assert.Equal(t, "alice", st.Authors[1].Author)
	assert.Equal(t, 1, st.Authors[1].Media)
	assert.Equal(t, "Bob", st.Authors[2].Author)
	assert.True(t, st.Authors[0].First.Before(st.Authors[0].Last))

	assert.Equal(t, 2, st.Kinds[parse.KindText])
	assert.Equal(t, 1, st.Kinds[parse.KindImage])
	assert.Equal(t, 1, st.Kinds[parse.KindLocation])
	assert.Equal(t, 2, st.Days)
}
