package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/wa-transcript/internal/parse"
)

var messages = parse.Parse(`[01/02/23, 09.05.00] Alice: Hello
world
[01/02/23, 09.06.00] Bob: image omitted
[02/02/23, 10.00.00] Alice: see the WORLD cup tonight
[02/02/23, 10.01.00] Bob: ok`)

func TestMatch_EmptyQueryReturnsAll(t *testing.T) {
	results := Match(messages, Options{})

	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, parse.KindImage, results[1].Kind)
}

func TestMatch_CaseInsensitiveBody(t *testing.T) {
	results := Match(messages, Options{Query: "world"})

	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 2, results[1].Index)
	assert.Equal(t, "Hello >>>world<<<", results[0].Snippet)
	assert.Contains(t, results[1].Snippet, ">>>WORLD<<<")
}

func TestMatch_AuthorQuery(t *testing.T) {
	results := Match(messages, Options{Query: "bob"})
	require.Len(t, results, 2)
	assert.Equal(t, "Bob", results[0].Message.Author)
}

func TestMatch_Filters(t *testing.T) {
	results := Match(messages, Options{Author: "alice"})
	require.Len(t, results, 2)

	results = Match(messages, Options{Kind: parse.KindImage})
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Index)

	results = Match(messages, Options{Limit: 3})
	assert.Len(t, results, 3)
}

func TestMatch_NoHits(t *testing.T) {
	assert.Empty(t, Match(messages, Options{Query: "absent"}))
	assert.Empty(t, Match(nil, Options{Query: "x"}))
}

func TestMakeSnippet(t *testing.T) {
	long := strings.Repeat("a", 50) + "needle" + strings.Repeat("b", 50)

	s := makeSnippet(long, "NEEDLE", 5)
	assert.Equal(t, "...aaaaa>>>needle<<<bbbbb...", s)

	s = makeSnippet(long, "", 5)
	assert.Equal(t, strings.Repeat("a", 10)+"...", s)

	s = makeSnippet("olá mundo", "mundo", 10)
	assert.Equal(t, "olá >>>mundo<<<", s)
}
