package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/wa-transcript/internal/parse"
)

var ansiRe = regexp.MustCompile("\033\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

var chat = parse.Parse(`[01/02/23, 09.05.00] Nanda: Hello
world
[01/02/23, 09.06.00] Broo Muksin: image omitted
[02/02/23, 10.00.00] Carol: Location: https://maps.example/x
[02/02/23, 10.01.00] nanda: bye`)

func TestTranscript_Empty(t *testing.T) {
	out, hit := Transcript(nil, Options{Hit: -1})
	assert.Equal(t, EmptyPlaceholder+"\n", out)
	assert.Equal(t, -1, hit)
}

func TestTranscript_GroupsByDay(t *testing.T) {
	out, hit := Transcript(chat, Options{Self: "nanda", Other: "broo muksin", Hit: -1})
	plain := stripANSI(out)

	assert.Equal(t, -1, hit)
	assert.Equal(t, 2, strings.Count(plain, "=== "))
	assert.Contains(t, plain, "=== Wed, 01/02/23 ===")
	assert.Contains(t, plain, "=== Thu, 02/02/23 ===")

	lines := strings.Split(plain, "\n")
	require.Greater(t, len(lines), 4)
	assert.Equal(t, "=== Wed, 01/02/23 ===", lines[0])
	assert.Equal(t, "Nanda (you) > 09:05", lines[1])
	assert.Equal(t, "      Hello", lines[2])
	assert.Equal(t, "      world", lines[3])

	assert.Contains(t, plain, "Broo Muksin > 09:06\n  [Image]\n")
	assert.Contains(t, plain, "Carol > 10:00\n  [Location]\n  https://maps.example/x\n")
	assert.Contains(t, plain, "nanda (you) > 10:01")
}

func TestTranscript_Hit(t *testing.T) {
	out, hit := Transcript(chat, Options{Self: "nanda", Hit: 1})

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), hit)
	assert.Equal(t, ">> Broo Muksin > 09:06 <<", stripANSI(lines[hit]))
	// day bar + header + two body lines + blank
	assert.Equal(t, 5, hit)
}

func TestTranscript_HighlightsQuery(t *testing.T) {
	out, _ := Transcript(chat[:1], Options{Query: "WORLD", Hit: -1})
	assert.Contains(t, out, colorBoldRed+"world"+colorReset)
}

func TestTranscript_Wraps(t *testing.T) {
	msgs := parse.Parse("[01/02/23, 09.05.00] Bob: " + strings.Repeat("x", 30))
	out, _ := Transcript(msgs, Options{Width: 12, Hit: -1})

	for _, l := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(stripANSI(l))), 12, l)
	}
}

func TestTranscript_LightPalette(t *testing.T) {
	dark, _ := Transcript(chat, Options{Hit: -1})
	light, _ := Transcript(chat, Options{Hit: -1, Light: true})

	assert.NotEqual(t, dark, light)
	assert.Equal(t, stripANSI(dark), stripANSI(light))
}

func TestAttribute(t *testing.T) {
	assert.Equal(t, AttrSelf, Attribute(" NANDA ", "nanda", "broo"))
	assert.Equal(t, AttrOther, Attribute("Broo", "nanda", "broo"))
	assert.Equal(t, AttrThird, Attribute("system", "nanda", "broo"))
	assert.Equal(t, AttrThird, Attribute("nanda x", "nanda", "broo"))
	// composed and decomposed forms compare equal
	assert.Equal(t, AttrSelf, Attribute("Jose\u0301", "jos\u00e9", ""))
}

func TestBody(t *testing.T) {
	assert.Equal(t, "hi\nthere", Body("hi\nthere"))
	assert.Equal(t, "[Sticker]", Body("\u200esticker omitted"))
	assert.Equal(t, "[Location] https://maps.example/x", Body("Location: https://maps.example/x"))
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abc"}, wrapLine("abc", 0))
	assert.Equal(t, []string{"ab\033[1m", "c"}, wrapLine("ab\033[1mc", 2))
	assert.Equal(t, []string{""}, wrapLine("", 5))
	// wide runes count as two columns
	assert.Equal(t, []string{"日本", "語"}, wrapLine("日本語", 4))
}
