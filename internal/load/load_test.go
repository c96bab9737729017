package load

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/wa-transcript/internal/parse"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestFile_ReadsText(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "_chat.txt", "[01/02/23, 09.05.00] Alice: Hello\n")

	exp, err := File(p)
	require.NoError(t, err)
	assert.Equal(t, p, exp.Path)
	assert.Equal(t, "[01/02/23, 09.05.00] Alice: Hello\n", exp.Text)
	assert.EqualValues(t, len(exp.Text), exp.Size)
	assert.False(t, exp.Empty())
}

func TestFile_StripsBOM(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "_chat.txt", "\xef\xbb\xbf[01/02/23, 09.05.00] Alice: Hello\n[01/02/23, 09.06.00] Bob: yo")

	exp, err := File(p)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(exp.Text, "\ufeff"))

	msgs := parse.Parse(exp.Text)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Alice", msgs[0].Author)
	assert.Equal(t, "Hello", msgs[0].Body)
	assert.Equal(t, 9, msgs[0].Timestamp.Hour())
	assert.Equal(t, "Bob", msgs[1].Author)
}

func TestFile_LongMultibyteText(t *testing.T) {
	dir := t.TempDir()
	// multi-byte runes straddle the sniff boundary
	text := strings.Repeat("[01/02/23, 09.05.00] Ana: olá \u200eimage omitted é\n", 40)
	p := writeFile(t, dir, "chat.txt", text)

	exp, err := File(p)
	require.NoError(t, err)
	assert.Equal(t, text, exp.Text)
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFile_Directory(t *testing.T) {
	_, err := File(t.TempDir())
	require.ErrorIs(t, err, ErrNotText)
}

func TestFile_Binary(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "photo.txt", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

	_, err := File(p)
	require.ErrorIs(t, err, ErrNotText)
}

func TestFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "empty.txt", "")

	exp, err := File(p)
	require.NoError(t, err)
	assert.True(t, exp.Empty())
}

func TestDefault_MissingIsEmpty(t *testing.T) {
	exp := Default(discardLogger(), filepath.Join(t.TempDir(), "_chat.txt"))
	require.NotNil(t, exp)
	assert.True(t, exp.Empty())
}

func TestDefault_Present(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "_chat.txt", "[01/02/23, 09.05.00] Alice: Hello")

	exp := Default(discardLogger(), p)
	assert.False(t, exp.Empty())
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x")
	writeFile(t, dir, "B.TXT", "x")
	writeFile(t, dir, "c.json", "{}")
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden"), 0o755))
	writeFile(t, filepath.Join(dir, ".hidden"), "d.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub"), "e.txt", "x")
	writeFile(t, dir, ".f.txt", "x")

	files, err := Scan(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f.Path))
	}
	assert.ElementsMatch(t, []string{"a.txt", "B.TXT"}, names)
}

func TestWatch_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "_chat.txt", "[01/02/23, 09.05.00] Alice: Hello")
	writeFile(t, dir, "other.txt", "x")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := Watch(ctx, discardLogger(), p)
	require.NoError(t, err)

	writeFile(t, dir, "other.txt", "y")
	require.NoError(t, os.WriteFile(p, []byte("[01/02/23, 09.05.00] Alice: Bye"), 0o644))

	select {
	case ev := <-events:
		abs, _ := filepath.Abs(p)
		assert.Equal(t, abs, ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event")
	}

	cancel()
	for range events {
	}
}
