package load

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotFound = errors.New("export not found")
	ErrNotText  = errors.New("export is not a text file")
)

const sniffLen = 512

const utf8BOM = "\xef\xbb\xbf"

// Export is the raw content of one export file.
type Export struct {
	Path  string
	Text  string
	Size  int64
	Mtime time.Time
}

// Empty reports whether there is nothing to parse.
func (e *Export) Empty() bool {
	return e == nil || strings.TrimSpace(e.Text) == ""
}

// File reads a whole export. Directories and binary files are rejected.
func File(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotText, path)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	sniff := data
	if len(sniff) > sniffLen {
		// cut on a rune boundary
		cut := sniffLen
		for cut > 0 && !utf8.RuneStart(data[cut]) {
			cut--
		}
		sniff = data[:cut]
	}
	if len(sniff) > 0 && !isText(mimetype.Detect(sniff)) {
		return nil, fmt.Errorf("%w: %s", ErrNotText, path)
	}

	return &Export{
		Path:  path,
		Text:  strings.TrimPrefix(string(data), utf8BOM),
		Size:  info.Size(),
		Mtime: info.ModTime(),
	}, nil
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// Default loads the well-known export next to the working directory.
// Failures are not reported: a missing or unreadable default is an empty export.
func Default(log *slog.Logger, path string) *Export {
	exp, err := File(path)
	if err != nil {
		log.Debug("default export unavailable", "path", path, "err", err)
		return &Export{Path: path}
	}
	return exp
}

// FileInfo describes an export candidate found by Scan.
type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// Scan lists the .txt files directly inside root. Subdirectories are not descended.
func Scan(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return files, nil
}
