package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// schemaVersion should be bumped whenever stored keys change meaning.
const schemaVersion = "1"

const themeKey = "theme"

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: %q (want light or dark)", ErrUnknownTheme, s)
}

func (t Theme) Light() bool {
	return t == ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Light() {
		return ThemeDark
	}
	return ThemeLight
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrateSchemaVersion(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate prefs: %w", err)
	}
	return s, nil
}

func (s *Store) migrateSchemaVersion() error {
	ver, err := s.get("schema_version")
	if err != nil {
		return err
	}
	if ver == schemaVersion {
		return nil
	}
	return s.set("schema_version", schemaVersion)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Theme returns the stored theme, dark when none was saved.
func (s *Store) Theme() (Theme, error) {
	v, err := s.get(themeKey)
	if err != nil {
		return ThemeDark, err
	}
	if v == "" {
		return ThemeDark, nil
	}
	t, err := ParseTheme(v)
	if err != nil {
		// a bad value is treated as unset
		return ThemeDark, nil
	}
	return t, nil
}

func (s *Store) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return s.set(themeKey, string(t))
}

// ToggleTheme flips the stored theme and returns the new value.
func (s *Store) ToggleTheme() (Theme, error) {
	cur, err := s.Theme()
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	return next, s.SetTheme(next)
}

func (s *Store) get(key string) (string, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	return err
}
