package form

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Store persists control values in a JSON file, one top-level key per
// control name. The document is kept as raw JSON and edited in place,
// so keys written by other programs survive round trips.
type Store struct {
	path string
	doc  string
}

// NewStore returns an empty store that will save to path.
func NewStore(path string) *Store {
	return &Store{path: path, doc: "{}"}
}

// OpenStore loads the store at path. A missing file yields an empty
// store; a malformed one is an error.
func OpenStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(path), nil
	}
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("settings file %s is not valid JSON", path)
	}
	return &Store{path: path, doc: string(data)}, nil
}

// Value returns the stored value for name, untyped: JSON booleans come
// back as bool, numbers as float64, strings as string. The caller is
// expected to coerce, typically through Truthy.
func (s *Store) Value(name string) (any, bool) {
	r := gjson.Get(s.doc, escapePath(name))
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

// Set stores v under name.
func (s *Store) Set(name string, v any) error {
	doc, err := sjson.Set(s.doc, escapePath(name), v)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// Save writes the document to the store's path. The write goes through
// a temporary file and a rename, so a crash can't leave a half-written
// settings file.
func (s *Store) Save() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(s.doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// escapePath quotes the characters that are special in gjson/sjson
// paths, so control names are always plain keys.
func escapePath(name string) string {
	if !strings.ContainsAny(name, `.*?|\`) {
		return name
	}
	var sb strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
