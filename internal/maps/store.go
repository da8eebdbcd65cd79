package maps

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const fileExt = ".map"

// Store keeps named layouts as msgpack files in one directory.
type Store struct {
	dir    string
	width  int
	height int
}

// NewStore opens (creating if needed) a layout directory for boards of the
// given size.
func NewStore(dir string, width, height int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create map dir %s: %w", dir, err)
	}
	return &Store{dir: dir, width: width, height: height}, nil
}

func (s *Store) path(name string) (string, error) {
	base := slug(name)
	if base == "" {
		return "", fmt.Errorf("%w: name %q has no usable characters", ErrInvalidLayout, name)
	}
	return filepath.Join(s.dir, base+fileExt), nil
}

// Save validates and writes a layout, replacing any layout of the same name.
// A different name that maps to the same file is rejected.
func (s *Store) Save(l Layout) error {
	if err := Validate(l, s.width, s.height); err != nil {
		return err
	}
	path, err := s.path(l.Name)
	if err != nil {
		return err
	}
	if old, err := s.read(path); err == nil && old.Name != l.Name {
		return fmt.Errorf("%w: name %q collides with stored map %q", ErrInvalidLayout, l.Name, old.Name)
	}

	data, err := msgpack.Marshal(&l)
	if err != nil {
		return fmt.Errorf("encode map %q: %w", l.Name, err)
	}

	// Write to a temp file first so a crash never leaves half a map behind
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write map %q: %w", l.Name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write map %q: %w", l.Name, err)
	}

	log.Printf("[MAPS] Saved %q to %s", l.Name, path)
	return nil
}

// Load reads a layout by its exact name.
func (s *Store) Load(name string) (Layout, error) {
	path, err := s.path(name)
	if err != nil {
		return Layout{}, err
	}
	l, err := s.read(path)
	if err != nil {
		return Layout{}, err
	}
	if l.Name != name {
		return Layout{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return l, nil
}

// Delete removes a layout by its exact name. A file that no longer decodes
// is removed as well.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if l, err := s.read(path); err == nil && l.Name != name {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("delete map %q: %w", name, err)
	}
	log.Printf("[MAPS] Deleted %q", name)
	return nil
}

// List returns every readable layout, sorted by name. Unreadable files are
// logged and skipped.
func (s *Store) List() ([]Layout, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}

	layouts := make([]Layout, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		l, err := s.read(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			log.Printf("[MAPS] Skipping %s: %v", entry.Name(), err)
			continue
		}
		layouts = append(layouts, l)
	}

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].Name < layouts[j].Name })
	return layouts, nil
}

func (s *Store) read(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Layout{}, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return Layout{}, fmt.Errorf("read map: %w", err)
	}

	var l Layout
	if err := msgpack.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("%w: decode %s: %v", ErrInvalidLayout, filepath.Base(path), err)
	}
	if err := Validate(l, s.width, s.height); err != nil {
		return Layout{}, err
	}
	return l, nil
}
