package maps

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/amalg/bomberman-legend/internal/game"
)

func testLayout(name string, seed int64) Layout {
	config := game.DefaultConfig()
	terrain := game.GenerateTerrain(config.Width, config.Height, config.DestructibleDensity, rand.New(rand.NewSource(seed)))
	game.EnforceSpawnSafety(terrain, game.SpawnPositions(config.Width, config.Height))
	return Layout{
		Name:        name,
		Description: "generated for tests",
		Width:       config.Width,
		Height:      config.Height,
		Terrain:     terrain,
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	config := game.DefaultConfig()
	s, err := NewStore(t.TempDir(), config.Width, config.Height)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := testLayout("Brick Yard", 1)

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("Brick Yard")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Name != want.Name || got.Description != want.Description {
		t.Errorf("metadata mismatch: got %q/%q", got.Name, got.Description)
	}
	for y := range want.Terrain {
		for x := range want.Terrain[y] {
			if got.Terrain[y][x] != want.Terrain[y][x] {
				t.Fatalf("terrain mismatch at (%d,%d): %s != %s", x, y, got.Terrain[y][x], want.Terrain[y][x])
			}
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	first := testLayout("Arena", 1)
	second := testLayout("Arena", 2)
	second.Description = "second version"

	if err := s.Save(first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("Save second: %v", err)
	}
	got, err := s.Load("Arena")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Description != "second version" {
		t.Errorf("expected the second version, got %q", got.Description)
	}
}

func TestSaveRejectsCollidingName(t *testing.T) {
	s := newTestStore(t)
	first := testLayout("Arena One", 1)
	first.Description = "first"
	second := testLayout("arena-one", 2)
	second.Description = "second"

	if err := s.Save(first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := s.Save(second); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout for a colliding name, got %v", err)
	}

	got, err := s.Load("Arena One")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "Arena One" || got.Description != "first" {
		t.Errorf("first map was replaced: got %q/%q", got.Name, got.Description)
	}
	if _, err := s.Load("arena-one"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound loading the rejected name, got %v", err)
	}
	if err := s.Delete("arena-one"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting the rejected name, got %v", err)
	}

	layouts, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(layouts) != 1 {
		t.Errorf("expected 1 stored map, got %d", len(layouts))
	}
}

func TestListAndDelete(t *testing.T) {
	s := newTestStore(t)
	for i, name := range []string{"Zeta", "Alpha", "Mid"} {
		if err := s.Save(testLayout(name, int64(i))); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	// Junk in the directory is skipped
	os.WriteFile(filepath.Join(s.dir, "broken.map"), []byte("not msgpack"), 0o644)
	os.WriteFile(filepath.Join(s.dir, "notes.txt"), []byte("ignored"), 0o644)

	layouts, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, l := range layouts {
		names = append(names, l.Name)
	}
	if len(names) != 3 || names[0] != "Alpha" || names[1] != "Mid" || names[2] != "Zeta" {
		t.Fatalf("expected [Alpha Mid Zeta], got %v", names)
	}

	if err := s.Delete("Mid"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("Mid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete("Mid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load("nowhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	config := game.DefaultConfig()
	tests := []struct {
		name   string
		mutate func(l *Layout)
	}{
		{"empty name", func(l *Layout) { l.Name = "  " }},
		{"wrong size", func(l *Layout) { l.Width = 11 }},
		{"ragged rows", func(l *Layout) { l.Terrain[3] = l.Terrain[3][:5] }},
		{"unknown tile", func(l *Layout) { l.Terrain[5][5] = game.TileType(9) }},
		{"blocked spawn", func(l *Layout) { l.Terrain[1][1] = game.DestructibleWall }},
		{"walled spawn", func(l *Layout) { l.Terrain[11][13] = game.Wall }},
		{"too few cells", func(l *Layout) {
			for y := range l.Terrain {
				for x := range l.Terrain[y] {
					l.Terrain[y][x] = game.Wall
				}
			}
			for _, sp := range game.SpawnPositions(config.Width, config.Height) {
				l.Terrain[sp.Y][sp.X] = game.Empty
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLayout("Broken", 1)
			tt.mutate(&l)
			if err := Validate(l, config.Width, config.Height); !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("expected ErrInvalidLayout, got %v", err)
			}
		})
	}

	if err := Validate(testLayout("Fine", 1), config.Width, config.Height); err != nil {
		t.Errorf("valid layout rejected: %v", err)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	l := testLayout("Blocked", 1)
	l.Terrain[1][1] = game.Wall

	if err := s.Save(l); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
	if _, err := s.Load("Blocked"); !errors.Is(err, ErrNotFound) {
		t.Error("an invalid layout must not be written")
	}
}

func TestFromGrid(t *testing.T) {
	g := game.NewGrid(15, 13)
	g.Cell(3, 3).Terrain = game.DestructibleWall

	l := FromGrid("Snap", "", g)
	if l.Width != 15 || l.Height != 13 || l.Terrain[3][3] != game.DestructibleWall {
		t.Errorf("unexpected layout: %dx%d tile=%s", l.Width, l.Height, l.Terrain[3][3])
	}
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Brick Yard", "brick-yard"},
		{"  spaced  out  ", "spaced-out"},
		{"../../etc/passwd", "etc-passwd"},
		{"snake_case_9", "snake_case_9"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
