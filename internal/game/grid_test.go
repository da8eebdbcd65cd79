package game

import (
	"math/rand"
	"testing"
)

func TestIsValidPosition(t *testing.T) {
	g := NewGrid(15, 13)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{14, 12, true},
		{7, 6, true},
		{-1, 0, false},
		{0, -1, false},
		{15, 0, false},
		{0, 13, false},
		{15, 13, false},
	}
	for _, tt := range tests {
		if got := g.IsValidPosition(tt.x, tt.y); got != tt.want {
			t.Errorf("IsValidPosition(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCellOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(15, 13)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an out-of-bounds cell")
		}
	}()
	g.Cell(15, 0)
}

func TestGenerateTerrain(t *testing.T) {
	config := DefaultConfig()
	terrain := GenerateTerrain(config.Width, config.Height, config.DestructibleDensity, rand.New(rand.NewSource(3)))

	// Check dimensions
	if len(terrain) != config.Height {
		t.Fatalf("expected height %d, got %d", config.Height, len(terrain))
	}
	if len(terrain[0]) != config.Width {
		t.Fatalf("expected width %d, got %d", config.Width, len(terrain[0]))
	}

	// Check border walls
	for x := 0; x < config.Width; x++ {
		if terrain[0][x] != Wall {
			t.Errorf("top border at (%d,0) should be Wall", x)
		}
		if terrain[config.Height-1][x] != Wall {
			t.Errorf("bottom border at (%d,%d) should be Wall", x, config.Height-1)
		}
	}
	for y := 0; y < config.Height; y++ {
		if terrain[y][0] != Wall {
			t.Errorf("left border at (0,%d) should be Wall", y)
		}
		if terrain[y][config.Width-1] != Wall {
			t.Errorf("right border at (%d,%d) should be Wall", config.Width-1, y)
		}
	}

	// Check pillar pattern (even,even interior positions)
	for y := 2; y < config.Height-1; y += 2 {
		for x := 2; x < config.Width-1; x += 2 {
			if terrain[y][x] != Wall {
				t.Errorf("pillar at (%d,%d) should be Wall, got %s", x, y, terrain[y][x])
			}
		}
	}
}

func TestGenerateTerrainFullDensity(t *testing.T) {
	terrain := GenerateTerrain(15, 13, 1, rand.New(rand.NewSource(1)))
	for y := 1; y < 12; y++ {
		for x := 1; x < 14; x++ {
			if x%2 == 0 && y%2 == 0 {
				continue
			}
			if terrain[y][x] != DestructibleWall {
				t.Fatalf("(%d,%d) should be DestructibleWall at density 1, got %s", x, y, terrain[y][x])
			}
		}
	}
}

func TestEnforceSpawnSafety(t *testing.T) {
	terrain := GenerateTerrain(15, 13, 1, rand.New(rand.NewSource(1)))
	spawns := SpawnPositions(15, 13)
	EnforceSpawnSafety(terrain, spawns)

	safe := SafeZone(spawns, 15, 13)
	if safe.Size() != 12 {
		t.Fatalf("expected 3 safe cells per corner, got %d", safe.Size())
	}
	safe.Each(func(p Position) {
		if terrain[p.Y][p.X] != Empty {
			t.Errorf("safe cell %+v should be Empty, got %s", p, terrain[p.Y][p.X])
		}
	})

	// Every spawn has an open neighbour to run to
	for _, sp := range spawns {
		open := 0
		for _, d := range Directions {
			n := sp.Step(d)
			if terrain[n.Y][n.X] == Empty {
				open++
			}
		}
		if open < 1 {
			t.Errorf("spawn %+v has no escape route", sp)
		}
	}
}

func TestSuppliedTerrainIsMadeSafe(t *testing.T) {
	config := testConfig()
	terrain := make([][]TileType, config.Height)
	for y := range terrain {
		terrain[y] = make([]TileType, config.Width)
		for x := range terrain[y] {
			terrain[y][x] = DestructibleWall
		}
	}

	b, err := NewSurvivorBoard(config, "Tester", WithTerrain(terrain))
	if err != nil {
		t.Fatalf("NewSurvivorBoard: %v", err)
	}
	for _, sp := range SpawnPositions(config.Width, config.Height) {
		if b.Grid.At(sp).Terrain != Empty {
			t.Errorf("spawn %+v should have been cleared", sp)
		}
	}
	if b.Grid.Cell(5, 5).Terrain != DestructibleWall {
		t.Error("cells outside the safe zone should keep the supplied terrain")
	}
	if terrain[1][1] != DestructibleWall {
		t.Error("the caller's terrain must not be modified")
	}
}

func TestSuppliedTerrainWrongSize(t *testing.T) {
	config := testConfig()
	terrain := GenerateTerrain(11, 11, 0, rand.New(rand.NewSource(1)))
	if _, err := NewSurvivorBoard(config, "Tester", WithTerrain(terrain)); err == nil {
		t.Error("expected an error for mismatched terrain dimensions")
	}
}

func TestTerrainRoundTrip(t *testing.T) {
	g := NewGrid(15, 13)
	terrain := GenerateTerrain(15, 13, 0.5, rand.New(rand.NewSource(9)))
	if err := g.SetTerrain(terrain); err != nil {
		t.Fatalf("SetTerrain: %v", err)
	}
	got := g.Terrain()
	for y := range terrain {
		for x := range terrain[y] {
			if got[y][x] != terrain[y][x] {
				t.Fatalf("terrain mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestWalkable(t *testing.T) {
	g := NewGrid(5, 5)
	g.Cell(1, 1).Terrain = Wall
	g.Cell(2, 1).Terrain = DestructibleWall
	g.Cell(3, 1).Bomb = &Bomb{}

	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{X: 0, Y: 0}, true},
		{Position{X: 1, Y: 1}, false},
		{Position{X: 2, Y: 1}, false},
		{Position{X: 3, Y: 1}, false},
		{Position{X: -1, Y: 0}, false},
	}
	for _, tt := range tests {
		if got := g.Walkable(tt.pos); got != tt.want {
			t.Errorf("Walkable(%+v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}
