package game

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Cell is one square of the board.
// A Wall cell never holds a bomb or a power-up.
type Cell struct {
	Terrain   TileType
	HasPlayer bool
	HasEnemy  bool
	Bomb      *Bomb
	PowerUp   *PowerUpType
}

// Walkable reports whether an entity may step onto the cell.
func (c *Cell) Walkable() bool {
	return c.Terrain == Empty && c.Bomb == nil
}

// Grid is the fixed-size cell matrix. It is never resized after construction.
type Grid struct {
	Width  int
	Height int
	cells  [][]Cell
}

// NewGrid creates an all-empty grid.
func NewGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

// IsValidPosition bounds-checks a coordinate.
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Cell returns the mutable cell at (x, y).
// Indexing outside the grid is a programming error and panics.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.IsValidPosition(x, y) {
		panic(fmt.Sprintf("game: cell (%d,%d) outside %dx%d grid", x, y, g.Width, g.Height))
	}
	return &g.cells[y][x]
}

// At is Cell for a Position.
func (g *Grid) At(p Position) *Cell {
	return g.Cell(p.X, p.Y)
}

// Walkable is the bounds-checked form of Cell.Walkable.
func (g *Grid) Walkable(p Position) bool {
	return g.IsValidPosition(p.X, p.Y) && g.At(p).Walkable()
}

// Terrain returns a copy of the terrain layer.
func (g *Grid) Terrain() [][]TileType {
	out := make([][]TileType, g.Height)
	for y := range out {
		out[y] = make([]TileType, g.Width)
		for x := range out[y] {
			out[y][x] = g.cells[y][x].Terrain
		}
	}
	return out
}

// SetTerrain substitutes the terrain cell-for-cell. Occupancy, bombs and
// power-ups are left alone except on cells that become Wall.
func (g *Grid) SetTerrain(terrain [][]TileType) error {
	if err := CheckDimensions(terrain, g.Width, g.Height); err != nil {
		return err
	}
	for y, row := range terrain {
		for x, t := range row {
			c := &g.cells[y][x]
			c.Terrain = t
			if t == Wall {
				c.Bomb = nil
				c.PowerUp = nil
			}
		}
	}
	return nil
}

// CheckDimensions verifies that terrain is exactly width x height.
func CheckDimensions(terrain [][]TileType, width, height int) error {
	if len(terrain) != height {
		return fmt.Errorf("terrain has %d rows, want %d", len(terrain), height)
	}
	for y, row := range terrain {
		if len(row) != width {
			return fmt.Errorf("terrain row %d has %d cells, want %d", y, len(row), width)
		}
	}
	return nil
}

// GenerateTerrain builds the classic layout without any spawn protection:
//   - Border is all Wall
//   - Wall at every position where both X and Y are even
//   - Remaining cells are DestructibleWall with probability density
//
// EnforceSpawnSafety must run afterwards.
func GenerateTerrain(width, height int, density float64, rng *rand.Rand) [][]TileType {
	terrain := make([][]TileType, height)
	for y := 0; y < height; y++ {
		terrain[y] = make([]TileType, width)
		for x := 0; x < width; x++ {
			switch {
			case x == 0 || y == 0 || x == width-1 || y == height-1:
				terrain[y][x] = Wall
			case x%2 == 0 && y%2 == 0:
				terrain[y][x] = Wall
			case rng.Float64() < density:
				terrain[y][x] = DestructibleWall
			default:
				terrain[y][x] = Empty
			}
		}
	}
	return terrain
}

// EnforceSpawnSafety forces every cell of the spawn safe zone to Empty.
func EnforceSpawnSafety(terrain [][]TileType, spawns []Position) {
	if len(terrain) == 0 {
		return
	}
	height, width := len(terrain), len(terrain[0])
	SafeZone(spawns, width, height).Each(func(p Position) {
		terrain[p.Y][p.X] = Empty
	})
}

// SafeZone returns the spawn-safe cells: each spawn plus its two
// neighbours pointing into the board (an L-shaped escape route).
func SafeZone(spawns []Position, width, height int) mapset.Set[Position] {
	safe := mapset.New[Position]()
	for _, sp := range spawns {
		dx, dy := 1, 1
		if sp.X >= width/2 {
			dx = -1
		}
		if sp.Y >= height/2 {
			dy = -1
		}
		for _, p := range []Position{sp, {X: sp.X + dx, Y: sp.Y}, {X: sp.X, Y: sp.Y + dy}} {
			if p.X > 0 && p.Y > 0 && p.X < width-1 && p.Y < height-1 {
				safe.Put(p)
			}
		}
	}
	return safe
}
