package game

import (
	"time"
)

// TileType represents the terrain of a cell on the game board.
type TileType int

const (
	Empty            TileType = iota
	Wall                      // Indestructible
	DestructibleWall          // Destroyed by explosions
)

func (t TileType) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case DestructibleWall:
		return "destructible"
	default:
		return "unknown"
	}
}

// Direction represents a movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four axis directions in a fixed order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit step for the direction.
func (d Direction) Delta() Position {
	switch d {
	case DirUp:
		return Position{X: 0, Y: -1}
	case DirDown:
		return Position{X: 0, Y: 1}
	case DirLeft:
		return Position{X: -1, Y: 0}
	case DirRight:
		return Position{X: 1, Y: 0}
	}
	return Position{}
}

// Position represents a coordinate on the board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbouring position in direction d.
func (p Position) Step(d Direction) Position {
	delta := d.Delta()
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Manhattan returns the grid distance between two positions.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Adjacent reports whether o is one orthogonal step away from p.
func (p Position) Adjacent(o Position) bool {
	return p.Manhattan(o) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PowerUpType identifies the effect of a collectible power-up.
type PowerUpType int

const (
	PowerUpExtraBomb PowerUpType = iota
	PowerUpRange
	PowerUpSpeed
	PowerUpLife
)

var powerUpTypes = [...]PowerUpType{PowerUpExtraBomb, PowerUpRange, PowerUpSpeed, PowerUpLife}

func (t PowerUpType) String() string {
	switch t {
	case PowerUpExtraBomb:
		return "extra-bomb"
	case PowerUpRange:
		return "range-up"
	case PowerUpSpeed:
		return "speed"
	case PowerUpLife:
		return "life"
	default:
		return "unknown"
	}
}

// GameStatus represents the current game phase.
type GameStatus int

const (
	StatusPlaying  GameStatus = iota
	StatusPaused              // Timers frozen, input ignored
	StatusGameOver            // Terminal
	StatusVictory             // Terminal
)

func (s GameStatus) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game over"
	case StatusVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends the simulation.
func (s GameStatus) Terminal() bool {
	return s == StatusGameOver || s == StatusVictory
}

// Mode selects the rule set a board runs.
type Mode int

const (
	ModeSurvivor Mode = iota // One human against bots and wandering enemies
	ModeLegend               // Two humans against the bomber and yellow enemies
)

func (m Mode) String() string {
	if m == ModeLegend {
		return "Legend 1v1"
	}
	return "Survivor"
}

// RefillScope decides who gets a bomb slot back when a bomb detonates.
type RefillScope int

const (
	RefillOwner     RefillScope = iota // Only the bomb's owner
	RefillBroadcast                    // Every player, bounded by their own capacity
)

// RespawnPolicy decides how a damaged player returns to play.
type RespawnPolicy int

const (
	RespawnImmediate RespawnPolicy = iota // Back at the spawn cell right after damage
	RespawnDelayed                        // Off the board until RespawnDelay has passed
)

// GameConfig holds configurable parameters for a game session.
type GameConfig struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	BombTimer           time.Duration `json:"bomb_timer"`
	ExplosionDuration   time.Duration `json:"explosion_duration"`
	TickRate            int           `json:"tick_rate"`            // Ticks per second
	DestructibleDensity float64       `json:"destructible_density"` // 0.0 to 1.0
	PowerUpChance       float64       `json:"power_up_chance"`      // Per destroyed wall

	Lives      int `json:"lives"`
	BotLives   int `json:"bot_lives"`
	BotCount   int `json:"bot_count"`
	EnemyCount int `json:"enemy_count"`
	StartBombs int `json:"start_bombs"`
	StartRange int `json:"start_range"`

	PowerUpScore int `json:"power_up_score"`
	VictoryBonus int `json:"victory_bonus"`

	RespawnDelay    time.Duration `json:"respawn_delay"`
	BotMoveDelay    time.Duration `json:"bot_move_delay"`
	BotBombChance   float64       `json:"bot_bomb_chance"`
	EnemyMoveDelay  time.Duration `json:"enemy_move_delay"`
	BomberMoveDelay time.Duration `json:"bomber_move_delay"`
	BomberCooldown  time.Duration `json:"bomber_cooldown"`
	BomberRadius    int           `json:"bomber_radius"`
	YellowMoveDelay time.Duration `json:"yellow_move_delay"` // 0 steps every tick

	RefillScope   RefillScope   `json:"refill_scope"`
	RespawnPolicy RespawnPolicy `json:"respawn_policy"`
}

// DefaultConfig returns the configuration used for regular play.
func DefaultConfig() GameConfig {
	return GameConfig{
		Width:               15,
		Height:              13,
		BombTimer:           3 * time.Second,
		ExplosionDuration:   1 * time.Second,
		TickRate:            20,
		DestructibleDensity: 0.7,
		PowerUpChance:       0.25,
		Lives:               6,
		BotLives:            6,
		BotCount:            3,
		EnemyCount:          3,
		StartBombs:          1,
		StartRange:          1,
		PowerUpScore:        300,
		VictoryBonus:        1000,
		RespawnDelay:        2 * time.Second,
		BotMoveDelay:        500 * time.Millisecond,
		BotBombChance:       0.15,
		EnemyMoveDelay:      700 * time.Millisecond,
		BomberMoveDelay:     600 * time.Millisecond,
		BomberCooldown:      2 * time.Second,
		BomberRadius:        2,
		YellowMoveDelay:     0,
		RefillScope:         RefillOwner,
		RespawnPolicy:       RespawnImmediate,
	}
}

// SpawnPositions returns the corner spawn positions.
// These corners and their inward neighbours are kept clear of walls.
func SpawnPositions(width, height int) []Position {
	return []Position{
		{X: 1, Y: 1},                  // Top-left
		{X: width - 2, Y: 1},          // Top-right
		{X: 1, Y: height - 2},         // Bottom-left
		{X: width - 2, Y: height - 2}, // Bottom-right
	}
}
