package game

import (
	"time"

	"github.com/google/uuid"
)

// Player is the shared state of every bomb-carrying entity.
// Humans have a nil Controller and are driven through Board.MovePlayer and
// Board.PlaceBomb; bots carry a Controller that decides each tick.
type Player struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Pos            Position  `json:"pos"`
	Spawn          Position  `json:"spawn"`
	Lives          int       `json:"lives"`
	MaxBombs       int       `json:"max_bombs"`
	AvailableBombs int       `json:"available_bombs"`
	Range          int       `json:"range"`
	Score          int       `json:"score"`
	Alive          bool      `json:"alive"`
	SpeedBoost     bool      `json:"speed_boost"`
	DiedAt         time.Time `json:"died_at"`

	Controller Controller `json:"-"`

	// OnGameOver is called once, with the final score, when lives run out.
	OnGameOver func(score int) `json:"-"`

	down         bool
	gameOverSent bool
}

// NewPlayer creates a living player standing on its spawn cell.
func NewPlayer(name string, spawn Position, lives, bombs, bombRange int) *Player {
	return &Player{
		ID:             uuid.NewString(),
		Name:           name,
		Pos:            spawn,
		Spawn:          spawn,
		Lives:          lives,
		MaxBombs:       bombs,
		AvailableBombs: bombs,
		Range:          bombRange,
		Alive:          true,
	}
}

// IsAlive reports whether the player still has lives left.
func (p *Player) IsAlive() bool { return p.Alive }

// IsBot reports whether the player is AI controlled.
func (p *Player) IsBot() bool { return p.Controller != nil }

// OnBoard reports whether the player is alive and physically on the grid.
// A player waiting out a delayed respawn is alive but off the board.
func (p *Player) OnBoard() bool { return p.Alive && !p.down }

// Move steps one cell in dir. It does nothing unless the game is playing,
// the player is on the board and the target cell is in bounds and walkable.
// Picking up a power-up awards pickupScore and applies the effect.
func (p *Player) Move(dir Direction, g *Grid, status GameStatus, pickupScore int) bool {
	if status != StatusPlaying || !p.OnBoard() {
		return false
	}
	target := p.Pos.Step(dir)
	if !g.Walkable(target) {
		return false
	}

	g.At(p.Pos).HasPlayer = false
	p.Pos = target
	cell := g.At(target)
	cell.HasPlayer = true

	if cell.PowerUp != nil {
		p.Score += pickupScore
		p.ApplyPowerUp(*cell.PowerUp)
		cell.PowerUp = nil
	}
	return true
}

// ApplyPowerUp applies the effect of a collected power-up.
func (p *Player) ApplyPowerUp(t PowerUpType) {
	switch t {
	case PowerUpExtraBomb:
		p.MaxBombs++
		p.AvailableBombs++
	case PowerUpRange:
		p.Range++
	case PowerUpLife:
		p.Lives++
	case PowerUpSpeed:
		p.SpeedBoost = true
	}
}

// OnBombExploded returns one bomb slot, bounded by capacity.
func (p *Player) OnBombExploded() {
	if p.AvailableBombs < p.MaxBombs {
		p.AvailableBombs++
	}
}

// TakeDamage removes one life. Reaching zero kills the player and fires
// OnGameOver. The death time is recorded on every hit.
func (p *Player) TakeDamage(now time.Time) {
	if !p.Alive {
		return
	}
	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		p.Alive = false
		if !p.gameOverSent {
			p.gameOverSent = true
			if p.OnGameOver != nil {
				p.OnGameOver(p.Score)
			}
		}
	}
	p.DiedAt = now
}

// RespawnAtStart puts the player back on its spawn cell, alive.
func (p *Player) RespawnAtStart(g *Grid) {
	if g.IsValidPosition(p.Pos.X, p.Pos.Y) {
		g.At(p.Pos).HasPlayer = false
	}
	p.Pos = p.Spawn
	g.At(p.Pos).HasPlayer = true
	p.Alive = true
	p.down = false
}

// TryRespawn revives a player taken off the board once delay has passed
// since the last hit.
func (p *Player) TryRespawn(g *Grid, now time.Time, delay time.Duration) bool {
	if !p.Alive || !p.down || now.Sub(p.DiedAt) < delay {
		return false
	}
	p.RespawnAtStart(g)
	return true
}

// takeOff removes the player from the grid until TryRespawn succeeds.
func (p *Player) takeOff(g *Grid) {
	if g.IsValidPosition(p.Pos.X, p.Pos.Y) {
		g.At(p.Pos).HasPlayer = false
	}
	p.down = true
}

func (p *Player) shift(d time.Duration) {
	if !p.DiedAt.IsZero() {
		p.DiedAt = p.DiedAt.Add(d)
	}
	if s, ok := p.Controller.(shifter); ok {
		s.shift(d)
	}
}
