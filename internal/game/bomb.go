package game

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Bomb represents a live bomb on the board.
type Bomb struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Pos       Position  `json:"pos"`
	Range     int       `json:"range"`
	PlantedAt time.Time `json:"planted_at"`
	Exploded  bool      `json:"exploded"` // One-way
}

// ShouldExplode reports whether the fuse has run out.
func (bomb *Bomb) ShouldExplode(now time.Time, timer time.Duration) bool {
	return !bomb.Exploded && now.Sub(bomb.PlantedAt) >= timer
}

// Fuse returns the time left before detonation, never negative.
func (bomb *Bomb) Fuse(now time.Time, timer time.Duration) time.Duration {
	left := timer - now.Sub(bomb.PlantedAt)
	if left < 0 {
		return 0
	}
	return left
}

// PlaceBomb plants a bomb at the player's current cell.
// It is a no-op unless the game is playing, the player is on the board with
// a free bomb slot and the cell holds no bomb yet.
func (b *Board) PlaceBomb(p *Player) bool {
	if b.Status != StatusPlaying || !p.OnBoard() || p.AvailableBombs <= 0 {
		return false
	}
	cell := b.Grid.At(p.Pos)
	if cell.Bomb != nil {
		return false
	}

	bomb := &Bomb{
		ID:        uuid.NewString(),
		OwnerID:   p.ID,
		Pos:       p.Pos,
		Range:     p.Range,
		PlantedAt: b.now(),
	}
	p.AvailableBombs--
	cell.Bomb = bomb
	b.Bombs = append(b.Bombs, bomb)
	return true
}

// tickBombs detonates every bomb whose fuse has run out, then drops all
// exploded bombs (including chained ones) from the active list.
func (b *Board) tickBombs(now time.Time) {
	for _, bomb := range b.Bombs {
		if !bomb.ShouldExplode(now, b.Config.BombTimer) {
			continue
		}
		before := b.detonations
		b.detonate(bomb, now)
		if chained := b.detonations - before; chained > 1 {
			log.Printf("[GAME] Chain reaction: %d bombs from %s at (%d,%d)", chained, bomb.ID, bomb.Pos.X, bomb.Pos.Y)
		}
	}

	remaining := b.Bombs[:0]
	for _, bomb := range b.Bombs {
		if !bomb.Exploded {
			remaining = append(remaining, bomb)
		}
	}
	for i := len(remaining); i < len(b.Bombs); i++ {
		b.Bombs[i] = nil
	}
	b.Bombs = remaining
}

// detonate explodes a bomb in the four axis directions.
// Bombs caught in the blast detonate recursively before the walk goes on.
func (b *Board) detonate(bomb *Bomb, now time.Time) {
	if bomb.Exploded {
		return
	}
	bomb.Exploded = true
	b.detonations++

	if cell := b.Grid.At(bomb.Pos); cell.Bomb == bomb {
		cell.Bomb = nil
	}
	b.refill(bomb)
	b.placeExplosion(bomb.Pos, now)

	for _, d := range Directions {
		pos := bomb.Pos
		for dist := 1; dist <= bomb.Range; dist++ {
			pos = pos.Step(d)
			if !b.Grid.IsValidPosition(pos.X, pos.Y) {
				break
			}
			cell := b.Grid.At(pos)

			// Wall stops the blast with no fire
			if cell.Terrain == Wall {
				break
			}

			// Destructible wall burns, may drop a power-up, and stops the blast
			if cell.Terrain == DestructibleWall {
				cell.Terrain = Empty
				b.maybeDropPowerUp(cell)
				b.placeExplosion(pos, now)
				break
			}

			b.placeExplosion(pos, now)
			if cell.Bomb != nil && !cell.Bomb.Exploded {
				b.detonate(cell.Bomb, now)
			}
		}
	}
}

// refill hands a bomb slot back after a detonation.
func (b *Board) refill(bomb *Bomb) {
	switch b.Config.RefillScope {
	case RefillBroadcast:
		for _, p := range b.Players {
			p.OnBombExploded()
		}
	default:
		if p := b.PlayerByID(bomb.OwnerID); p != nil {
			p.OnBombExploded()
		}
	}
}

func (b *Board) maybeDropPowerUp(cell *Cell) {
	if b.rng.Float64() >= b.Config.PowerUpChance {
		return
	}
	t := powerUpTypes[b.rng.Intn(len(powerUpTypes))]
	cell.PowerUp = &t
}
