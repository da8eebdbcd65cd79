package game

import (
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Bomber hunts the nearest human and, once next to it, sets off a
// diamond-shaped blast around itself. Explosions do not hurt it.
type Bomber struct {
	Pos       Position `json:"pos"`
	Alive     bool     `json:"alive"`
	lastMove  time.Time
	lastBlast time.Time
}

// NewBomber creates a bomber enemy at pos.
func NewBomber(pos Position, now time.Time) *Bomber {
	return &Bomber{Pos: pos, Alive: true, lastMove: now}
}

// Ready reports whether the blast cooldown has elapsed.
func (e *Bomber) Ready(now time.Time, cooldown time.Duration) bool {
	return e.lastBlast.IsZero() || now.Sub(e.lastBlast) >= cooldown
}

func (e *Bomber) advance(b *Board, now time.Time) {
	if !e.Alive {
		return
	}
	target := b.nearestHuman(e.Pos)
	if target == nil {
		return
	}

	if e.Pos.Adjacent(target.Pos) && e.Ready(now, b.Config.BomberCooldown) {
		b.areaBlast(e.Pos, b.Config.BomberRadius, now)
		e.lastBlast = now
		return
	}

	if now.Sub(e.lastMove) < b.Config.BomberMoveDelay {
		return
	}
	e.lastMove = now
	if d, ok := b.stepToward(e.Pos, target.Pos, blockOccupied); ok {
		b.relocateEnemy(&e.Pos, e.Pos.Step(d))
	}
}

func (e *Bomber) shift(d time.Duration) {
	e.lastMove = e.lastMove.Add(d)
	if !e.lastBlast.IsZero() {
		e.lastBlast = e.lastBlast.Add(d)
	}
}

// Yellow walks greedily at the nearest human and hurts it on contact.
// Both happen on its turn. With YellowMoveDelay at 0 (the default) that is
// every tick; a positive delay spaces the turns out.
type Yellow struct {
	Pos      Position `json:"pos"`
	Alive    bool     `json:"alive"`
	lastMove time.Time
}

// NewYellow creates a yellow enemy at pos.
func NewYellow(pos Position, now time.Time) *Yellow {
	return &Yellow{Pos: pos, Alive: true, lastMove: now}
}

func (e *Yellow) advance(b *Board, now time.Time) {
	if !e.Alive {
		return
	}
	target := b.nearestHuman(e.Pos)
	if target == nil {
		return
	}

	delay := b.Config.YellowMoveDelay
	if delay > 0 && now.Sub(e.lastMove) < delay {
		return
	}
	e.lastMove = now

	if e.Pos.Adjacent(target.Pos) {
		b.damage(target, now)
		if target = b.nearestHuman(e.Pos); target == nil {
			return
		}
	}
	if d, ok := b.stepToward(e.Pos, target.Pos, blockOccupied); ok {
		b.relocateEnemy(&e.Pos, e.Pos.Step(d))
	}
}

func (e *Yellow) shift(d time.Duration) {
	e.lastMove = e.lastMove.Add(d)
}

// relocateEnemy moves an enemy position and its occupancy flag together.
func (b *Board) relocateEnemy(pos *Position, to Position) {
	b.Grid.At(*pos).HasEnemy = false
	*pos = to
	b.Grid.At(to).HasEnemy = true
}

// BlastArea returns every in-bounds cell within Manhattan distance radius
// of center, row by row from the top.
func BlastArea(g *Grid, center Position, radius int) []Position {
	var area []Position
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if abs(dx)+abs(dy) > radius {
				continue
			}
			p := Position{X: center.X + dx, Y: center.Y + dy}
			if g.IsValidPosition(p.X, p.Y) {
				area = append(area, p)
			}
		}
	}
	return area
}

// areaBlast burns every open cell of the diamond around center. It leaves
// terrain and bombs untouched. Players are hit once per blast, where they
// stood when it went off, so a respawn inside the diamond is safe.
func (b *Board) areaBlast(center Position, radius int, now time.Time) {
	burning := mapset.New[Position]()
	for _, p := range BlastArea(b.Grid, center, radius) {
		if b.Grid.At(p).Terrain != Empty {
			continue
		}
		burning.Put(p)
		b.addFire(p, now)
		b.rules.explosionHit(b, p)
	}

	var hit []*Player
	for _, p := range b.Players {
		if p.OnBoard() && burning.Has(p.Pos) {
			hit = append(hit, p)
		}
	}
	for _, p := range hit {
		b.damage(p, now)
	}
}
