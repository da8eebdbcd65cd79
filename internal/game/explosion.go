package game

import "time"

// Explosion marks one cell as burning for a fixed duration.
// Overlapping explosions on the same cell are tracked independently.
type Explosion struct {
	Pos       Position      `json:"pos"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Expired reports whether the explosion has burnt out at now.
func (e *Explosion) Expired(now time.Time) bool {
	return !now.Before(e.StartedAt.Add(e.Duration))
}

// Remaining returns the time left before expiry, never negative.
func (e *Explosion) Remaining(now time.Time) time.Duration {
	left := e.StartedAt.Add(e.Duration).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Intensity decays linearly from 1 to 0 over the duration.
// Only the renderer uses it.
func (e *Explosion) Intensity(now time.Time) float64 {
	if e.Duration <= 0 {
		return 0
	}
	v := float64(e.Remaining(now)) / float64(e.Duration)
	if v > 1 {
		return 1
	}
	return v
}

// purgeExplosions drops every explosion that has expired.
func (b *Board) purgeExplosions(now time.Time) {
	remaining := b.Explosions[:0]
	for _, e := range b.Explosions {
		if !e.Expired(now) {
			remaining = append(remaining, e)
		}
	}
	for i := len(remaining); i < len(b.Explosions); i++ {
		b.Explosions[i] = nil
	}
	b.Explosions = remaining
}

// placeExplosion marks pos as burning and applies the hit to whoever stands there.
func (b *Board) placeExplosion(pos Position, now time.Time) {
	b.addFire(pos, now)
	for _, p := range b.Players {
		if p.OnBoard() && p.Pos == pos {
			b.damage(p, now)
		}
	}
	b.rules.explosionHit(b, pos)
}

func (b *Board) addFire(pos Position, now time.Time) {
	b.Explosions = append(b.Explosions, &Explosion{
		Pos:       pos,
		StartedAt: now,
		Duration:  b.Config.ExplosionDuration,
	})
}
