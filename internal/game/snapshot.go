package game

import (
	"fmt"
	"sort"
	"strings"
)

// Snapshot is a read-only copy of a session's observable state. It is
// JSON-serialisable so in-flight games can be persisted and restored across
// server restarts. Pool and Slots keep their fixed lengths; nil entries mark
// a placed tile or an empty slot respectively.
type Snapshot struct {
	Target string  `json:"target"`
	State  State   `json:"state"`
	Pool   []*Tile `json:"pool"`
	Slots  []*Tile `json:"slots"`
}

// Snapshot returns a deep copy of the current state. Mutating the returned
// value has no effect on the game.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Target: g.target,
		State:  g.state,
		Pool:   copyTiles(g.pool),
		Slots:  copyTiles(g.slots),
	}
}

func copyTiles(tiles []*Tile) []*Tile {
	out := make([]*Tile, len(tiles))
	for i, t := range tiles {
		if t != nil {
			c := *t
			out[i] = &c
		}
	}
	return out
}

// Restore rebuilds a game from a persisted snapshot. The snapshot is
// validated before use: pool and slots must have one entry per target
// character, every tile ID must appear exactly once, and the tiles must be
// a permutation of the target's characters.
func Restore(snap Snapshot, opts ...Option) (*Game, error) {
	n := len([]rune(snap.Target))
	if n == 0 {
		return nil, ErrInvalidTargetWord
	}
	if len(snap.Pool) != n || len(snap.Slots) != n {
		return nil, fmt.Errorf("snapshot shape does not match target %q", snap.Target)
	}

	seen := make([]bool, n)
	var chars []string
	count := 0
	collect := func(tiles []*Tile) error {
		for _, t := range tiles {
			if t == nil {
				continue
			}
			if t.ID < 0 || t.ID >= n || seen[t.ID] {
				return fmt.Errorf("snapshot has invalid or duplicate tile id %d", t.ID)
			}
			seen[t.ID] = true
			chars = append(chars, strings.ToLower(t.Ch))
			count++
		}
		return nil
	}
	if err := collect(snap.Pool); err != nil {
		return nil, err
	}
	if err := collect(snap.Slots); err != nil {
		return nil, err
	}
	if count != n {
		return nil, fmt.Errorf("snapshot holds %d tiles for a %d-character target", count, n)
	}

	want := strings.Split(strings.ToLower(snap.Target), "")
	sort.Strings(chars)
	sort.Strings(want)
	if strings.Join(chars, "") != strings.Join(want, "") {
		return nil, fmt.Errorf("snapshot tiles are not a permutation of target %q", snap.Target)
	}

	g := New(opts...)
	g.target = snap.Target
	g.state = snap.State
	g.pool = copyTiles(snap.Pool)
	g.slots = copyTiles(snap.Slots)
	return g, nil
}
