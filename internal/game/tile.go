// Package game implements the letter arrangement engine: a target word is
// shuffled into a pool of letter tiles, the player moves tiles into ordered
// slots, and the spelled word is checked against the target once every slot
// is filled. The engine is pure state — no persistence, no timers, no I/O.
package game

import "errors"

// State is the phase of one word-spelling session.
type State int

const (
	// StateIdle means no target word has been supplied yet.
	StateIdle State = iota
	// StatePlacing means tiles are being moved between pool and slots.
	StatePlacing
	// StateEvaluating is the transient phase while the filled slots are
	// checked; it is never observable from outside the engine.
	StateEvaluating
	// StateSolved means all slots are filled and match the target.
	// Only Reset is permitted from here.
	StateSolved
	// StateFailed means all slots are filled but do not match. The game
	// stays mutable: removing a letter returns it to StatePlacing.
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:       "idle",
	StatePlacing:    "placing",
	StateEvaluating: "evaluating",
	StateSolved:     "solved",
	StateFailed:     "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the state as its lowercase name so API clients and
// persisted snapshots never depend on the numeric values.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a state name produced by MarshalJSON.
func (s *State) UnmarshalJSON(data []byte) error {
	name := string(data)
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		name = name[1 : len(name)-1]
	}
	for state, n := range stateNames {
		if n == name {
			*s = state
			return nil
		}
	}
	return errors.New("unknown game state: " + name)
}

// Tile is one character instance from the shuffled pool. ID is the tile's
// origin position in the pool, which stays stable for the whole session so
// duplicate letters remain distinguishable and a removed tile can return to
// its own pool position.
type Tile struct {
	ID int    `json:"id"`
	Ch string `json:"ch"`
}

// Cue event names passed to the optional CueSink on each transition.
const (
	CueTilePlaced  = "tile-placed"
	CueTileRemoved = "tile-removed"
	CueCorrect     = "correct"
	CueIncorrect   = "incorrect"
)

// CueSink receives symbolic feedback events (sound/animation triggers).
// The engine never depends on these calls succeeding; implementations must
// not block.
type CueSink interface {
	Cue(event string)
}

var (
	// ErrInvalidTargetWord is returned by Start for an empty or
	// whitespace-only word; the game remains Idle.
	ErrInvalidTargetWord = errors.New("invalid target word")

	// ErrInvalidOperation is returned for a place/remove/reset call that is
	// not legal in the current state or references an unknown tile or slot.
	// The call leaves the game unchanged.
	ErrInvalidOperation = errors.New("invalid operation")
)
