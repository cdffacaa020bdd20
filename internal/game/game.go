package game

import (
	"math/rand"
	"strings"
	"time"
)

// Game is the controller for one word-spelling session. It exclusively owns
// the tile pool and placement slots; callers mutate them only through Start,
// Place, Remove and Reset. A Game is not safe for concurrent use — run one
// session per goroutine, or one per findable object in a scene.
//
// Placement policy: tiles go into the leftmost empty slot. Removal is by
// slot index and returns the tile to its origin position in the pool.
type Game struct {
	target string
	pool   []*Tile // indexed by tile ID; nil while the tile is placed
	slots  []*Tile // indexed by word position; nil while empty
	state  State
	rng    *rand.Rand
	cues   CueSink
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithRand sets the random source used to shuffle the pool. Tests inject a
// seeded source for determinism.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithCues attaches a feedback cue sink.
func WithCues(sink CueSink) Option {
	return func(g *Game) { g.cues = sink }
}

// New creates an idle game. Supply the target word via Start.
func New(opts ...Option) *Game {
	g := &Game{state: StateIdle}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Result is the outcome of one completed evaluation. It is handed to the
// caller exactly once per evaluation, on the Place call that filled the
// last slot.
type Result struct {
	Correct bool   `json:"isCorrect"`
	Spelled string `json:"spelled"`
}

// Start begins a session for the given target word: allocates one slot per
// character, shuffles the characters into the tile pool and moves the game
// to Placing. Embedded spaces are literal characters and become tiles like
// any other. Starting over with a new word discards the previous session.
func (g *Game) Start(word string) error {
	if strings.TrimSpace(word) == "" {
		return ErrInvalidTargetWord
	}
	g.target = word
	g.shuffle()
	g.state = StatePlacing
	return nil
}

// Target returns the word being spelled, or "" while Idle.
func (g *Game) Target() string { return g.target }

// State returns the current machine state.
func (g *Game) State() State { return g.state }

// Place moves the identified tile from the pool into the leftmost empty
// slot. If that fills the last slot the spelled word is evaluated
// immediately and the Result is returned; otherwise the Result is nil.
// An unknown or already-placed tile ID yields ErrInvalidOperation, as does
// calling Place outside Placing.
func (g *Game) Place(tileID int) (*Result, error) {
	if g.state != StatePlacing {
		return nil, ErrInvalidOperation
	}
	if tileID < 0 || tileID >= len(g.pool) || g.pool[tileID] == nil {
		return nil, ErrInvalidOperation
	}
	slot := -1
	for i, t := range g.slots {
		if t == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		return nil, ErrInvalidOperation
	}

	g.slots[slot] = g.pool[tileID]
	g.pool[tileID] = nil
	g.cue(CueTilePlaced)

	if g.filled() {
		return g.evaluate(), nil
	}
	return nil, nil
}

// Remove takes the tile out of the given slot and returns it to its origin
// position in the pool. Legal from Placing and from Failed (removing a
// letter un-completes the word and resumes Placing); a Solved game only
// accepts Reset.
func (g *Game) Remove(slotIndex int) error {
	if g.state != StatePlacing && g.state != StateFailed {
		return ErrInvalidOperation
	}
	if slotIndex < 0 || slotIndex >= len(g.slots) || g.slots[slotIndex] == nil {
		return ErrInvalidOperation
	}

	tile := g.slots[slotIndex]
	g.slots[slotIndex] = nil
	g.pool[tile.ID] = tile
	g.state = StatePlacing
	g.cue(CueTileRemoved)
	return nil
}

// Reset re-shuffles the pool, empties all slots and returns to Placing.
// Callable from any state once a word has been started.
func (g *Game) Reset() error {
	if g.state == StateIdle {
		return ErrInvalidOperation
	}
	g.shuffle()
	g.state = StatePlacing
	return nil
}

// shuffle rebuilds the pool as a fresh permutation of the target's
// characters and clears all slots. Tile IDs are the positions in the new
// permutation. A permutation that spells the target is rerolled, up to a
// bounded number of tries; words whose characters are all identical accept
// the identity order since no reroll can change it.
func (g *Game) shuffle() {
	runes := []rune(g.target)
	for try := 0; try < 10; try++ {
		g.rng.Shuffle(len(runes), func(i, j int) {
			runes[i], runes[j] = runes[j], runes[i]
		})
		if string(runes) != g.target {
			break
		}
	}
	g.pool = make([]*Tile, len(runes))
	for i, r := range runes {
		g.pool[i] = &Tile{ID: i, Ch: string(r)}
	}
	g.slots = make([]*Tile, len(runes))
}

// filled reports whether every slot holds a tile.
func (g *Game) filled() bool {
	for _, t := range g.slots {
		if t == nil {
			return false
		}
	}
	return true
}

// evaluate runs once per completed fill, moving through the transient
// Evaluating state to Solved or Failed.
func (g *Game) evaluate() *Result {
	g.state = StateEvaluating

	var b strings.Builder
	for _, t := range g.slots {
		b.WriteString(t.Ch)
	}
	spelled := b.String()

	correct := Validate(spelled, g.target)
	if correct {
		g.state = StateSolved
		g.cue(CueCorrect)
	} else {
		g.state = StateFailed
		g.cue(CueIncorrect)
	}
	return &Result{Correct: correct, Spelled: spelled}
}

func (g *Game) cue(event string) {
	if g.cues != nil {
		g.cues.Cue(event)
	}
}

// Validate reports whether a spelled candidate matches the target word:
// case-insensitive, exact character-for-character, including embedded
// spaces. No partial credit.
func Validate(spelled, target string) bool {
	return strings.ToLower(spelled) == strings.ToLower(target)
}
