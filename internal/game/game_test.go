package game_test

import (
	"encoding/json"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/game"
)

func newGame(t *testing.T, word string) *game.Game {
	t.Helper()
	g := game.New(game.WithRand(rand.New(rand.NewSource(1))))
	if err := g.Start(word); err != nil {
		t.Fatalf("Start(%q) failed: %v", word, err)
	}
	return g
}

// tileCount returns (tiles still in pool, tiles placed in slots).
func tileCount(snap game.Snapshot) (pool, placed int) {
	for _, tl := range snap.Pool {
		if tl != nil {
			pool++
		}
	}
	for _, tl := range snap.Slots {
		if tl != nil {
			placed++
		}
	}
	return pool, placed
}

func checkInvariant(t *testing.T, g *game.Game) {
	t.Helper()
	snap := g.Snapshot()
	pool, placed := tileCount(snap)
	want := len([]rune(snap.Target))
	if pool+placed != want {
		t.Fatalf("invariant broken: pool=%d placed=%d, want total %d", pool, placed, want)
	}
}

// placeWord places tiles spelling exactly the given sequence of characters,
// picking a matching pool tile for each. Fails the test if a character has
// no available tile.
func placeWord(t *testing.T, g *game.Game, chars string) *game.Result {
	t.Helper()
	var last *game.Result
	for _, r := range chars {
		snap := g.Snapshot()
		id := -1
		for _, tl := range snap.Pool {
			if tl != nil && strings.EqualFold(tl.Ch, string(r)) {
				id = tl.ID
				break
			}
		}
		if id < 0 {
			t.Fatalf("no pool tile for %q in %v", string(r), snap.Pool)
		}
		res, err := g.Place(id)
		if err != nil {
			t.Fatalf("Place(%d) for %q failed: %v", id, string(r), err)
		}
		last = res
		checkInvariant(t, g)
	}
	return last
}

func TestStartRejectsInvalidWord(t *testing.T) {
	tests := []struct {
		name string
		word string
	}{
		{"empty", ""},
		{"spaces only", "   "},
		{"tab and newline", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := game.New(game.WithRand(rand.New(rand.NewSource(1))))
			err := g.Start(tt.word)
			if err != game.ErrInvalidTargetWord {
				t.Errorf("Start(%q) error = %v, want ErrInvalidTargetWord", tt.word, err)
			}
			if g.State() != game.StateIdle {
				t.Errorf("state after bad Start = %v, want idle", g.State())
			}
		})
	}
}

func TestShufflePreservesCharacters(t *testing.T) {
	words := []string{"bee", "tree", "watering can", "x", "Mississippi"}
	for _, word := range words {
		t.Run(word, func(t *testing.T) {
			g := newGame(t, word)
			snap := g.Snapshot()

			if len(snap.Slots) != len([]rune(word)) {
				t.Fatalf("slots = %d, want %d", len(snap.Slots), len([]rune(word)))
			}

			var got []string
			for _, tl := range snap.Pool {
				if tl == nil {
					t.Fatal("freshly started game has a placed tile")
				}
				got = append(got, tl.Ch)
			}
			want := strings.Split(word, "")
			sort.Strings(got)
			sort.Strings(want)
			if strings.Join(got, "") != strings.Join(want, "") {
				t.Errorf("pool %v is not a permutation of %q", got, word)
			}
		})
	}
}

func TestSolveInOrder(t *testing.T) {
	g := newGame(t, "bee")
	res := placeWord(t, g, "bee")

	if res == nil {
		t.Fatal("filling the last slot returned no result")
	}
	if !res.Correct {
		t.Errorf("result.Correct = false, want true")
	}
	if res.Spelled != "bee" {
		t.Errorf("result.Spelled = %q, want %q", res.Spelled, "bee")
	}
	if g.State() != game.StateSolved {
		t.Errorf("state = %v, want solved", g.State())
	}
}

func TestWrongOrderFails(t *testing.T) {
	g := newGame(t, "bee")
	res := placeWord(t, g, "ebe")

	if res == nil {
		t.Fatal("filling the last slot returned no result")
	}
	if res.Correct {
		t.Error("result.Correct = true for misspelled word")
	}
	if g.State() != game.StateFailed {
		t.Errorf("state = %v, want failed", g.State())
	}

	// Failed games stay mutable: removing a letter resumes placing.
	if err := g.Remove(1); err != nil {
		t.Fatalf("Remove from failed game: %v", err)
	}
	if g.State() != game.StatePlacing {
		t.Errorf("state after remove = %v, want placing", g.State())
	}
	checkInvariant(t, g)
}

func TestValidateIsCaseInsensitive(t *testing.T) {
	g := newGame(t, "Tree")
	res := placeWord(t, g, "tree")

	if res == nil || !res.Correct {
		t.Fatalf("spelling %q for target %q: result = %+v, want correct", "tree", "Tree", res)
	}
	if g.State() != game.StateSolved {
		t.Errorf("state = %v, want solved", g.State())
	}
}

func TestSpacesAreLiteralTiles(t *testing.T) {
	g := newGame(t, "watering can")

	snap := g.Snapshot()
	spaces := 0
	for _, tl := range snap.Pool {
		if tl.Ch == " " {
			spaces++
		}
	}
	if spaces != 1 {
		t.Fatalf("pool has %d space tiles, want 1", spaces)
	}

	res := placeWord(t, g, "watering can")
	if res == nil || !res.Correct {
		t.Fatalf("result = %+v, want correct", res)
	}
}

func TestRoundTripTileMovement(t *testing.T) {
	g := newGame(t, "tree")
	before := g.Snapshot()

	res, err := g.Place(before.Pool[2].ID)
	if err != nil || res != nil {
		t.Fatalf("Place = (%v, %v), want (nil, nil)", res, err)
	}
	if err := g.Remove(0); err != nil {
		t.Fatalf("Remove(0): %v", err)
	}

	after := g.Snapshot()
	for i := range before.Pool {
		if before.Pool[i].ID != after.Pool[i].ID || before.Pool[i].Ch != after.Pool[i].Ch {
			t.Errorf("pool position %d changed: %+v -> %+v", i, before.Pool[i], after.Pool[i])
		}
	}
	for i, tl := range after.Slots {
		if tl != nil {
			t.Errorf("slot %d still occupied after round trip", i)
		}
	}
}

func TestInvalidOperations(t *testing.T) {
	g := newGame(t, "bee")

	tests := []struct {
		name string
		call func() error
	}{
		{"place unknown tile id", func() error { _, err := g.Place(99); return err }},
		{"place negative tile id", func() error { _, err := g.Place(-1); return err }},
		{"remove empty slot", func() error { return g.Remove(0) }},
		{"remove out of range", func() error { return g.Remove(3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != game.ErrInvalidOperation {
				t.Errorf("error = %v, want ErrInvalidOperation", err)
			}
			checkInvariant(t, g)
		})
	}
}

func TestPlacingTwiceSameTile(t *testing.T) {
	g := newGame(t, "bee")
	id := g.Snapshot().Pool[0].ID

	if _, err := g.Place(id); err != nil {
		t.Fatalf("first Place: %v", err)
	}
	if _, err := g.Place(id); err != game.ErrInvalidOperation {
		t.Errorf("second Place of same tile: error = %v, want ErrInvalidOperation", err)
	}
	checkInvariant(t, g)
}

func TestSolvedGameIsLocked(t *testing.T) {
	g := newGame(t, "bee")
	placeWord(t, g, "bee")

	if _, err := g.Place(0); err != game.ErrInvalidOperation {
		t.Errorf("Place on solved game: error = %v, want ErrInvalidOperation", err)
	}
	if err := g.Remove(0); err != game.ErrInvalidOperation {
		t.Errorf("Remove on solved game: error = %v, want ErrInvalidOperation", err)
	}

	// Reset is the only way out.
	if err := g.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if g.State() != game.StatePlacing {
		t.Errorf("state after reset = %v, want placing", g.State())
	}
}

func TestResetIsIdempotent(t *testing.T) {
	for _, end := range []string{"bee", "ebe"} { // one solved, one failed
		t.Run(end, func(t *testing.T) {
			g := newGame(t, "bee")
			placeWord(t, g, end)

			if err := g.Reset(); err != nil {
				t.Fatalf("first Reset: %v", err)
			}
			first := g.Snapshot()
			if err := g.Reset(); err != nil {
				t.Fatalf("second Reset: %v", err)
			}
			second := g.Snapshot()

			if first.State != game.StatePlacing || second.State != game.StatePlacing {
				t.Errorf("states = %v, %v, want placing", first.State, second.State)
			}
			p1, o1 := tileCount(first)
			p2, o2 := tileCount(second)
			if p1 != 3 || o1 != 0 || p2 != 3 || o2 != 0 {
				t.Errorf("tile counts after resets: (%d,%d) and (%d,%d), want (3,0)", p1, o1, p2, o2)
			}
		})
	}
}

func TestResetBeforeStart(t *testing.T) {
	g := game.New(game.WithRand(rand.New(rand.NewSource(1))))
	if err := g.Reset(); err != game.ErrInvalidOperation {
		t.Errorf("Reset on idle game: error = %v, want ErrInvalidOperation", err)
	}
}

func TestInvariantAcrossRandomSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := game.New(game.WithRand(rand.New(rand.NewSource(7))))
	if err := g.Start("mississippi"); err != nil {
		t.Fatal(err)
	}

	// Hammer the engine with random valid and invalid calls; the tile
	// conservation invariant must hold after every one.
	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			g.Place(rng.Intn(13) - 1)
		case 1:
			g.Remove(rng.Intn(13) - 1)
		case 2:
			if rng.Intn(10) == 0 {
				g.Reset()
			}
		}
		checkInvariant(t, g)
	}
}

type recordingSink struct {
	events []string
}

func (r *recordingSink) Cue(event string) { r.events = append(r.events, event) }

func TestCueEvents(t *testing.T) {
	sink := &recordingSink{}
	g := game.New(game.WithRand(rand.New(rand.NewSource(1))), game.WithCues(sink))
	if err := g.Start("be"); err != nil {
		t.Fatal(err)
	}

	placeWord(t, g, "be")

	want := []string{game.CueTilePlaced, game.CueTilePlaced, game.CueCorrect}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %v, want %v", sink.events, want)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, sink.events[i], want[i])
		}
	}
}

func TestExactlyOneCompletionSignal(t *testing.T) {
	g := newGame(t, "cat")
	results := 0
	for _, ch := range "cat" {
		snap := g.Snapshot()
		for _, tl := range snap.Pool {
			if tl != nil && tl.Ch == string(ch) {
				res, err := g.Place(tl.ID)
				if err != nil {
					t.Fatal(err)
				}
				if res != nil {
					results++
				}
				break
			}
		}
	}
	if results != 1 {
		t.Errorf("got %d completion results, want exactly 1", results)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := newGame(t, "Tree")
	placeWord(t, g, "tr")

	mid := g.Snapshot()
	data, err := json.Marshal(mid)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var decoded game.Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored, err := game.Restore(decoded)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Target() != "Tree" || restored.State() != game.StatePlacing {
		t.Fatalf("restored target=%q state=%v", restored.Target(), restored.State())
	}

	// Finish the word on the restored game.
	res := placeWord(t, restored, "ee")
	if res == nil || !res.Correct {
		t.Errorf("restored game result = %+v, want correct", res)
	}
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	g := newGame(t, "bee")
	good := g.Snapshot()

	tests := []struct {
		name   string
		mutate func(s *game.Snapshot)
	}{
		{"empty target", func(s *game.Snapshot) { s.Target = "" }},
		{"short pool", func(s *game.Snapshot) { s.Pool = s.Pool[:2] }},
		{"duplicate tile id", func(s *game.Snapshot) { s.Pool[1].ID = s.Pool[0].ID }},
		{"wrong characters", func(s *game.Snapshot) { s.Pool[0].Ch = "z" }},
		{"tile lost", func(s *game.Snapshot) { s.Pool[0] = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := game.Snapshot{
				Target: good.Target,
				State:  good.State,
				Pool:   append([]*game.Tile{}, copySnapTiles(good.Pool)...),
				Slots:  append([]*game.Tile{}, copySnapTiles(good.Slots)...),
			}
			tt.mutate(&snap)
			if _, err := game.Restore(snap); err == nil {
				t.Error("Restore accepted a corrupt snapshot")
			}
		})
	}
}

func copySnapTiles(tiles []*game.Tile) []*game.Tile {
	out := make([]*game.Tile, len(tiles))
	for i, tl := range tiles {
		if tl != nil {
			c := *tl
			out[i] = &c
		}
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		spelled string
		target  string
		want    bool
	}{
		{"tree", "Tree", true},
		{"TREE", "tree", true},
		{"watering can", "Watering Can", true},
		{"wateringcan", "watering can", false},
		{"tre", "tree", false},
		{"treee", "tree", false},
		{"", "", true},
	}

	for _, tt := range tests {
		if got := game.Validate(tt.spelled, tt.target); got != tt.want {
			t.Errorf("Validate(%q, %q) = %v, want %v", tt.spelled, tt.target, got, tt.want)
		}
	}
}
