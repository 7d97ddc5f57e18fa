// Package registry maps variant IDs to game factories and their menu
// metadata. Game packages register their variants in init().
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is what the platform drives once per tick. Implementations hold no
// Bubble Tea state.
type Game interface {
	// ID is the variant ID; scores are stored under it.
	ID() string

	// Reset starts a new game with the given screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
	Blurb string // one line for menus

	// Randomizer is the piece sequence the variant forces, empty when it
	// follows the config file.
	Randomizer string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a variant. It panics on an empty or duplicate ID. A missing
// title falls back to the ID.
func Register(info GameInfo, f Factory) {
	if info.ID == "" {
		panic("registry: empty variant ID")
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered variant sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Lookup returns the metadata of a variant.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a variant by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a variant is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
