package binding

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/battleship/game/engine"
)

// Result codes returned by PlaceShip
const (
	PlaceOK     = 1
	PlaceFailed = -1
)

// Literals returned by Attack when the shot could not be resolved
const (
	ErrMsgOutOfBounds     = "Error: Coordinates out of bounds."
	ErrMsgAlreadyAttacked = "Error: Cannot attack this cell <Already attacked>"
	ErrMsgNoOpponent      = "Error: Opponent object is null."
	ErrMsgNoPlayer        = "Error: Current player is null."
	ResultEmpty           = "Empty"
)

// Handle is an opaque reference to a fleet owned by a Registry
type Handle string

// Registry owns fleets on behalf of a host that can only hold opaque
// handles. The handle map is safe for concurrent use; operations on the
// fleets themselves are not, so the host serializes calls per fleet pair.
type Registry struct {
	mu     sync.RWMutex
	fleets map[Handle]*engine.Fleet
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		fleets: make(map[Handle]*engine.Fleet),
	}
}

// Create allocates a fresh fleet and returns its handle
func (r *Registry) Create() Handle {
	h := Handle(uuid.NewString())

	r.mu.Lock()
	r.fleets[h] = engine.NewFleet()
	r.mu.Unlock()

	log.Debug().Str("handle", string(h)).Msg("fleet created")
	return h
}

// Destroy releases the fleet behind h. It reports whether h was live.
func (r *Registry) Destroy(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fleets[h]; !ok {
		return false
	}
	delete(r.fleets, h)
	log.Debug().Str("handle", string(h)).Msg("fleet destroyed")
	return true
}

// Len returns the number of live handles
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fleets)
}

// Fleet returns the fleet behind h
func (r *Registry) Fleet(h Handle) (*engine.Fleet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fleet, ok := r.fleets[h]
	return fleet, ok
}

// PlaceShip places a ship on the fleet behind h and returns PlaceOK or PlaceFailed
func (r *Registry) PlaceShip(h Handle, kind string, row, col, orientation int) int {
	fleet, ok := r.Fleet(h)
	if !ok {
		log.Warn().Str("handle", string(h)).Msg("place ship on unknown handle")
		return PlaceFailed
	}

	anchor := engine.Coordinate{Row: row, Col: col}
	if err := fleet.PlaceShip(kind, anchor, engine.Orientation(orientation)); err != nil {
		log.Debug().
			Err(err).
			Str("kind", kind).
			Int("row", row).
			Int("col", col).
			Int("orientation", orientation).
			Msg("ship placement failed")
		return PlaceFailed
	}
	return PlaceOK
}

// Attack fires from the fleet behind h at the fleet behind opponent and
// returns the outcome literal, or one of the ErrMsg literals.
func (r *Registry) Attack(h Handle, row, col int, opponent Handle) string {
	defender, ok := r.Fleet(opponent)
	if opponent == "" || !ok {
		return ErrMsgNoOpponent
	}
	attacker, ok := r.Fleet(h)
	if !ok {
		return ErrMsgNoPlayer
	}

	outcome, err := attacker.Attack(engine.Coordinate{Row: row, Col: col}, defender)
	if err != nil {
		return attackErrorLiteral(err)
	}
	return outcome.String()
}

func attackErrorLiteral(err error) string {
	switch {
	case errors.Is(err, engine.ErrOutOfBounds):
		return ErrMsgOutOfBounds
	case errors.Is(err, engine.ErrAlreadyAttacked):
		return ErrMsgAlreadyAttacked
	case errors.Is(err, engine.ErrNoOpponent):
		return ErrMsgNoOpponent
	default:
		return ResultEmpty
	}
}

// HasLost reports whether the fleet behind h has no ships left. Unknown
// handles have not lost.
func (r *Registry) HasLost(h Handle) bool {
	fleet, ok := r.Fleet(h)
	if !ok {
		return false
	}
	return fleet.IsDefeated()
}

// PrintSelfGrid renders the placement layer of the fleet behind h
func (r *Registry) PrintSelfGrid(h Handle) string {
	return r.render(h, (*engine.Board).RenderPlacement)
}

// PrintTargetGrid renders the attack layer of the fleet behind h
func (r *Registry) PrintTargetGrid(h Handle) string {
	return r.render(h, (*engine.Board).RenderAttack)
}

// PrintGridsSideBySide renders both layers of the fleet behind h
func (r *Registry) PrintGridsSideBySide(h Handle) string {
	return r.render(h, (*engine.Board).RenderSideBySide)
}

func (r *Registry) render(h Handle, fn func(*engine.Board) string) string {
	fleet, ok := r.Fleet(h)
	if !ok {
		return ErrMsgNoPlayer
	}
	return fn(fleet.Board())
}
