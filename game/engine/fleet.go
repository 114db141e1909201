package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Fleet is one player's side of the game: a board, the ships still afloat
// and the number of ships left before defeat.
//
// A Fleet is not safe for concurrent use. Callers serialize every operation
// on a pair of fleets that attack each other.
type Fleet struct {
	board     *Board
	ships     []Ship
	remaining int
}

// FleetState is a serializable copy of a Fleet
type FleetState struct {
	Board     Board  `json:"board"`
	Ships     []Ship `json:"ships"`
	Remaining int    `json:"remaining"`
}

// NewFleet returns an empty fleet with NumShips remaining
func NewFleet() *Fleet {
	return &Fleet{
		board:     NewBoard(),
		ships:     []Ship{},
		remaining: NumShips,
	}
}

// Board returns the fleet's board
func (f *Fleet) Board() *Board {
	return f.board
}

// Ships returns a copy of the ships that are still afloat
func (f *Fleet) Ships() []Ship {
	ships := make([]Ship, len(f.ships))
	copy(ships, f.ships)
	return ships
}

// Remaining returns how many ships must still be sunk to defeat this fleet
func (f *Fleet) Remaining() int {
	return f.remaining
}

// IsDefeated reports whether every ship has been sunk
func (f *Fleet) IsDefeated() bool {
	return f.remaining == 0
}

// Snapshot copies the fleet into a value that can be marshalled
func (f *Fleet) Snapshot() FleetState {
	return FleetState{
		Board:     *f.board,
		Ships:     f.Ships(),
		Remaining: f.remaining,
	}
}

// PlaceShip places a ship given its kind name, as supplied by a host.
// Checks run in order and the first failure is returned: anchor bounds,
// orientation, kind name, then every covered cell. Nothing changes on failure.
func (f *Fleet) PlaceShip(kindName string, anchor Coordinate, orientation Orientation) error {
	ship, err := f.check(kindName, anchor, orientation)
	if err != nil {
		return err
	}
	return f.place(ship)
}

// check runs every PlaceShip check without mutating the fleet
func (f *Fleet) check(kindName string, anchor Coordinate, orientation Orientation) (Ship, error) {
	if err := checkAnchor(anchor, orientation); err != nil {
		return Ship{}, err
	}
	kind, err := ParseShipKind(kindName)
	if err != nil {
		return Ship{}, err
	}
	ship := Ship{Kind: kind, Anchor: anchor, Orientation: orientation}
	return ship, f.fits(ship)
}

// Place places a ship of a known kind. It applies the same checks as PlaceShip.
func (f *Fleet) Place(kind ShipKind, anchor Coordinate, orientation Orientation) error {
	if err := checkAnchor(anchor, orientation); err != nil {
		return err
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownShipKind, int(kind))
	}
	return f.place(Ship{Kind: kind, Anchor: anchor, Orientation: orientation})
}

func checkAnchor(anchor Coordinate, orientation Orientation) error {
	if !anchor.InBounds() {
		return fmt.Errorf("%w: %s", ErrAnchorOutOfBounds, anchor)
	}
	if !orientation.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidOrientation, int(orientation))
	}
	return nil
}

// fits reports whether every cell of ship is in bounds and empty
func (f *Fleet) fits(ship Ship) error {
	for _, c := range ship.Cells() {
		if !c.InBounds() || f.board.Placement.At(c) != Empty {
			return fmt.Errorf("%w: %s %s at %s", ErrPlacementBlocked, ship.Kind, ship.Orientation, ship.Anchor)
		}
	}
	return nil
}

func (f *Fleet) place(ship Ship) error {
	if err := f.fits(ship); err != nil {
		return err
	}
	for _, c := range ship.Cells() {
		f.board.Placement.Set(c, Occupied)
	}
	f.ships = append(f.ships, ship)
	return nil
}

// Shot describes one resolved attack
type Shot struct {
	Target  Coordinate `json:"target"`
	Outcome Outcome    `json:"outcome"`
	Sunk    *Ship      `json:"sunk,omitempty"`
}

// Attack fires at target on the opponent's placement layer and records the
// shot on this fleet's attack layer. Nothing changes when an error is returned.
func (f *Fleet) Attack(target Coordinate, opponent *Fleet) (Outcome, error) {
	shot, err := f.Fire(target, opponent)
	if err != nil {
		return 0, err
	}
	return shot.Outcome, nil
}

// Fire behaves like Attack and also reports which ship sank, if any
func (f *Fleet) Fire(target Coordinate, opponent *Fleet) (Shot, error) {
	if opponent == nil {
		return Shot{}, ErrNoOpponent
	}
	if !target.InBounds() {
		return Shot{}, fmt.Errorf("%w: %s", ErrOutOfBounds, target)
	}
	if f.board.Attack.At(target) != Empty {
		return Shot{}, fmt.Errorf("%w: %s", ErrAlreadyAttacked, target)
	}

	shot := Shot{Target: target}
	switch defended := opponent.board.Placement.At(target); defended {
	case Empty:
		f.board.Attack.Set(target, Missed)
		shot.Outcome = OutcomeMiss

	case Occupied:
		f.board.Attack.Set(target, Hit)
		opponent.board.Placement.Set(target, Hit)
		shot.Outcome = OutcomeHit
		if ship, sunk := opponent.removeSunkShip(); sunk {
			opponent.remaining--
			shot.Outcome = OutcomeSunk
			shot.Sunk = &ship
		}

	default:
		log.Error().
			Str("target", target.String()).
			Str("state", defended.String()).
			Msg("attack resolved against a cell that is neither empty nor occupied")
		return Shot{}, fmt.Errorf("%w: cell %s is %s", ErrInconsistentBoard, target, defended)
	}
	return shot, nil
}

// removeSunkShip removes the first ship whose cells are all hit. Only the
// ship under the latest hit can have become fully hit, so the first match
// is the one that just sank.
func (f *Fleet) removeSunkShip() (Ship, bool) {
	for i, ship := range f.ships {
		if f.isSunk(ship) {
			f.ships = append(f.ships[:i], f.ships[i+1:]...)
			return ship, true
		}
	}
	return Ship{}, false
}

func (f *Fleet) isSunk(ship Ship) bool {
	for _, c := range ship.Cells() {
		if f.board.Placement.At(c) != Hit {
			return false
		}
	}
	return true
}
