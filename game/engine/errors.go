package engine

import "errors"

// Placement errors
var (
	ErrAnchorOutOfBounds  = errors.New("cannot place ship: start position out of bounds")
	ErrInvalidOrientation = errors.New("cannot place ship: invalid orientation")
	ErrUnknownShipKind    = errors.New("unknown ship kind")
	ErrPlacementBlocked   = errors.New("cannot place ship: out of bounds or overlapping")
	ErrRandomPlacement    = errors.New("failed to place fleet randomly")
)

// Attack errors
var (
	ErrOutOfBounds     = errors.New("coordinates out of bounds")
	ErrAlreadyAttacked = errors.New("cannot attack this cell: already attacked")
	ErrNoOpponent      = errors.New("opponent fleet is missing")

	// ErrInconsistentBoard means the defender's placement cell was neither
	// empty nor occupied when an unattacked cell was targeted.
	ErrInconsistentBoard = errors.New("inconsistent board state")
)

// Match errors
var (
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrWrongPhase      = errors.New("operation not allowed in current phase")
	ErrPlayerReady     = errors.New("player already declared ready")
	ErrFleetIncomplete = errors.New("fleet is incomplete")
	ErrFleetFull       = errors.New("fleet is full")
	ErrDuplicateKind   = errors.New("ship kind already placed")
	ErrNotYourTurn     = errors.New("not your turn")
)

// IsValidationError reports whether err is a recoverable caller mistake
// rather than a broken invariant.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrAnchorOutOfBounds, ErrInvalidOrientation, ErrUnknownShipKind, ErrPlacementBlocked,
		ErrOutOfBounds, ErrAlreadyAttacked, ErrNoOpponent, ErrUnknownPlayer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
