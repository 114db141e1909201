package engine

import (
	"fmt"
	"strings"
)

const (
	// GridSize is the side length of both board layers.
	GridSize = 10

	// NumShips is the number of ships every fleet starts with.
	NumShips = 5

	// Validation constants
	MaxRandomPlacementTries = 10000
	WebSocketBufferSize     = 256
)

// CellState is the value held by a single cell of a board layer
type CellState int

const (
	Empty CellState = iota
	Occupied
	Missed
	Hit
)

// String returns the lower-case name of the state
func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	case Missed:
		return "missed"
	case Hit:
		return "hit"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Orientation is the axis a ship grows along from its anchor
type Orientation int

const (
	Horizontal Orientation = 0
	Vertical   Orientation = 1
)

// Valid reports whether o is one of the two known orientations
func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// ShipKind identifies one of the five fixed ship classes
type ShipKind int

const (
	Carrier ShipKind = iota
	Battleship
	Cruiser
	Submarine
	Destroyer
)

var shipTable = [...]struct {
	name   string
	length int
}{
	Carrier:    {"carrier", 5},
	Battleship: {"battleship", 4},
	Cruiser:    {"cruiser", 3},
	Submarine:  {"submarine", 3},
	Destroyer:  {"destroyer", 2},
}

// ShipKinds returns every kind in fleet order
func ShipKinds() []ShipKind {
	return []ShipKind{Carrier, Battleship, Cruiser, Submarine, Destroyer}
}

// ParseShipKind maps a kind name such as "carrier" to its ShipKind.
// Matching is exact and case-sensitive.
func ParseShipKind(name string) (ShipKind, error) {
	for i, entry := range shipTable {
		if entry.name == name {
			return ShipKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShipKind, name)
}

// Valid reports whether k is a known kind
func (k ShipKind) Valid() bool {
	return k >= Carrier && k <= Destroyer
}

// Length returns the number of cells a ship of this kind occupies
func (k ShipKind) Length() int {
	if !k.Valid() {
		return 0
	}
	return shipTable[k].length
}

func (k ShipKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return shipTable[k].name
}

// MarshalText encodes the kind by name
func (k ShipKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShipKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name, case-insensitively
func (k *ShipKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShipKind(strings.ToLower(string(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Coordinate addresses a cell by row and column
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether both axes lie in [0, GridSize)
func (c Coordinate) InBounds() bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// step returns the coordinate i cells from c along orientation o
func (c Coordinate) step(o Orientation, i int) Coordinate {
	if o == Vertical {
		return Coordinate{Row: c.Row + i, Col: c.Col}
	}
	return Coordinate{Row: c.Row, Col: c.Col + i}
}

// Ship is a placed ship. It never changes once on the board.
type Ship struct {
	Kind        ShipKind    `json:"kind"`
	Anchor      Coordinate  `json:"anchor"`
	Orientation Orientation `json:"orientation"`
}

// Cells lists every coordinate the ship covers, starting at the anchor
func (s Ship) Cells() []Coordinate {
	length := s.Kind.Length()
	cells := make([]Coordinate, 0, length)
	for i := 0; i < length; i++ {
		cells = append(cells, s.Anchor.step(s.Orientation, i))
	}
	return cells
}

// Outcome is the result of a resolved attack
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
	OutcomeSunk
)

// String returns the literal the host contract expects for each outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "Miss!"
	case OutcomeHit:
		return "Hit!"
	case OutcomeSunk:
		return "Enemy ship has been taken down!"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Code returns a short machine-friendly name: miss, hit or sunk
func (o Outcome) Code() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeHit:
		return "hit"
	case OutcomeSunk:
		return "sunk"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by its code
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.Code()), nil
}

// UnmarshalText decodes an outcome code
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "miss":
		*o = OutcomeMiss
	case "hit":
		*o = OutcomeHit
	case "sunk":
		*o = OutcomeSunk
	default:
		return fmt.Errorf("unknown outcome %q", string(text))
	}
	return nil
}
