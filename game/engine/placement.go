package engine

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// PlaceRandomFleet places one ship of every kind at random anchors and
// orientations. Candidates go through the same checks as Place, so a
// rejected candidate simply triggers another draw. The fleet must not
// already hold ships that leave no room; after MaxRandomPlacementTries
// draws ErrRandomPlacement is returned and the ships placed so far stay.
func PlaceRandomFleet(f *Fleet, rng *rand.Rand) error {
	tries := 0
	for _, kind := range ShipKinds() {
		for {
			if tries >= MaxRandomPlacementTries {
				return fmt.Errorf("%w: gave up on %s after %d tries", ErrRandomPlacement, kind, tries)
			}
			tries++

			anchor := Coordinate{Row: rng.Intn(GridSize), Col: rng.Intn(GridSize)}
			orientation := Orientation(rng.Intn(2))
			if err := f.Place(kind, anchor, orientation); err == nil {
				break
			}
		}
	}
	return nil
}

// NewRand returns a generator seeded with seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
