// Package engine provides the core rules for a two-player naval combat game.
//
// The engine package implements:
//   - A 10x10 board with a placement layer and an attack layer
//   - Ship placement with all-or-nothing validation
//   - Attack resolution: miss, hit, sink and defeat detection
//   - A match controller with setup, ready, turn order and victory
//   - Match rule configuration loading and validation
//
// Core Types:
//
// Board holds the two layers of a single player. Fleet owns a Board, the
// ships still afloat and the count of ships left; it implements placement
// and attacks against another Fleet. Match seats two fleets and enforces
// the phases of a game through the Engine interface.
//
// Usage:
//
//	attacker := engine.NewFleet()
//	defender := engine.NewFleet()
//
//	err := defender.PlaceShip("carrier", engine.Coordinate{Row: 4, Col: 4}, engine.Horizontal)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := attacker.Attack(engine.Coordinate{Row: 4, Col: 4}, defender)
//	fmt.Println(outcome) // Hit!
//
// Concurrency:
//
// Nothing in this package locks. A host that serves several goroutines must
// serialize every operation on the two fleets of a match, for example with
// one mutex per match held for the duration of each call.
package engine
