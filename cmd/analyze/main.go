// Command analyze prints quick, human-readable statistics about the rule files
// in the project's configs directory. For each file it simulates matches with
// random fleets and random shot order, then reports how long matches last and
// how often the first attacker wins.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wricardo/battleship/game/engine"
	"golang.org/x/exp/rand"
)

const (
	defaultRuns = 500
	seed        = 7
)

// Summary aggregates the simulated matches for one rule file
type Summary struct {
	Name            string
	Runs            int
	FirstWins       int
	Player1First    int
	MinAttacks      int
	MaxAttacks      int
	TotalAttacks    int
	SunkBeforeFinal map[engine.ShipKind]int
}

// MeanAttacks is the average number of attacks per match
func (s Summary) MeanAttacks() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalAttacks) / float64(s.Runs)
}

// FirstWinRate is the share of matches won by the player who attacked first
func (s Summary) FirstWinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.FirstWins) / float64(s.Runs)
}

// legalAnchors counts the anchors a ship of kind has on an empty grid
func legalAnchors(kind engine.ShipKind) int {
	return 2 * engine.GridSize * (engine.GridSize - kind.Length() + 1)
}

// simulate plays one match where each player fires at the cells of a
// shuffled grid in order.
func simulate(config *engine.MatchConfig, rng *rand.Rand) (*engine.Match, engine.PlayerID, error) {
	match, err := engine.NewMatch(config, rng)
	if err != nil {
		return nil, 0, err
	}
	for _, player := range []engine.PlayerID{engine.Player1, engine.Player2} {
		if err := match.PlaceRandom(player); err != nil {
			return nil, 0, err
		}
		if err := match.Ready(player); err != nil {
			return nil, 0, err
		}
	}

	first := match.CurrentPlayer()
	orders := map[engine.PlayerID][]int{
		engine.Player1: rng.Perm(engine.GridSize * engine.GridSize),
		engine.Player2: rng.Perm(engine.GridSize * engine.GridSize),
	}
	for !match.IsOver() {
		player := match.CurrentPlayer()
		cell := orders[player][0]
		orders[player] = orders[player][1:]

		target := engine.Coordinate{Row: cell / engine.GridSize, Col: cell % engine.GridSize}
		if _, err := match.Attack(player, target); err != nil {
			return nil, 0, err
		}
	}
	return match, first, nil
}

// analyzeConfig simulates runs matches under config
func analyzeConfig(config *engine.MatchConfig, runs int, rng *rand.Rand) (Summary, error) {
	summary := Summary{
		Name:            config.Name,
		SunkBeforeFinal: map[engine.ShipKind]int{},
	}

	for i := 0; i < runs; i++ {
		match, first, err := simulate(config, rng)
		if err != nil {
			return summary, fmt.Errorf("run %d: %w", i+1, err)
		}

		attacks := len(match.History())
		summary.Runs++
		summary.TotalAttacks += attacks
		if summary.MinAttacks == 0 || attacks < summary.MinAttacks {
			summary.MinAttacks = attacks
		}
		if attacks > summary.MaxAttacks {
			summary.MaxAttacks = attacks
		}
		if match.Winner() == first {
			summary.FirstWins++
		}
		if first == engine.Player1 {
			summary.Player1First++
		}

		// Every sinking except the final one
		for _, record := range match.History()[:attacks-1] {
			if record.Sunk != nil {
				summary.SunkBeforeFinal[*record.Sunk]++
			}
		}
	}
	return summary, nil
}

func printSummary(s Summary) {
	fmt.Printf("Name: %s\n", s.Name)
	fmt.Printf("Simulated matches: %d\n", s.Runs)
	fmt.Printf("Attacks per match: min %d, mean %.1f, max %d\n", s.MinAttacks, s.MeanAttacks(), s.MaxAttacks)
	fmt.Printf("First attacker win rate: %.1f%%\n", 100*s.FirstWinRate())
	fmt.Printf("Player 1 attacked first: %d/%d\n", s.Player1First, s.Runs)
	for _, kind := range engine.ShipKinds() {
		fmt.Printf("  %-10s len %d, %3d anchors, sunk before the last shot %d times\n",
			kind, kind.Length(), legalAnchors(kind), s.SunkBeforeFinal[kind])
	}
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	rng := engine.NewRand(seed)
	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))

		config, err := engine.LoadMatchConfig(file)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			continue
		}

		summary, err := analyzeConfig(config, defaultRuns, rng)
		if err != nil {
			fmt.Printf("Simulation failed: %v\n", err)
			continue
		}
		printSummary(summary)
	}
}
