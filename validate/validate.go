// Command validate checks the match rule files in a configs directory
// (../configs by default, or the first argument). For each file it checks:
//   - JSON structure, rejecting unknown fields
//   - Required fields and a known first_attacker policy
//   - Message templates that format without leftover verbs
//   - A dry run: both fleets placed at random and a full match played to a winner
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/battleship/game/engine"
)

// dryRunSeed keeps dry runs reproducible
const dryRunSeed = 42

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single rule file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.MatchConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateMatchConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	validateMessages(&config, &result)
	if !result.Valid {
		return result
	}

	winner, attacks, err := dryRun(&config)
	if err != nil {
		result.fail("Dry run failed: %v", err)
		return result
	}

	result.info("Name: %s", config.Name)
	result.info("First attacker: %s", config.FirstAttacker)
	result.info("Unique kinds: %t", config.UniqueKinds)
	result.info("Dry run: player %d won after %d attacks", winner, attacks)
	return result
}

// validateMessages formats each template with a player number and flags
// output that still carries a formatting error.
func validateMessages(config *engine.MatchConfig, result *ValidationResult) {
	templates := map[string]string{
		"start":   config.Messages.Start,
		"victory": config.Messages.Victory,
	}
	for name, template := range templates {
		if template == "" {
			continue
		}
		if out := fmt.Sprintf(template, engine.Player1); strings.Contains(out, "%!") {
			result.fail("messages.%s does not format with one player number: %q", name, out)
		}
	}

	plain := map[string]string{
		"your_turn": config.Messages.YourTurn,
		"defeat":    config.Messages.Defeat,
		"waiting":   config.Messages.Waiting,
	}
	for name, text := range plain {
		if strings.Contains(text, "%") {
			result.fail("messages.%s is shown verbatim and must not contain %%", name)
		}
	}
}

// dryRun plays a complete match under config. Both fleets are placed at
// random and each player sweeps the opponent grid in row-major order. It
// returns the winner and the attack count.
func dryRun(config *engine.MatchConfig) (engine.PlayerID, int, error) {
	match, err := engine.NewMatch(config, engine.NewRand(dryRunSeed))
	if err != nil {
		return 0, 0, err
	}

	for _, player := range []engine.PlayerID{engine.Player1, engine.Player2} {
		if err := match.PlaceRandom(player); err != nil {
			return 0, 0, fmt.Errorf("placing fleet for player %d: %w", player, err)
		}
		if err := match.Ready(player); err != nil {
			return 0, 0, fmt.Errorf("readying player %d: %w", player, err)
		}
	}
	if match.Phase() != engine.PhaseActive {
		return 0, 0, fmt.Errorf("match did not start, phase is %s", match.Phase())
	}

	first := match.CurrentPlayer()
	switch {
	case config.FirstAttacker == engine.FirstAttackerPlayer1 && first != engine.Player1,
		config.FirstAttacker == engine.FirstAttackerPlayer2 && first != engine.Player2:
		return 0, 0, fmt.Errorf("first attacker policy %q picked player %d", config.FirstAttacker, first)
	}

	next := map[engine.PlayerID]int{}
	for !match.IsOver() {
		player := match.CurrentPlayer()
		cell := next[player]
		if cell >= engine.GridSize*engine.GridSize {
			return 0, 0, fmt.Errorf("player %d ran out of targets", player)
		}
		next[player] = cell + 1

		target := engine.Coordinate{Row: cell / engine.GridSize, Col: cell % engine.GridSize}
		if _, err := match.Attack(player, target); err != nil {
			return 0, 0, fmt.Errorf("attack %s by player %d: %w", target, player, err)
		}
	}

	if !match.Winner().Valid() {
		return 0, 0, fmt.Errorf("match finished without a winner")
	}
	return match.Winner(), len(match.History()), nil
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
