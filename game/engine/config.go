package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// First attacker policies
const (
	FirstAttackerRandom  = "random"
	FirstAttackerPlayer1 = "player1"
	FirstAttackerPlayer2 = "player2"
)

// MatchConfig holds the rules a match is played under
type MatchConfig struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	FirstAttacker string   `json:"first_attacker"`
	UniqueKinds   bool     `json:"unique_kinds"`
	Messages      Messages `json:"messages"`
}

// Messages are the texts shown to players at key points of a match
type Messages struct {
	Welcome  string `json:"welcome"`
	Start    string `json:"start"`
	YourTurn string `json:"your_turn"`
	Victory  string `json:"victory"`
	Defeat   string `json:"defeat"`
	Waiting  string `json:"waiting"`
}

// ValidateMatchConfig checks a configuration for required fields and known policies
func ValidateMatchConfig(config *MatchConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	switch config.FirstAttacker {
	case FirstAttackerRandom, FirstAttackerPlayer1, FirstAttackerPlayer2:
	default:
		return fmt.Errorf("config validation: first_attacker must be one of %q, %q, %q, got %q",
			FirstAttackerRandom, FirstAttackerPlayer1, FirstAttackerPlayer2, config.FirstAttacker)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("config validation: messages.victory must contain %%d for the winning player")
	}
	if config.Messages.Start != "" && !strings.Contains(config.Messages.Start, "%d") {
		return fmt.Errorf("config validation: messages.start must contain %%d for the first attacker")
	}

	return nil
}

// LoadMatchConfig reads and validates a configuration from a JSON file.
// Paths under configs/ are redirected to CONFIG_DIR when it is set.
func LoadMatchConfig(filename string) (*MatchConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" && strings.HasPrefix(filename, "configs/") {
		configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config MatchConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateMatchConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filename, err)
	}

	return &config, nil
}

// LoadMatchConfigByName loads a configuration by name from the configs directory
func LoadMatchConfigByName(configName string) (*MatchConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	config, err := LoadMatchConfig("configs/" + configName)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}
	return config, err
}

// DefaultMatchConfig returns the classic rules: a random first attacker and
// one ship of each kind per fleet.
func DefaultMatchConfig() *MatchConfig {
	config := &MatchConfig{
		Name:          "classic",
		Description:   "Classic rules: one ship of each kind, random first attacker",
		FirstAttacker: FirstAttackerRandom,
		UniqueKinds:   true,
	}
	config.Messages = Messages{
		Welcome:  "Welcome to Battleship! Place your five ships.",
		Start:    "Game has started! Player %d will attack first.",
		YourTurn: "Your turn to attack!",
		Victory:  "Game over! Player %d wins!",
		Defeat:   "You have lost all ships!",
		Waiting:  "Waiting for the opponent...",
	}
	return config
}
