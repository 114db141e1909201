// Package config loads battleship match rules from JSON files.
//
// Each file in the configs directory holds one engine.MatchConfig: a name,
// a description, who attacks first ("random", "player1" or "player2"),
// whether a fleet may hold only one ship of each kind, and the messages
// shown to players. The file name without .json is the config ID.
//
// Default Configuration:
//
// classic.json is the default when present. Otherwise the first valid file
// in the directory is used, and an empty directory falls back to
// engine.DefaultMatchConfig.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadConfig("player1_first")
//	if errors.Is(err, config.ErrConfigNotFound) {
//		rules = manager.GetDefault()
//	}
//
//	configs, err := manager.ListConfigs()
//
// Loaded configurations are cached until RefreshCache is called. Files that
// fail engine.ValidateMatchConfig are rejected with ErrInvalidConfig and
// skipped by ListConfigs.
package config
