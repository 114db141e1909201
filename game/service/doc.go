// Package service provides the business logic layer for battleship matches.
//
// The service package implements:
//   - Multi-match management
//   - Configuration loading
//   - Ship placement, readiness and attack processing
//   - Per-player board views
//   - Attack history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level match operations.
// SessionManager stores running matches. ConfigManager loads match rules.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and the
// engine. The engine itself does no locking, so every operation on a match
// holds that match's mutex from lookup to response. Different matches never
// contend with each other.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	match, err := gameService.CreateMatch(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameService.AutoPlace(ctx, match.ID, engine.Player1)
//	gameService.AutoPlace(ctx, match.ID, engine.Player2)
//	gameService.Ready(ctx, match.ID, engine.Player1)
//	gameService.Ready(ctx, match.ID, engine.Player2)
//
//	result, err := gameService.Attack(ctx, match.ID, engine.Player1, engine.Coordinate{Row: 4, Col: 4})
//
// Errors wrap the engine sentinels, so callers can test them with errors.Is.
package service
