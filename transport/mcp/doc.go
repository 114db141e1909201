// Package mcp exposes battleship matches to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request to the REST
// API, and the JSON reply is formatted as text for the agent.
//
// MCP Tools:
//   - create_match, list_matches, get_match
//   - place_ship, auto_place, ready
//   - attack (takes an intent argument the agent uses to explain its shot)
//   - view_board, match_history
//   - list_configs, game_instructions
//
// Tools that act for a player take match_id and player (1 or 2). The server
// never returns the opponent's ship layout, so an agent only learns it by
// attacking.
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp, answered by client.GetMCPServer().HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
