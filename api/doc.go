// Package api provides the HTTP REST API for battleship matches.
//
// Endpoints:
//
// Match Management:
//   - POST   /api/matches                 Create a match ({"config_id": "classic"})
//   - GET    /api/matches                 List matches (?sort=created|accessed&order=asc|desc&phase=setup&limit=10)
//   - GET    /api/matches/{id}            Get one match
//   - DELETE /api/matches/{id}            Delete a match
//   - GET    /api/matches/{id}/history    Attack log (?page=1&limit=20&order=desc)
//
// Players (player is 1 or 2):
//   - POST /api/matches/{id}/players/{player}/ships       Place one ship ({"kind": "carrier", "row": 4, "col": 4, "orientation": 0})
//   - POST /api/matches/{id}/players/{player}/auto-place  Place a random fleet
//   - POST /api/matches/{id}/players/{player}/ready       Finish setup
//   - POST /api/matches/{id}/players/{player}/attack      Fire ({"row": 4, "col": 6})
//   - GET  /api/matches/{id}/players/{player}/board       The player's own view (not access-controlled)
//
// Configuration:
//   - GET  /api/configs         List rule files
//   - GET  /api/configs/{name}  Get one rule file
//   - POST /api/configs         Save a rule file
//
// Other:
//   - GET /health, /api/health
//   - GET /ws?match={id}  Live updates over WebSocket
//
// Errors:
//
// Errors are JSON objects with one field:
//
//	{"error": "attack (4,6): not your turn"}
//
// Unknown matches and configs map to 404, rejected placements and shots to
// 400, and moves that are legal but out of phase or out of turn to 409.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
