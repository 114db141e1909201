// Package websocket pushes live match updates to spectators.
//
// A central Hub owns every connection, grouped by match ID. Each client gets a
// read pump that only keeps the connection alive and a write pump that
// forwards queued messages and pings.
//
// Message Protocol:
//
// Clients connect with ?match=<id> and receive JSON messages:
//
//	{"match_id": "ab12", "event": "state_update", "state": {...}}
//	{"match_id": "ab12", "event": "attack", "data": {...}}
//
// The state is the public engine.MatchState, so ship layouts never leave the
// server through this channel.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("match"))
//	})
//
//	hub.BroadcastState(matchID, match.State())
//
// Broadcasts never block the caller. When the queue is full the message is
// dropped and logged. Clients that cannot keep up are disconnected.
package websocket
