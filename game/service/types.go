package service

import (
	"time"

	"github.com/wricardo/battleship/game/engine"
)

// MatchInfo provides information about a match
type MatchInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	State          *engine.MatchState  `json:"state"`
	Config         *engine.MatchConfig `json:"config"`
}

// PlacementRequest describes one ship to place
type PlacementRequest struct {
	Kind        string `json:"kind"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation int    `json:"orientation"` // 0 horizontal, 1 vertical
}

// PlacementResult contains the result of a placement operation
type PlacementResult struct {
	Player      engine.PlayerID    `json:"player"`
	Ships       []engine.Ship      `json:"ships"`
	ShipsPlaced int                `json:"ships_placed"`
	Complete    bool               `json:"complete"`
	State       *engine.MatchState `json:"state"`
	Rendered    string             `json:"rendered"`
}

// AttackResult contains the result of an attack
type AttackResult struct {
	Record   *engine.AttackRecord `json:"record"`
	Result   string               `json:"result"`
	State    *engine.MatchState   `json:"state"`
	GameOver bool                 `json:"game_over"`
	Winner   engine.PlayerID      `json:"winner,omitempty"`
	Events   []GameEvent          `json:"events"`
}

// GameEvent represents an event that occurred during a match
type GameEvent struct {
	Type      string          `json:"type"` // "attack", "sunk", "victory", "ready", "start"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Player    engine.PlayerID `json:"player,omitempty"`
}

// BoardView is everything one player may see: their own placement layer
// with ships, and their attack layer. The opponent's layout is never included.
// Nothing checks who asks for it: any caller that names a player gets that
// player's fleet, so a host exposing boards must authenticate seats itself.
type BoardView struct {
	MatchID   string             `json:"match_id"`
	Player    engine.PlayerID    `json:"player"`
	Placement engine.Grid        `json:"placement"`
	Attack    engine.Grid        `json:"attack"`
	Ships     []engine.Ship      `json:"ships"`
	Remaining int                `json:"remaining"`
	Rendered  string             `json:"rendered"`
	State     *engine.MatchState `json:"state"`
}

// HistoryOptions configures attack history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated attack history
type HistoryResponse struct {
	Attacks      []engine.AttackRecord `json:"attacks"`
	TotalAttacks int                   `json:"total_attacks"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalPages   int                   `json:"total_pages"`
	HasNext      bool                  `json:"has_next"`
	HasPrevious  bool                  `json:"has_previous"`
}

// ConfigInfo provides information about a match configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for match creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	FirstAttacker string `json:"first_attacker"`
	UniqueKinds   bool   `json:"unique_kinds"`
}
