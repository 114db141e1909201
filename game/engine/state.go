package engine

// MatchState is the public view of a match. Ship positions are never
// included; each player fetches its own board separately.
type MatchState struct {
	ConfigName    string         `json:"config_name"`
	Phase         Phase          `json:"phase"`
	CurrentPlayer PlayerID       `json:"current_player,omitempty"`
	Winner        PlayerID       `json:"winner,omitempty"`
	Message       string         `json:"message"`
	Players       [2]PlayerState `json:"players"`
	TotalAttacks  int            `json:"total_attacks"`
}

// PlayerState summarizes one seat of a match
type PlayerState struct {
	ID             PlayerID `json:"id"`
	Ready          bool     `json:"ready"`
	ShipsPlaced    int      `json:"ships_placed"`
	ShipsRemaining int      `json:"ships_remaining"`
	ShotsFired     int      `json:"shots_fired"`
	Defeated       bool     `json:"defeated"`
}

// AttackRecord is one entry of a match's attack log
type AttackRecord struct {
	Number            int        `json:"number"`
	Attacker          PlayerID   `json:"attacker"`
	Target            Coordinate `json:"target"`
	Outcome           Outcome    `json:"outcome"`
	Sunk              *ShipKind  `json:"sunk,omitempty"`
	DefenderRemaining int        `json:"defender_remaining"`
	Timestamp         int64      `json:"timestamp"`
}

// Result returns the outcome literal shown to players
func (r AttackRecord) Result() string {
	return r.Outcome.String()
}
