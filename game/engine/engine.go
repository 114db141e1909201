package engine

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// PlayerID identifies a seat in a match
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Valid reports whether p is Player1 or Player2
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Opponent returns the other seat
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) index() int {
	return int(p) - 1
}

// Phase is the stage a match is in
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

// Engine provides the main interface for match operations
type Engine interface {
	// State
	State() *MatchState
	Phase() Phase
	CurrentPlayer() PlayerID
	Winner() PlayerID
	IsOver() bool

	// Setup
	PlaceShip(player PlayerID, kindName string, anchor Coordinate, orientation Orientation) error
	PlaceRandom(player PlayerID) error
	Ready(player PlayerID) error

	// Combat
	Attack(player PlayerID, target Coordinate) (*AttackRecord, error)

	// Access
	Fleet(player PlayerID) (*Fleet, error)
	Config() *MatchConfig
	History() []AttackRecord
	LastAttack() *AttackRecord
}

// Match implements Engine for two fleets playing under a MatchConfig
type Match struct {
	config  *MatchConfig
	rng     *rand.Rand
	fleets  [2]*Fleet
	ready   [2]bool
	placed  [2]int
	phase   Phase
	current PlayerID
	winner  PlayerID
	message string
	history []AttackRecord
}

// NewMatch creates a match in the setup phase. A nil rng is seeded from the clock.
func NewMatch(config *MatchConfig, rng *rand.Rand) (*Match, error) {
	if err := ValidateMatchConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}

	return &Match{
		config:  config,
		rng:     rng,
		fleets:  [2]*Fleet{NewFleet(), NewFleet()},
		phase:   PhaseSetup,
		message: config.Messages.Welcome,
		history: []AttackRecord{},
	}, nil
}

// NewMatchWithDefaults creates a match under DefaultMatchConfig
func NewMatchWithDefaults() *Match {
	match, _ := NewMatch(DefaultMatchConfig(), nil)
	return match
}

// Config returns the rules this match is played under
func (m *Match) Config() *MatchConfig {
	return m.config
}

// Phase returns the current phase
func (m *Match) Phase() Phase {
	return m.phase
}

// CurrentPlayer returns whose turn it is, or 0 outside the active phase
func (m *Match) CurrentPlayer() PlayerID {
	if m.phase != PhaseActive {
		return 0
	}
	return m.current
}

// Winner returns the winning player, or 0 while the match is undecided
func (m *Match) Winner() PlayerID {
	return m.winner
}

// IsOver returns whether a fleet has been defeated
func (m *Match) IsOver() bool {
	return m.phase == PhaseFinished
}

// Fleet returns the fleet seated at player
func (m *Match) Fleet(player PlayerID) (*Fleet, error) {
	if !player.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, int(player))
	}
	return m.fleets[player.index()], nil
}

// PlaceShip places a ship for player during setup
func (m *Match) PlaceShip(player PlayerID, kindName string, anchor Coordinate, orientation Orientation) error {
	if err := m.checkSetup(player); err != nil {
		return err
	}

	// Placement errors come first; the duplicate rule only applies to a
	// ship that would otherwise fit.
	fleet := m.fleets[player.index()]
	ship, err := fleet.check(kindName, anchor, orientation)
	if err != nil {
		return err
	}
	if m.config.UniqueKinds && m.hasKind(player, ship.Kind) {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, ship.Kind)
	}

	if err := fleet.place(ship); err != nil {
		return err
	}
	m.placed[player.index()]++
	return nil
}

// PlaceRandom fills player's remaining slots with one ship of every kind not
// yet placed, at random positions. Only an empty fleet gets a full random layout.
func (m *Match) PlaceRandom(player PlayerID) error {
	if err := m.checkSetup(player); err != nil {
		return err
	}
	if m.placed[player.index()] > 0 {
		return fmt.Errorf("%w: random placement needs an empty fleet", ErrPlacementBlocked)
	}

	fleet := NewFleet()
	if err := PlaceRandomFleet(fleet, m.rng); err != nil {
		return err
	}
	m.fleets[player.index()] = fleet
	m.placed[player.index()] = NumShips
	return nil
}

// Ready marks player as done with setup. Once both players are ready the
// first attacker is chosen and the match becomes active.
func (m *Match) Ready(player PlayerID) error {
	if !player.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, int(player))
	}
	if m.phase != PhaseSetup {
		return fmt.Errorf("%w: match is %s", ErrWrongPhase, m.phase)
	}
	if m.ready[player.index()] {
		return ErrPlayerReady
	}
	if placed := m.placed[player.index()]; placed != NumShips {
		return fmt.Errorf("%w: player %d placed %d of %d ships", ErrFleetIncomplete, player, placed, NumShips)
	}

	m.ready[player.index()] = true
	if m.ready[0] && m.ready[1] {
		m.start()
	} else {
		m.message = m.config.Messages.Waiting
	}
	return nil
}

func (m *Match) start() {
	m.phase = PhaseActive
	m.current = m.chooseFirstAttacker()
	if m.config.Messages.Start != "" {
		m.message = fmt.Sprintf(m.config.Messages.Start, m.current)
	} else {
		m.message = m.config.Messages.YourTurn
	}
}

func (m *Match) chooseFirstAttacker() PlayerID {
	switch m.config.FirstAttacker {
	case FirstAttackerPlayer1:
		return Player1
	case FirstAttackerPlayer2:
		return Player2
	default:
		return PlayerID(m.rng.Intn(2) + 1)
	}
}

// Attack fires a shot for player at the opponent. Rejected shots do not
// consume the turn; this intentionally departs from passing the turn after
// any result, errors included. When the defender loses its last ship the
// match finishes.
func (m *Match) Attack(player PlayerID, target Coordinate) (*AttackRecord, error) {
	if !player.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, int(player))
	}
	if m.phase != PhaseActive {
		return nil, fmt.Errorf("%w: match is %s", ErrWrongPhase, m.phase)
	}
	if player != m.current {
		return nil, fmt.Errorf("%w: player %d to move", ErrNotYourTurn, m.current)
	}

	defender := m.fleets[player.Opponent().index()]
	shot, err := m.fleets[player.index()].Fire(target, defender)
	if err != nil {
		return nil, err
	}

	record := AttackRecord{
		Number:            len(m.history) + 1,
		Attacker:          player,
		Target:            shot.Target,
		Outcome:           shot.Outcome,
		DefenderRemaining: defender.Remaining(),
		Timestamp:         time.Now().Unix(),
	}
	if shot.Sunk != nil {
		kind := shot.Sunk.Kind
		record.Sunk = &kind
	}
	m.history = append(m.history, record)

	if defender.IsDefeated() {
		m.phase = PhaseFinished
		m.winner = player
		m.message = fmt.Sprintf(m.config.Messages.Victory, player)
	} else {
		m.current = player.Opponent()
		m.message = shot.Outcome.String()
	}

	return &m.history[len(m.history)-1], nil
}

// History returns a copy of every resolved attack in order
func (m *Match) History() []AttackRecord {
	history := make([]AttackRecord, len(m.history))
	copy(history, m.history)
	return history
}

// LastAttack returns the most recent attack, or nil if none
func (m *Match) LastAttack() *AttackRecord {
	if len(m.history) == 0 {
		return nil
	}
	last := m.history[len(m.history)-1]
	return &last
}

// State returns a snapshot that reveals no ship positions
func (m *Match) State() *MatchState {
	state := &MatchState{
		ConfigName:    m.config.Name,
		Phase:         m.phase,
		CurrentPlayer: m.CurrentPlayer(),
		Winner:        m.winner,
		Message:       m.message,
		TotalAttacks:  len(m.history),
	}
	for i, fleet := range m.fleets {
		id := PlayerID(i + 1)
		state.Players[i] = PlayerState{
			ID:             id,
			Ready:          m.ready[i],
			ShipsPlaced:    m.placed[i],
			ShipsRemaining: fleet.Remaining(),
			ShotsFired:     fleet.Board().Attack.Count(Missed) + fleet.Board().Attack.Count(Hit),
			Defeated:       fleet.IsDefeated(),
		}
	}
	return state
}

func (m *Match) checkSetup(player PlayerID) error {
	if !player.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, int(player))
	}
	if m.phase != PhaseSetup {
		return fmt.Errorf("%w: match is %s", ErrWrongPhase, m.phase)
	}
	if m.ready[player.index()] {
		return ErrPlayerReady
	}
	if m.placed[player.index()] >= NumShips {
		return fmt.Errorf("%w: all %d ships placed", ErrFleetFull, NumShips)
	}
	return nil
}

func (m *Match) hasKind(player PlayerID, kind ShipKind) bool {
	for _, ship := range m.fleets[player.index()].Ships() {
		if ship.Kind == kind {
			return true
		}
	}
	return false
}
