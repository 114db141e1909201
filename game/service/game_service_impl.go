package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/battleship/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// session looks up a match, marks it accessed and locks it. The caller
// must call unlock.
func (s *gameServiceImpl) session(matchID string) (*Session, func(), error) {
	sess, err := s.sessions.Get(matchID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrSessionNotFound, matchID)
		}
		return nil, nil, err
	}
	s.sessions.UpdateLastAccessed(matchID)

	sess.mu.Lock()
	return sess, sess.mu.Unlock, nil
}

func (s *gameServiceImpl) info(sess *Session, configID string) *MatchInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &MatchInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		State:          sess.Match.State(),
		Config:         sess.Config,
	}
}

// CreateMatch creates a new match in the setup phase
func (s *gameServiceImpl) CreateMatch(ctx context.Context, configName string) (*MatchInfo, error) {
	var config *engine.MatchConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Info().Str("match", sess.ID).Str("config", config.Name).Msg("match created")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.info(sess, configName), nil
}

// GetMatch retrieves match information
func (s *gameServiceImpl) GetMatch(ctx context.Context, matchID string) (*MatchInfo, error) {
	sess, unlock, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.info(sess, ""), nil
}

// ListMatches returns all active matches
func (s *gameServiceImpl) ListMatches(ctx context.Context) ([]*MatchInfo, error) {
	sessions := s.sessions.List()
	result := make([]*MatchInfo, 0, len(sessions))

	for _, sess := range sessions {
		sess.mu.Lock()
		result = append(result, s.info(sess, ""))
		sess.mu.Unlock()
	}

	return result, nil
}

// DeleteMatch removes a match
func (s *gameServiceImpl) DeleteMatch(ctx context.Context, matchID string) error {
	if err := s.sessions.Delete(matchID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, matchID)
		}
		return err
	}
	log.Info().Str("match", matchID).Msg("match deleted")
	return nil
}

// PlaceShip places one ship for player
func (s *gameServiceImpl) PlaceShip(ctx context.Context, matchID string, player engine.PlayerID, req PlacementRequest) (*PlacementResult, error) {
	sess, unlock, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	anchor := engine.Coordinate{Row: req.Row, Col: req.Col}
	if err := sess.Match.PlaceShip(player, req.Kind, anchor, engine.Orientation(req.Orientation)); err != nil {
		log.Debug().
			Err(err).
			Str("match", matchID).
			Int("player", int(player)).
			Str("kind", req.Kind).
			Int("row", req.Row).
			Int("col", req.Col).
			Msg("ship placement rejected")
		return nil, fmt.Errorf("place %s: %w", req.Kind, err)
	}

	return placementResult(sess, player)
}

// AutoPlace places a complete random fleet for player
func (s *gameServiceImpl) AutoPlace(ctx context.Context, matchID string, player engine.PlayerID) (*PlacementResult, error) {
	sess, unlock, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := sess.Match.PlaceRandom(player); err != nil {
		return nil, fmt.Errorf("auto place: %w", err)
	}
	log.Debug().Str("match", matchID).Int("player", int(player)).Msg("fleet placed at random")

	return placementResult(sess, player)
}

func placementResult(sess *Session, player engine.PlayerID) (*PlacementResult, error) {
	fleet, err := sess.Match.Fleet(player)
	if err != nil {
		return nil, err
	}
	state := sess.Match.State()
	placed := state.Players[player-1].ShipsPlaced

	return &PlacementResult{
		Player:      player,
		Ships:       fleet.Ships(),
		ShipsPlaced: placed,
		Complete:    placed == engine.NumShips,
		State:       state,
		Rendered:    fleet.Board().RenderPlacement(),
	}, nil
}

// Ready declares player done with setup
func (s *gameServiceImpl) Ready(ctx context.Context, matchID string, player engine.PlayerID) (*MatchInfo, error) {
	sess, unlock, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := sess.Match.Ready(player); err != nil {
		return nil, fmt.Errorf("ready: %w", err)
	}

	logger := log.Info().Str("match", matchID).Int("player", int(player))
	if sess.Match.Phase() == engine.PhaseActive {
		logger.Int("first_attacker", int(sess.Match.CurrentPlayer())).Msg("match started")
	} else {
		logger.Msg("player ready")
	}

	return s.info(sess, ""), nil
}

// Attack fires one shot for player
func (s *gameServiceImpl) Attack(ctx context.Context, matchID string, player engine.PlayerID, target engine.Coordinate) (*AttackResult, error) {
	sess, unlock, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	record, err := sess.Match.Attack(player, target)
	if err != nil {
		return nil, fmt.Errorf("attack %s: %w", target, err)
	}

	log.Debug().
		Str("match", matchID).
		Int("player", int(player)).
		Int("row", target.Row).
		Int("col", target.Col).
		Str("outcome", record.Outcome.Code()).
		Msg("attack resolved")

	result := &AttackResult{
		Record:   record,
		Result:   record.Result(),
		State:    sess.Match.State(),
		GameOver: sess.Match.IsOver(),
		Winner:   sess.Match.Winner(),
		Events:   attackEvents(sess.Match, record),
	}
	if result.GameOver {
		log.Info().Str("match", matchID).Int("winner", int(result.Winner)).Msg("match finished")
	}
	return result, nil
}

func attackEvents(match *engine.Match, record *engine.AttackRecord) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      "attack",
		Message:   fmt.Sprintf("Player %d fired at %s: %s", record.Attacker, record.Target, record.Result()),
		Timestamp: now,
		Player:    record.Attacker,
	}}

	if record.Sunk != nil {
		events = append(events, GameEvent{
			Type:      "sunk",
			Message:   fmt.Sprintf("Player %d sank a %s, %d ships left", record.Attacker, *record.Sunk, record.DefenderRemaining),
			Timestamp: now,
			Player:    record.Attacker,
		})
	}

	if match.IsOver() {
		events = append(events, GameEvent{
			Type:      "victory",
			Message:   match.State().Message,
			Timestamp: now,
			Player:    match.Winner(),
		})
	}
	return events
}

// GetBoard returns player's private view of the match
func (s *gameServiceImpl) GetBoard(ctx context.Context, matchID string, player engine.PlayerID) (*BoardView, error) {
	sess, unlock, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	fleet, err := sess.Match.Fleet(player)
	if err != nil {
		return nil, err
	}
	board := fleet.Board()

	return &BoardView{
		MatchID:   sess.ID,
		Player:    player,
		Placement: board.Placement,
		Attack:    board.Attack,
		Ships:     fleet.Ships(),
		Remaining: fleet.Remaining(),
		Rendered:  board.RenderSideBySide(),
		State:     sess.Match.State(),
	}, nil
}

// GetHistory returns paginated attack history for a match
func (s *gameServiceImpl) GetHistory(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error) {
	sess, unlock, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	history := sess.Match.History()
	unlock()

	// Set defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "asc"
	}

	total := len(history)
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var attacks []engine.AttackRecord
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			attacks = append(attacks, history[i])
		}
	} else if start < total {
		attacks = history[start:end]
	}

	if attacks == nil {
		attacks = []engine.AttackRecord{}
	}

	return &HistoryResponse{
		Attacks:      attacks,
		TotalAttacks: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available match configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific match configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MatchConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a match configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MatchConfig) error {
	return s.configs.SaveConfig(configName, config)
}
