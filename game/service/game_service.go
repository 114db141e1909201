package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/battleship/game/engine"
)

// Errors shared by the storage packages so transports can match them with errors.Is
var (
	ErrSessionNotFound = errors.New("match not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// GameService defines all match-related operations
type GameService interface {
	// Match Management
	CreateMatch(ctx context.Context, configName string) (*MatchInfo, error)
	GetMatch(ctx context.Context, matchID string) (*MatchInfo, error)
	ListMatches(ctx context.Context) ([]*MatchInfo, error)
	DeleteMatch(ctx context.Context, matchID string) error

	// Setup
	PlaceShip(ctx context.Context, matchID string, player engine.PlayerID, req PlacementRequest) (*PlacementResult, error)
	AutoPlace(ctx context.Context, matchID string, player engine.PlayerID) (*PlacementResult, error)
	Ready(ctx context.Context, matchID string, player engine.PlayerID) (*MatchInfo, error)

	// Combat
	Attack(ctx context.Context, matchID string, player engine.PlayerID, target engine.Coordinate) (*AttackResult, error)

	// Views
	GetBoard(ctx context.Context, matchID string, player engine.PlayerID) (*BoardView, error)
	GetHistory(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.MatchConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.MatchConfig) error
}

// SessionManager defines match storage operations
type SessionManager interface {
	Create(id string, config *engine.MatchConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles match configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MatchConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.MatchConfig
	SaveConfig(name string, config *engine.MatchConfig) error
}

// Session is one running match and its bookkeeping
type Session struct {
	ID             string
	Match          *engine.Match
	Config         *engine.MatchConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// mu serializes every operation on Match
	mu       sync.Mutex
	accessMu sync.Mutex
}

// Touch records an access at the current time
func (s *Session) Touch() {
	s.accessMu.Lock()
	s.LastAccessedAt = time.Now()
	s.accessMu.Unlock()
}

// LastAccessed returns when the session was last used
func (s *Session) LastAccessed() time.Time {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	return s.LastAccessedAt
}
