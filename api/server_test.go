package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/wricardo/battleship/game/config"
	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/service"
	"github.com/wricardo/battleship/game/session"
	"github.com/wricardo/battleship/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Match Management
	CreateMatchFunc func(ctx context.Context, configName string) (*service.MatchInfo, error)
	GetMatchFunc    func(ctx context.Context, matchID string) (*service.MatchInfo, error)
	ListMatchesFunc func(ctx context.Context) ([]*service.MatchInfo, error)
	DeleteMatchFunc func(ctx context.Context, matchID string) error

	// Setup
	PlaceShipFunc func(ctx context.Context, matchID string, player engine.PlayerID, req service.PlacementRequest) (*service.PlacementResult, error)
	AutoPlaceFunc func(ctx context.Context, matchID string, player engine.PlayerID) (*service.PlacementResult, error)
	ReadyFunc     func(ctx context.Context, matchID string, player engine.PlayerID) (*service.MatchInfo, error)

	// Combat
	AttackFunc func(ctx context.Context, matchID string, player engine.PlayerID, target engine.Coordinate) (*service.AttackResult, error)

	// Views
	GetBoardFunc   func(ctx context.Context, matchID string, player engine.PlayerID) (*service.BoardView, error)
	GetHistoryFunc func(ctx context.Context, matchID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.MatchConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.MatchConfig) error
}

func (m *MockGameService) CreateMatch(ctx context.Context, configName string) (*service.MatchInfo, error) {
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(ctx, configName)
	}
	return &service.MatchInfo{
		ID:         "ab12",
		ConfigName: configName,
		CreatedAt:  time.Now(),
		State:      &engine.MatchState{Phase: engine.PhaseSetup},
	}, nil
}

func (m *MockGameService) GetMatch(ctx context.Context, matchID string) (*service.MatchInfo, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, matchID)
	}
	return &service.MatchInfo{
		ID:         matchID,
		ConfigName: "test-config",
		CreatedAt:  time.Now(),
		State:      &engine.MatchState{Phase: engine.PhaseSetup},
	}, nil
}

func (m *MockGameService) ListMatches(ctx context.Context) ([]*service.MatchInfo, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(ctx)
	}
	return []*service.MatchInfo{}, nil
}

func (m *MockGameService) DeleteMatch(ctx context.Context, matchID string) error {
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(ctx, matchID)
	}
	return nil
}

func (m *MockGameService) PlaceShip(ctx context.Context, matchID string, player engine.PlayerID, req service.PlacementRequest) (*service.PlacementResult, error) {
	if m.PlaceShipFunc != nil {
		return m.PlaceShipFunc(ctx, matchID, player, req)
	}
	return &service.PlacementResult{Player: player, ShipsPlaced: 1, State: &engine.MatchState{}}, nil
}

func (m *MockGameService) AutoPlace(ctx context.Context, matchID string, player engine.PlayerID) (*service.PlacementResult, error) {
	if m.AutoPlaceFunc != nil {
		return m.AutoPlaceFunc(ctx, matchID, player)
	}
	return &service.PlacementResult{Player: player, ShipsPlaced: engine.NumShips, Complete: true, State: &engine.MatchState{}}, nil
}

func (m *MockGameService) Ready(ctx context.Context, matchID string, player engine.PlayerID) (*service.MatchInfo, error) {
	if m.ReadyFunc != nil {
		return m.ReadyFunc(ctx, matchID, player)
	}
	return &service.MatchInfo{ID: matchID, State: &engine.MatchState{Phase: engine.PhaseSetup}}, nil
}

func (m *MockGameService) Attack(ctx context.Context, matchID string, player engine.PlayerID, target engine.Coordinate) (*service.AttackResult, error) {
	if m.AttackFunc != nil {
		return m.AttackFunc(ctx, matchID, player, target)
	}
	return &service.AttackResult{
		Record: &engine.AttackRecord{Attacker: player, Target: target, Outcome: engine.OutcomeMiss},
		Result: engine.OutcomeMiss.String(),
		State:  &engine.MatchState{Phase: engine.PhaseActive},
	}, nil
}

func (m *MockGameService) GetBoard(ctx context.Context, matchID string, player engine.PlayerID) (*service.BoardView, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, matchID, player)
	}
	return &service.BoardView{MatchID: matchID, Player: player}, nil
}

func (m *MockGameService) GetHistory(ctx context.Context, matchID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, matchID, opts)
	}
	return &service.HistoryResponse{
		Attacks:    []engine.AttackRecord{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.MatchConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	cfg := engine.DefaultMatchConfig()
	cfg.Name = configName
	return cfg, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.MatchConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService *MockGameService) *Server {
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(b)
	default:
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(t *testing.T, mockService *MockGameService, req *http.Request) *httptest.ResponseRecorder {
	server := setupTestServer(t, mockService)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	var resp map[string]string
	parseResponse(t, w, &resp)
	return resp["error"]
}

// Match Management Tests

func TestCreateMatch(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create match with default config",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateMatchFunc = func(ctx context.Context, configName string) (*service.MatchInfo, error) {
					if configName != "" {
						t.Errorf("Expected empty config name, got %s", configName)
					}
					return &service.MatchInfo{ID: "ab12", ConfigName: "default"}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.MatchInfo
				parseResponse(t, w, &resp)
				if resp.ID != "ab12" {
					t.Errorf("Expected match ID ab12, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Create match with config_id",
			requestBody: map[string]string{"config_id": "player1_first"},
			setupMock: func(m *MockGameService) {
				m.CreateMatchFunc = func(ctx context.Context, configName string) (*service.MatchInfo, error) {
					if configName != "player1_first" {
						t.Errorf("Expected config player1_first, got %s", configName)
					}
					return &service.MatchInfo{ID: "cd34", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Deprecated config_name still works",
			requestBody: map[string]string{"config_name": "relaxed"},
			setupMock: func(m *MockGameService) {
				m.CreateMatchFunc = func(ctx context.Context, configName string) (*service.MatchInfo, error) {
					if configName != "relaxed" {
						t.Errorf("Expected config relaxed, got %s", configName)
					}
					return &service.MatchInfo{ID: "ef56", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Unknown config",
			requestBody: map[string]string{"config_id": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateMatchFunc = func(ctx context.Context, configName string) (*service.MatchInfo, error) {
					return nil, fmt.Errorf("%w: 'nope'. Available configs: [classic]", service.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				if !strings.Contains(errorMessage(t, w), "Available configs") {
					t.Error("Expected available configs in error message")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			w := serve(t, mockService, makeRequest("POST", "/api/matches", tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListMatches(t *testing.T) {
	now := time.Now()
	matches := func() []*service.MatchInfo {
		return []*service.MatchInfo{
			{ID: "aaaa", CreatedAt: now.Add(-3 * time.Hour), LastAccessedAt: now.Add(-1 * time.Minute), State: &engine.MatchState{Phase: engine.PhaseSetup}},
			{ID: "bbbb", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-3 * time.Minute), State: &engine.MatchState{Phase: engine.PhaseActive}},
			{ID: "cccc", CreatedAt: now.Add(-1 * time.Hour), LastAccessedAt: now.Add(-2 * time.Minute), State: &engine.MatchState{Phase: engine.PhaseActive}},
		}
	}

	tests := []struct {
		name        string
		query       string
		expectedIDs []string
		total       int
	}{
		{"Default sort by last access", "", []string{"aaaa", "cccc", "bbbb"}, 3},
		{"Sort by creation ascending", "?sort=created&order=asc", []string{"aaaa", "bbbb", "cccc"}, 3},
		{"Limit", "?sort=created&order=desc&limit=2", []string{"cccc", "bbbb"}, 3},
		{"Filter by phase", "?phase=active&sort=created&order=asc", []string{"bbbb", "cccc"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{
				ListMatchesFunc: func(ctx context.Context) ([]*service.MatchInfo, error) {
					return matches(), nil
				},
			}

			w := serve(t, mockService, makeRequest("GET", "/api/matches"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var resp struct {
				Count   int                  `json:"count"`
				Total   int                  `json:"total"`
				Matches []*service.MatchInfo `json:"matches"`
			}
			parseResponse(t, w, &resp)

			if resp.Total != tt.total {
				t.Errorf("Expected total %d, got %d", tt.total, resp.Total)
			}
			if resp.Count != len(tt.expectedIDs) {
				t.Fatalf("Expected %d matches, got %d", len(tt.expectedIDs), resp.Count)
			}
			for i, id := range tt.expectedIDs {
				if resp.Matches[i].ID != id {
					t.Errorf("Position %d: expected %s, got %s", i, id, resp.Matches[i].ID)
				}
			}
		})
	}
}

func TestGetMatch(t *testing.T) {
	t.Run("Existing match", func(t *testing.T) {
		w := serve(t, &MockGameService{}, makeRequest("GET", "/api/matches/ab12", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var resp service.MatchInfo
		parseResponse(t, w, &resp)
		if resp.ID != "ab12" {
			t.Errorf("Expected match ab12, got %s", resp.ID)
		}
	})

	t.Run("Unknown match", func(t *testing.T) {
		mockService := &MockGameService{
			GetMatchFunc: func(ctx context.Context, matchID string) (*service.MatchInfo, error) {
				return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, matchID)
			},
		}
		w := serve(t, mockService, makeRequest("GET", "/api/matches/zzzz", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestDeleteMatch(t *testing.T) {
	var deleted string
	mockService := &MockGameService{
		DeleteMatchFunc: func(ctx context.Context, matchID string) error {
			if matchID == "gone" {
				return service.ErrSessionNotFound
			}
			deleted = matchID
			return nil
		},
	}

	w := serve(t, mockService, makeRequest("DELETE", "/api/matches/ab12", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if deleted != "ab12" {
		t.Errorf("Expected ab12 to be deleted, got %q", deleted)
	}

	w = serve(t, mockService, makeRequest("DELETE", "/api/matches/gone", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// Player Operation Tests

func TestPlaceShip(t *testing.T) {
	tests := []struct {
		name           string
		player         string
		requestBody    interface{}
		serviceErr     error
		expectedStatus int
	}{
		{"Valid placement", "1", service.PlacementRequest{Kind: "carrier", Row: 4, Col: 4}, nil, http.StatusOK},
		{"Invalid body", "1", "{not json", nil, http.StatusBadRequest},
		{"Missing kind", "1", service.PlacementRequest{Row: 1}, nil, http.StatusBadRequest},
		{"Unknown player", "3", service.PlacementRequest{Kind: "carrier"}, nil, http.StatusBadRequest},
		{"Blocked", "1", service.PlacementRequest{Kind: "carrier", Row: 9, Col: 9}, engine.ErrPlacementBlocked, http.StatusBadRequest},
		{"Unknown kind", "2", service.PlacementRequest{Kind: "canoe"}, engine.ErrUnknownShipKind, http.StatusBadRequest},
		{"Fleet full", "1", service.PlacementRequest{Kind: "submarine"}, engine.ErrFleetFull, http.StatusConflict},
		{"Duplicate kind", "1", service.PlacementRequest{Kind: "submarine"}, engine.ErrDuplicateKind, http.StatusConflict},
		{"Wrong phase", "2", service.PlacementRequest{Kind: "carrier"}, engine.ErrWrongPhase, http.StatusConflict},
		{"Unexpected failure", "2", service.PlacementRequest{Kind: "carrier"}, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mockService := &MockGameService{
				PlaceShipFunc: func(ctx context.Context, matchID string, player engine.PlayerID, req service.PlacementRequest) (*service.PlacementResult, error) {
					called = true
					if matchID != "ab12" {
						t.Errorf("Expected match ab12, got %s", matchID)
					}
					if tt.serviceErr != nil {
						return nil, fmt.Errorf("place %s: %w", req.Kind, tt.serviceErr)
					}
					return &service.PlacementResult{Player: player, ShipsPlaced: 1, State: &engine.MatchState{}}, nil
				},
			}

			path := "/api/matches/ab12/players/" + tt.player + "/ships"
			w := serve(t, mockService, makeRequest("POST", path, tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var resp service.PlacementResult
				parseResponse(t, w, &resp)
				if resp.ShipsPlaced != 1 {
					t.Errorf("Expected 1 ship placed, got %d", resp.ShipsPlaced)
				}
			}
			if tt.player == "3" && called {
				t.Error("Service must not be called for an unknown player")
			}
		})
	}
}

func TestAutoPlace(t *testing.T) {
	var gotPlayer engine.PlayerID
	mockService := &MockGameService{
		AutoPlaceFunc: func(ctx context.Context, matchID string, player engine.PlayerID) (*service.PlacementResult, error) {
			gotPlayer = player
			return &service.PlacementResult{Player: player, ShipsPlaced: engine.NumShips, Complete: true, State: &engine.MatchState{}}, nil
		},
	}

	w := serve(t, mockService, makeRequest("POST", "/api/matches/ab12/players/2/auto-place", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if gotPlayer != engine.Player2 {
		t.Errorf("Expected player 2, got %d", gotPlayer)
	}

	var resp service.PlacementResult
	parseResponse(t, w, &resp)
	if !resp.Complete {
		t.Error("Expected complete fleet")
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{"Ready", nil, http.StatusOK},
		{"Incomplete fleet", engine.ErrFleetIncomplete, http.StatusConflict},
		{"Already ready", engine.ErrPlayerReady, http.StatusConflict},
		{"Unknown match", service.ErrSessionNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{
				ReadyFunc: func(ctx context.Context, matchID string, player engine.PlayerID) (*service.MatchInfo, error) {
					if tt.serviceErr != nil {
						return nil, fmt.Errorf("ready: %w", tt.serviceErr)
					}
					return &service.MatchInfo{ID: matchID, State: &engine.MatchState{Phase: engine.PhaseSetup}}, nil
				},
			}

			w := serve(t, mockService, makeRequest("POST", "/api/matches/ab12/players/1/ready", nil))
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestAttack(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		serviceErr     error
		expectedStatus int
	}{
		{"Hit", engine.Coordinate{Row: 4, Col: 6}, nil, http.StatusOK},
		{"Invalid body", "[]", nil, http.StatusBadRequest},
		{"Out of bounds", engine.Coordinate{Row: 10, Col: 0}, engine.ErrOutOfBounds, http.StatusBadRequest},
		{"Already attacked", engine.Coordinate{Row: 4, Col: 6}, engine.ErrAlreadyAttacked, http.StatusBadRequest},
		{"Not your turn", engine.Coordinate{Row: 1, Col: 1}, engine.ErrNotYourTurn, http.StatusConflict},
		{"Setup phase", engine.Coordinate{Row: 1, Col: 1}, engine.ErrWrongPhase, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{
				AttackFunc: func(ctx context.Context, matchID string, player engine.PlayerID, target engine.Coordinate) (*service.AttackResult, error) {
					if tt.serviceErr != nil {
						return nil, fmt.Errorf("attack %s: %w", target, tt.serviceErr)
					}
					if target != (engine.Coordinate{Row: 4, Col: 6}) {
						t.Errorf("Expected target (4,6), got %s", target)
					}
					return &service.AttackResult{
						Record: &engine.AttackRecord{Attacker: player, Target: target, Outcome: engine.OutcomeHit},
						Result: engine.OutcomeHit.String(),
						State:  &engine.MatchState{Phase: engine.PhaseActive},
					}, nil
				},
			}

			w := serve(t, mockService, makeRequest("POST", "/api/matches/ab12/players/1/attack", tt.requestBody))
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var resp service.AttackResult
				parseResponse(t, w, &resp)
				if resp.Result != "Hit!" {
					t.Errorf("Expected result Hit!, got %s", resp.Result)
				}
			}
		})
	}
}

func TestGetBoard(t *testing.T) {
	mockService := &MockGameService{
		GetBoardFunc: func(ctx context.Context, matchID string, player engine.PlayerID) (*service.BoardView, error) {
			return &service.BoardView{MatchID: matchID, Player: player, Remaining: 5, Rendered: "Self Grid"}, nil
		},
	}

	w := serve(t, mockService, makeRequest("GET", "/api/matches/ab12/players/1/board", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp service.BoardView
	parseResponse(t, w, &resp)
	if resp.Player != engine.Player1 || resp.Remaining != 5 {
		t.Errorf("Unexpected board view: %+v", resp)
	}

	w = serve(t, mockService, makeRequest("GET", "/api/matches/ab12/players/0/board", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for player 0, got %d", w.Code)
	}
}

func TestGetHistory(t *testing.T) {
	tests := []struct {
		name         string
		queryParams  string
		expectedOpts service.HistoryOptions
	}{
		{"Default pagination", "", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"Custom pagination parameters", "?page=2&limit=10&order=asc", service.HistoryOptions{Page: 2, Limit: 10, Order: "asc"}},
		{"Invalid values fall back", "?page=-1&limit=abc&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{
				GetHistoryFunc: func(ctx context.Context, matchID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
					if opts != tt.expectedOpts {
						t.Errorf("Expected options %+v, got %+v", tt.expectedOpts, opts)
					}
					return &service.HistoryResponse{
						Attacks:      []engine.AttackRecord{{Number: 1, Attacker: engine.Player1}},
						TotalAttacks: 1,
						Page:         opts.Page,
						PageSize:     opts.Limit,
						TotalPages:   1,
					}, nil
				},
			}

			w := serve(t, mockService, makeRequest("GET", "/api/matches/ab12/history"+tt.queryParams, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var resp service.HistoryResponse
			parseResponse(t, w, &resp)
			if resp.PageSize != tt.expectedOpts.Limit {
				t.Errorf("Expected page size %d, got %d", tt.expectedOpts.Limit, resp.PageSize)
			}
		})
	}
}

// Configuration Tests

func TestListConfigs(t *testing.T) {
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{
				{Filename: "classic.json", ConfigID: "classic", Name: "classic", FirstAttacker: "random", UniqueKinds: true},
				{Filename: "relaxed.json", ConfigID: "relaxed", Name: "relaxed", FirstAttacker: "random"},
			}, nil
		},
	}

	w := serve(t, mockService, makeRequest("GET", "/api/configs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp []*service.ConfigInfo
	parseResponse(t, w, &resp)
	if len(resp) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(resp))
	}
	if resp[1].UniqueKinds {
		t.Error("Expected relaxed config to allow repeated kinds")
	}
}

func TestGetConfig(t *testing.T) {
	mockService := &MockGameService{
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.MatchConfig, error) {
			if configName != "classic" {
				return nil, fmt.Errorf("%w: %s", service.ErrConfigNotFound, configName)
			}
			return engine.DefaultMatchConfig(), nil
		},
	}

	w := serve(t, mockService, makeRequest("GET", "/api/configs/classic.json", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	w = serve(t, mockService, makeRequest("GET", "/api/configs/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestCreateConfig(t *testing.T) {
	var saved string
	mockService := &MockGameService{
		SaveConfigFunc: func(ctx context.Context, configName string, config *engine.MatchConfig) error {
			saved = configName
			return nil
		},
	}

	valid := engine.DefaultMatchConfig()
	valid.Name = "house"
	w := serve(t, mockService, makeRequest("POST", "/api/configs", valid))
	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if saved != "house" {
		t.Errorf("Expected config 'house' to be saved, got %q", saved)
	}

	invalid := engine.DefaultMatchConfig()
	invalid.FirstAttacker = "whoever"
	w = serve(t, mockService, makeRequest("POST", "/api/configs", invalid))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	for _, path := range []string{"/health", "/api/health"} {
		w := serve(t, &MockGameService{}, makeRequest("GET", path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("x: %w", service.ErrSessionNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", service.ErrConfigNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", engine.ErrAnchorOutOfBounds), http.StatusBadRequest},
		{fmt.Errorf("x: %w", engine.ErrInvalidOrientation), http.StatusBadRequest},
		{fmt.Errorf("x: %w", engine.ErrUnknownPlayer), http.StatusBadRequest},
		{fmt.Errorf("x: %w", engine.ErrNotYourTurn), http.StatusConflict},
		{fmt.Errorf("x: %w", engine.ErrRandomPlacement), http.StatusConflict},
		{fmt.Errorf("x: %w", engine.ErrInconsistentBoard), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.status {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}

func TestWebSocket(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name:           "Missing match parameter",
			queryParams:    "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid match",
			queryParams: "?match=invalid",
			setupMock: func(m *MockGameService) {
				m.GetMatchFunc = func(ctx context.Context, matchID string) (*service.MatchInfo, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Valid match",
			queryParams:    "?match=ab12",
			expectedStatus: http.StatusSwitchingProtocols,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			req := httptest.NewRequest("GET", "/ws"+tt.queryParams, nil)
			if tt.expectedStatus == http.StatusSwitchingProtocols {
				req.Header.Set("Upgrade", "websocket")
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
				req.Header.Set("Sec-WebSocket-Version", "13")
			}

			w := serve(t, mockService, req)

			// httptest.ResponseRecorder is not a Hijacker, so a real upgrade
			// surfaces as a 500 from the upgrader.
			if tt.expectedStatus == http.StatusSwitchingProtocols && w.Code == http.StatusInternalServerError {
				return
			}

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

// End-to-end: real service, real hub, real websocket client

func postJSON(t *testing.T, url string, body interface{}, target interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if target != nil {
		json.NewDecoder(resp.Body).Decode(target)
	}
	return resp.StatusCode
}

func TestMatchOverHTTPAndWebSocket(t *testing.T) {
	configMgr, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configMgr)

	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	ts := httptest.NewServer(NewServer(svc, hub))
	defer ts.Close()

	var match service.MatchInfo
	if status := postJSON(t, ts.URL+"/api/matches", nil, &match); status != http.StatusCreated {
		t.Fatalf("Create match returned %d", status)
	}
	base := ts.URL + "/api/matches/" + match.ID

	for _, p := range []string{"1", "2"} {
		if status := postJSON(t, base+"/players/"+p+"/auto-place", nil, nil); status != http.StatusOK {
			t.Fatalf("Auto place for player %s returned %d", p, status)
		}
	}

	// Attacking during setup is a conflict
	if status := postJSON(t, base+"/players/1/attack", engine.Coordinate{Row: 0, Col: 0}, nil); status != http.StatusConflict {
		t.Errorf("Expected 409 during setup, got %d", status)
	}

	postJSON(t, base+"/players/1/ready", nil, nil)
	var started service.MatchInfo
	if status := postJSON(t, base+"/players/2/ready", nil, &started); status != http.StatusOK {
		t.Fatalf("Ready returned %d", status)
	}
	if started.State.Phase != engine.PhaseActive {
		t.Fatalf("Expected active phase, got %s", started.State.Phase)
	}
	attacker := started.State.CurrentPlayer
	defender := attacker.Opponent()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?match=" + match.ID
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(match.ID) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	// The defender may not shoot out of turn
	if status := postJSON(t, fmt.Sprintf("%s/players/%d/attack", base, defender), engine.Coordinate{Row: 0, Col: 0}, nil); status != http.StatusConflict {
		t.Errorf("Expected 409 out of turn, got %d", status)
	}

	var result service.AttackResult
	if status := postJSON(t, fmt.Sprintf("%s/players/%d/attack", base, attacker), engine.Coordinate{Row: 0, Col: 0}, &result); status != http.StatusOK {
		t.Fatalf("Attack returned %d", status)
	}
	if result.Result != "Hit!" && result.Result != "Miss!" {
		t.Errorf("Unexpected attack result %q", result.Result)
	}

	// The turn has passed; a bad shot by the defender is rejected without using it
	if status := postJSON(t, fmt.Sprintf("%s/players/%d/attack", base, defender), engine.Coordinate{Row: 10, Col: 0}, nil); status != http.StatusBadRequest {
		t.Errorf("Expected 400 for out of bounds, got %d", status)
	}

	sawAttack := false
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for !sawAttack {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Failed to read WebSocket message: %v", err)
		}
		if strings.Contains(string(data), `"placement"`) {
			t.Error("WebSocket message leaked a ship layout")
		}
		var message websocket.Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.MatchID != match.ID {
			t.Errorf("Expected match %s, got %s", match.ID, message.MatchID)
		}
		sawAttack = message.Event == websocket.EventAttack
	}

	resp, err := http.Get(fmt.Sprintf("%s/players/%d/board", base, attacker))
	if err != nil {
		t.Fatalf("GET board failed: %v", err)
	}
	defer resp.Body.Close()
	var board service.BoardView
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		t.Fatalf("Failed to decode board: %v", err)
	}
	if len(board.Ships) != engine.NumShips {
		t.Errorf("Expected %d own ships, got %d", engine.NumShips, len(board.Ships))
	}
	if board.Attack.At(engine.Coordinate{Row: 0, Col: 0}) == engine.Empty {
		t.Error("Expected attack layer to record the shot at (0,0)")
	}
}
