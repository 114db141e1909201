package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/service"
	"github.com/wricardo/battleship/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Match management
	api.HandleFunc("/matches", s.handleCreateMatch).Methods("POST")
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleDeleteMatch).Methods("DELETE")
	api.HandleFunc("/matches/{id}/history", s.handleGetHistory).Methods("GET")

	// Player operations
	player := api.PathPrefix("/matches/{id}/players/{player:[0-9]+}").Subrouter()
	player.HandleFunc("/ships", s.handlePlaceShip).Methods("POST")
	player.HandleFunc("/auto-place", s.handleAutoPlace).Methods("POST")
	player.HandleFunc("/ready", s.handleReady).Methods("POST")
	player.HandleFunc("/attack", s.handleAttack).Methods("POST")
	player.HandleFunc("/board", s.handleGetBoard).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the router so callers can mount extra handlers
func (s *Server) Router() *mux.Router {
	return s.router
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and engine errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	respondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrConfigNotFound):
		return http.StatusNotFound
	case engine.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrWrongPhase),
		errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrPlayerReady),
		errors.Is(err, engine.ErrFleetFull),
		errors.Is(err, engine.ErrFleetIncomplete),
		errors.Is(err, engine.ErrDuplicateKind),
		errors.Is(err, engine.ErrRandomPlacement):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// playerParam reads the {player} path variable
func playerParam(r *http.Request) (engine.PlayerID, error) {
	n, err := strconv.Atoi(mux.Vars(r)["player"])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", engine.ErrUnknownPlayer, mux.Vars(r)["player"])
	}
	player := engine.PlayerID(n)
	if !player.Valid() {
		return 0, fmt.Errorf("%w: %d", engine.ErrUnknownPlayer, n)
	}
	return player, nil
}

func (s *Server) broadcastState(matchID string, state *engine.MatchState) {
	if s.hub != nil && state != nil {
		s.hub.BroadcastState(matchID, state)
	}
}

// Match Handlers

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	match, err := s.service.CreateMatch(r.Context(), configID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcastState(match.ID, match.State)
	respondJSON(w, http.StatusCreated, match)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.service.ListMatches(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	phase := query.Get("phase")    // optional filter
	limitStr := query.Get("limit") // number of matches to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	total := len(matches)
	if phase != "" {
		filtered := matches[:0]
		for _, m := range matches {
			if m.State != nil && string(m.State.Phase) == phase {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	sort.Slice(matches, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = matches[i].CreatedAt, matches[j].CreatedAt
		} else {
			ti, tj = matches[i].LastAccessedAt, matches[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(matches) {
			matches = matches[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(matches),
		"total":   total,
		"matches": matches,
		"sort":    sortBy,
		"order":   order,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.service.GetMatch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, match)
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	if err := s.service.DeleteMatch(r.Context(), matchID); err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(matchID, websocket.EventDeleted, nil)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Match %s deleted", matchID),
	})
}

// Player Handlers

func (s *Server) handlePlaceShip(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]
	player, err := playerParam(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req service.PlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Kind == "" {
		respondError(w, http.StatusBadRequest, "Ship kind is required")
		return
	}

	result, err := s.service.PlaceShip(r.Context(), matchID, player, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcastState(matchID, result.State)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAutoPlace(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]
	player, err := playerParam(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	result, err := s.service.AutoPlace(r.Context(), matchID, player)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcastState(matchID, result.State)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]
	player, err := playerParam(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	match, err := s.service.Ready(r.Context(), matchID, player)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcastState(matchID, match.State)
	respondJSON(w, http.StatusOK, match)
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]
	player, err := playerParam(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var target engine.Coordinate
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Attack(r.Context(), matchID, player, target)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(matchID, websocket.EventAttack, result.Record)
		if result.GameOver {
			s.hub.BroadcastEvent(matchID, websocket.EventMatchOver, map[string]interface{}{
				"winner": result.Winner,
			})
		}
	}
	s.broadcastState(matchID, result.State)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	player, err := playerParam(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	board, err := s.service.GetBoard(r.Context(), mux.Vars(r)["id"], player)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, board)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetHistory(r.Context(), matchID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var matchConfig engine.MatchConfig

	if err := json.NewDecoder(r.Body).Decode(&matchConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := engine.ValidateMatchConfig(&matchConfig); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.SaveConfig(r.Context(), matchConfig.Name, &matchConfig); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": matchConfig.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match")
	if matchID == "" {
		http.Error(w, "match parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetMatch(r.Context(), matchID); err != nil {
		http.Error(w, "Invalid match", http.StatusNotFound)
		return
	}

	if s.hub == nil {
		http.Error(w, "Live updates disabled", http.StatusServiceUnavailable)
		return
	}

	s.hub.ServeWS(w, r, matchID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
