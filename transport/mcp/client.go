package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Battleship",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Battleship - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Sink all five enemy ships before the opponent sinks yours. Each player has a
10x10 grid; rows and columns are numbered 0-9.

AVAILABLE TOOLS:
- create_match: Start a new match
- list_matches / get_match: Inspect matches
- place_ship: Place one ship (carrier, battleship, cruiser, submarine, destroyer)
- auto_place: Place a whole fleet at random
- ready: Finish setup; the match starts when both players are ready
- attack: Fire at a cell of the opponent's grid - requires intent explanation
- view_board: Your own fleet and your shots so far
- match_history: The attack log
- list_configs: Available rule sets
- game_instructions: Full rules

NOTE: The 'intent' parameter on attack serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func matchIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Match ID",
	}
}

func playerProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"enum":        []int{1, 2},
		"description": "Player seat, 1 or 2",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Match management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_match",
		Description: "Create a new match with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use, e.g. classic (optional)",
				},
			},
		},
	}, c.handleCreateMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List all active matches",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"phase": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"setup", "active", "finished"},
					"description": "Only list matches in this phase (optional)",
				},
			},
		},
	}, c.handleListMatches)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_match",
		Description: "Get the public state of a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": matchIDProperty(),
			},
			Required: []string{"match_id"},
		},
	}, c.handleGetMatch)

	// Setup
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_ship",
		Description: "Place one ship. The anchor is the top-left cell; horizontal ships grow to the right, vertical ships grow down.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": matchIDProperty(),
				"player":   playerProperty(),
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"carrier", "battleship", "cruiser", "submarine", "destroyer"},
					"description": "Ship kind (lower case)",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Anchor row (0-9)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Anchor column (0-9)",
				},
				"orientation": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"horizontal", "vertical"},
					"description": "Direction the ship grows from the anchor",
				},
			},
			Required: []string{"match_id", "player", "kind", "row", "col", "orientation"},
		},
	}, c.handlePlaceShip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "auto_place",
		Description: "Place a complete fleet at random positions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": matchIDProperty(),
				"player":   playerProperty(),
			},
			Required: []string{"match_id", "player"},
		},
	}, c.handleAutoPlace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "ready",
		Description: "Declare setup finished. Requires all five ships placed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": matchIDProperty(),
				"player":   playerProperty(),
			},
			Required: []string{"match_id", "player"},
		},
	}, c.handleReady)

	// Combat
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "attack",
		Description: "Fire at a cell of the opponent's grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": matchIDProperty(),
				"player":   playerProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Target row (0-9)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Target column (0-9)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you chose this cell (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"match_id", "player", "row", "col"},
		},
	}, c.handleAttack)

	// Views
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "view_board",
		Description: "Show your own grid with ships and your target grid with shots fired",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": matchIDProperty(),
				"player":   playerProperty(),
			},
			Required: []string{"match_id", "player"},
		},
	}, c.handleViewBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_history",
		Description: "Get the attack log of a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": matchIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest or newest first",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleMatchHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available match configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get complete game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Argument helpers. JSON numbers arrive as float64.

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

func playerArg(args map[string]interface{}) (engine.PlayerID, error) {
	n, ok := intArg(args, "player")
	if !ok || !engine.PlayerID(n).Valid() {
		return 0, fmt.Errorf("player must be 1 or 2")
	}
	return engine.PlayerID(n), nil
}

func orientationArg(args map[string]interface{}) (engine.Orientation, error) {
	if n, ok := intArg(args, "orientation"); ok {
		return engine.Orientation(n), nil
	}
	switch s, _ := args["orientation"].(string); strings.ToLower(s) {
	case "horizontal", "h":
		return engine.Horizontal, nil
	case "vertical", "v":
		return engine.Vertical, nil
	default:
		return 0, fmt.Errorf("orientation must be horizontal or vertical")
	}
}

func matchArg(args map[string]interface{}) (string, error) {
	matchID, _ := args["match_id"].(string)
	if matchID == "" {
		return "", fmt.Errorf("match_id is required")
	}
	return url.PathEscape(matchID), nil
}

func playerPath(matchID string, player engine.PlayerID, action string) string {
	return fmt.Sprintf("/api/matches/%s/players/%d/%s", matchID, player, action)
}

// Tool handlers

func (c *Client) handleCreateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var match service.MatchInfo
	if err := c.apiCall(ctx, "POST", "/api/matches", body, &match); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created match: %s\nConfig: %s\n\n%s", match.ID, match.ConfigName, formatMatchState(match.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path := "/api/matches"
	if phase, _ := args["phase"].(string); phase != "" {
		path += "?phase=" + url.QueryEscape(phase)
	}

	var response struct {
		Count   int                 `json:"count"`
		Matches []service.MatchInfo `json:"matches"`
	}
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Matches (%d):\n\n", response.Count)
	for _, m := range response.Matches {
		phase := "unknown"
		if m.State != nil {
			phase = string(m.State.Phase)
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Phase: %s, Created: %s)\n",
			m.ID, m.ConfigName, phase, m.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	matchID, err := matchArg(arguments(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var match service.MatchInfo
	if err := c.apiCall(ctx, "GET", "/api/matches/"+matchID, nil, &match); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMatchInfo(&match)), nil
}

func (c *Client) handlePlaceShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	matchID, err := matchArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := playerArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	orientation, err := orientationArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, _ := args["kind"].(string)
	row, _ := intArg(args, "row")
	col, _ := intArg(args, "col")

	body := service.PlacementRequest{
		Kind:        kind,
		Row:         row,
		Col:         col,
		Orientation: int(orientation),
	}

	var result service.PlacementResult
	if err := c.apiCall(ctx, "POST", playerPath(matchID, player, "ships"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := fmt.Sprintf("✓ Placed %s at (%d,%d) %s", kind, row, col, orientation)
	return mcp.NewToolResultText(header + "\n" + formatPlacement(&result)), nil
}

func (c *Client) handleAutoPlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	matchID, err := matchArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := playerArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.PlacementResult
	if err := c.apiCall(ctx, "POST", playerPath(matchID, player, "auto-place"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("✓ Fleet placed at random\n" + formatPlacement(&result)), nil
}

func (c *Client) handleReady(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	matchID, err := matchArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := playerArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var match service.MatchInfo
	if err := c.apiCall(ctx, "POST", playerPath(matchID, player, "ready"), nil, &match); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("✓ Player %d is ready\n\n%s", player, formatMatchState(match.State))), nil
}

func (c *Client) handleAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	matchID, err := matchArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := playerArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_, _ = args["intent"].(string)

	var result service.AttackResult
	body := engine.Coordinate{Row: row, Col: col}
	if err := c.apiCall(ctx, "POST", playerPath(matchID, player, "attack"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatAttackResult(&result)), nil
}

func (c *Client) handleViewBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	matchID, err := matchArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := playerArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var board service.BoardView
	if err := c.apiCall(ctx, "GET", playerPath(matchID, player, "board"), nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoard(&board)), nil
}

func (c *Client) handleMatchHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	matchID, err := matchArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}

	path := "/api/matches/" + matchID + "/history"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		kinds := "one ship of each kind"
		if !config.UniqueKinds {
			kinds = "any five ships"
		}
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  First attacker: %s, Fleet: %s\n\n",
			config.Name, config.ConfigID, config.Description, config.FirstAttacker, kinds)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

const gameInstructions = `🎯 Battleship - Complete Instructions

GAME OBJECTIVE:
Sink all five of your opponent's ships before they sink yours.

THE GRID:
• Each player owns a 10x10 grid. Rows and columns are numbered 0 to 9.
• Coordinates are (row, col). (0,0) is the top-left corner.
• Your Self Grid shows your own ships and where the opponent has fired.
• Your Target Grid shows where you have fired and what you hit.

GRID LEGEND (each cell is a number):
• 0 - Empty water (never fired at)
• 1 - One of your ships
• 2 - A miss
• 3 - A hit

THE FLEET (kind names are lower case):
• carrier    - 5 cells
• battleship - 4 cells
• cruiser    - 3 cells
• submarine  - 3 cells
• destroyer  - 2 cells
The classic rules allow one ship of each kind. Some configs allow repeats,
but a fleet always holds exactly five ships.

SETUP PHASE:
1. create_match (or join an existing match ID)
2. place_ship for each ship, or auto_place for a random fleet
   - The anchor is the top-left cell of the ship
   - horizontal ships grow to the right, vertical ships grow down
   - Ships may not overlap or leave the grid
3. ready when all five ships are placed
The match starts when both players are ready. The config decides who
attacks first.

BATTLE PHASE:
• Players alternate. Only the current player may attack.
• Each attack reports one of:
  - "Miss!"
  - "Hit!"
  - "Enemy ship has been taken down!" (the last cell of a ship was hit)
• Firing outside the grid or at a cell you already fired at is rejected.
  A rejected shot does NOT use up your turn; just fire again.

VICTORY CONDITIONS:
• When a player's last ship sinks, the attacker wins and the match is over.

🤖 STRATEGY TIPS:
• Hunt with a checkerboard pattern: every ship covers at least two cells,
  so firing at cells where (row + col) is even finds every ship.
• After a hit, probe the four neighbours to find the ship's axis, then
  follow the line until you get "Enemy ship has been taken down!".
• Use view_board before each shot; the Target Grid is your memory.
• Use match_history to review every shot in order.

MATCH MANAGEMENT:
• Multiple matches can run at the same time.
• Each match has a unique 4-character ID.
• A player only ever sees their own ships.

Good luck, Admiral! ⚓`

// Formatters

func formatMatchInfo(match *service.MatchInfo) string {
	return fmt.Sprintf("Match: %s\nConfig: %s\nCreated: %s\n\n%s",
		match.ID, match.ConfigName, match.CreatedAt.Format(time.RFC3339), formatMatchState(match.State))
}

func formatMatchState(state *engine.MatchState) string {
	if state == nil {
		return "State: unavailable"
	}

	var b strings.Builder
	switch state.Phase {
	case engine.PhaseFinished:
		fmt.Fprintf(&b, "🏁 GAME OVER - Player %d wins!\n", state.Winner)
	case engine.PhaseActive:
		fmt.Fprintf(&b, "Phase: active - Player %d to attack\n", state.CurrentPlayer)
	default:
		fmt.Fprintf(&b, "Phase: %s\n", state.Phase)
	}

	for _, p := range state.Players {
		fmt.Fprintf(&b, "Player %d: ready=%t placed=%d remaining=%d shots=%d\n",
			p.ID, p.Ready, p.ShipsPlaced, p.ShipsRemaining, p.ShotsFired)
	}
	fmt.Fprintf(&b, "Total attacks: %d\n", state.TotalAttacks)
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}
	return b.String()
}

func formatPlacement(result *service.PlacementResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ships placed: %d/%d\n", result.ShipsPlaced, engine.NumShips)
	for _, ship := range result.Ships {
		fmt.Fprintf(&b, "- %s at %s %s\n", ship.Kind, ship.Anchor, ship.Orientation)
	}
	if result.Complete {
		b.WriteString("Fleet complete. Call ready when done.\n")
	}
	if result.Rendered != "" {
		b.WriteString("\n" + result.Rendered)
	}
	return b.String()
}

func formatAttackResult(result *service.AttackResult) string {
	var b strings.Builder
	if result.Record != nil {
		fmt.Fprintf(&b, "Attack #%d by Player %d at %s: %s\n",
			result.Record.Number, result.Record.Attacker, result.Record.Target, result.Result)
		if result.Record.Sunk != nil {
			fmt.Fprintf(&b, "💥 Sunk a %s! Opponent ships left: %d\n", *result.Record.Sunk, result.Record.DefenderRemaining)
		}
	} else {
		fmt.Fprintf(&b, "%s\n", result.Result)
	}
	if result.GameOver {
		fmt.Fprintf(&b, "🏁 GAME OVER - Player %d wins!\n", result.Winner)
	}
	return b.String()
}

func formatBoard(board *service.BoardView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match %s - Player %d - Ships remaining: %d\n\n", board.MatchID, board.Player, board.Remaining)
	b.WriteString(board.Rendered)
	if board.State != nil {
		b.WriteString("\n" + formatMatchState(board.State))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Attack History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalAttacks)

	if len(history.Attacks) == 0 {
		b.WriteString("(no attacks yet)\n")
	}
	for _, attack := range history.Attacks {
		fmt.Fprintf(&b, "%d. Player %d -> %s: %s", attack.Number, attack.Attacker, attack.Target, attack.Result())
		if attack.Sunk != nil {
			fmt.Fprintf(&b, " (%s)", *attack.Sunk)
		}
		b.WriteString("\n")
	}

	return b.String()
}
