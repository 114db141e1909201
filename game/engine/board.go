package engine

import (
	"fmt"
	"strings"
)

// Layer selects one of the two grids held by a Board
type Layer int

const (
	// PlacementLayer holds the owner's ships and the hits taken on them.
	PlacementLayer Layer = iota
	// AttackLayer records the owner's shots at the opponent.
	AttackLayer
)

// Grid is a fixed 10x10 matrix of cell states, indexed [row][col]
type Grid [GridSize][GridSize]CellState

// At returns the state at c. c must be in bounds.
func (g *Grid) At(c Coordinate) CellState {
	return g[c.Row][c.Col]
}

// Set overwrites the state at c. c must be in bounds.
func (g *Grid) Set(c Coordinate, state CellState) {
	g[c.Row][c.Col] = state
}

// Count returns how many cells hold the given state
func (g *Grid) Count(state CellState) int {
	count := 0
	for _, row := range g {
		for _, cell := range row {
			if cell == state {
				count++
			}
		}
	}
	return count
}

// Render prints the grid as rows of 2-wide integer codes
func (g *Grid) Render() string {
	var b strings.Builder
	for row := 0; row < GridSize; row++ {
		writeRow(&b, g, row)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeRow(b *strings.Builder, g *Grid, row int) {
	for col := 0; col < GridSize; col++ {
		fmt.Fprintf(b, "%2d ", int(g[row][col]))
	}
}

// Board holds one player's placement and attack layers
type Board struct {
	Placement Grid `json:"placement"`
	Attack    Grid `json:"attack"`
}

// NewBoard returns a board with both layers empty
func NewBoard() *Board {
	return &Board{}
}

// Layer returns the grid for the requested layer
func (b *Board) Layer(layer Layer) *Grid {
	if layer == AttackLayer {
		return &b.Attack
	}
	return &b.Placement
}

// Render prints a single layer without a title
func (b *Board) Render(layer Layer) string {
	return b.Layer(layer).Render()
}

// RenderPlacement prints the placement layer under a "Self Grid:" title
func (b *Board) RenderPlacement() string {
	return "Self Grid:\n" + b.Placement.Render()
}

// RenderAttack prints the attack layer under a "Target Grid:" title
func (b *Board) RenderAttack() string {
	return "Target Grid:\n" + b.Attack.Render()
}

// RenderSideBySide prints both layers on shared rows under a header line
func (b *Board) RenderSideBySide() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "   Self Grid%39s\n", "Target Grid")
	for row := 0; row < GridSize; row++ {
		writeRow(&sb, &b.Placement, row)
		fmt.Fprintf(&sb, "%10s", "   ")
		writeRow(&sb, &b.Attack, row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
