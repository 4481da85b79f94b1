// Package gtp provides a GTP (Go Text Protocol) sequence generator backed by GnuGo.
package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"termsuji-replay/types"
)

// GTP coordinate system:
// - Columns: A-T (skipping I to avoid confusion with 1)
// - Rows: 1-19 (from bottom of board)
// - Example: D4, Q16, K10
//
// Board coordinate system:
// - X: column, 0 at the left
// - Y: row, 0 at the top
// - Example: (2, 2) for C3 on a 5x5 board

// gtpToPos converts GTP notation to board coordinates.
// For a 5x5 board: A1 -> (0, 4), C3 -> (2, 2), E5 -> (4, 0)
// Returns (-1, -1) for "pass" and (-2, -2) for "resign".
func gtpToPos(vertex string, size int) (int, int, error) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))

	switch vertex {
	case "PASS":
		return -1, -1, nil
	case "RESIGN":
		return -2, -2, nil
	}

	if len(vertex) < 2 {
		return 0, 0, fmt.Errorf("invalid vertex: %s", vertex)
	}

	// Parse column (A-T, no I)
	col := int(vertex[0]) - 'A'
	if col < 0 || col > 19 || vertex[0] == 'I' {
		return 0, 0, fmt.Errorf("invalid column in vertex: %s", vertex)
	}
	if col > 7 {
		col-- // Account for skipped 'I'
	}

	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row in vertex: %s", vertex)
	}

	// Convert row to Y coordinate (invert from bottom-up to top-down)
	y := size - row

	if col >= size || y < 0 || y >= size {
		return 0, 0, fmt.Errorf("vertex out of bounds: %s", vertex)
	}

	return col, y, nil
}

// colorToGTP converts a color to the GTP color string.
func colorToGTP(color int) string {
	if color == types.Black {
		return "black"
	}
	return "white"
}

// oppositeColor returns the opposite color.
func oppositeColor(color int) int {
	if color == types.Black {
		return types.White
	}
	return types.Black
}
