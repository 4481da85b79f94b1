// Package score computes the simple stone-count score shown next to the board.
package score

import (
	"fmt"

	"termsuji-replay/types"
)

// Komi is the fixed compensation added to white's count.
const Komi = 2.5

// Pair holds the displayed totals for both players.
type Pair struct {
	Black float64
	White float64
}

// Calculate counts black and white stones on the board and adds Komi to
// white. The board is only read.
func Calculate(b types.BoardState) Pair {
	var p Pair
	for _, row := range b.Board {
		for _, cell := range row {
			switch cell {
			case types.Black:
				p.Black++
			case types.White:
				p.White++
			}
		}
	}
	p.White += Komi
	return p
}

// Lines returns the two score panel lines, one decimal place each.
func Lines(p Pair) [2]string {
	return [2]string{
		fmt.Sprintf("Black: %.1f", p.Black),
		fmt.Sprintf("White: %.1f", p.White),
	}
}
