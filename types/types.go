// Package types contains shared data structures for termsuji-replay.
package types

// Cell values stored in BoardState.Board.
const (
	Empty = 0
	Black = 1
	White = 2
)

// BoardState is one full snapshot of a Go board.
// Board is indexed as Board[row][col] where 0=empty, 1=black, 2=white.
type BoardState struct {
	Board [][]int `json:"board"`
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// At returns the cell value at row, col.
func (b *BoardState) At(row, col int) int {
	return b.Board[row][col]
}

// Count returns how many cells hold the given value.
func (b *BoardState) Count(cell int) int {
	n := 0
	for _, row := range b.Board {
		for _, c := range row {
			if c == cell {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *BoardState) Clone() BoardState {
	board := make([][]int, len(b.Board))
	for i := range b.Board {
		board[i] = make([]int, len(b.Board[i]))
		copy(board[i], b.Board[i])
	}
	return BoardState{Board: board}
}

// NewBoardState creates a new empty board of the given size.
func NewBoardState(size int) BoardState {
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}
	return BoardState{Board: board}
}

// IsStarPoint checks if a position is a hoshi (star point) on a board of the
// given size.
func IsStarPoint(row, col, size int) bool {
	var hoshiPositions [][2]int

	switch size {
	case 5:
		hoshiPositions = [][2]int{{2, 2}}
	case 9:
		hoshiPositions = [][2]int{
			{2, 2}, {2, 6},
			{4, 4},
			{6, 2}, {6, 6},
		}
	case 13:
		hoshiPositions = [][2]int{
			{3, 3}, {3, 9},
			{6, 6},
			{9, 3}, {9, 9},
		}
	case 19:
		hoshiPositions = [][2]int{
			{3, 3}, {3, 9}, {3, 15},
			{9, 3}, {9, 9}, {9, 15},
			{15, 3}, {15, 9}, {15, 15},
		}
	default:
		return false
	}

	for _, pos := range hoshiPositions {
		if row == pos[0] && col == pos[1] {
			return true
		}
	}
	return false
}
