package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsuji-replay/types"
)

func TestCalculateEmptyBoard(t *testing.T) {
	p := Calculate(types.NewBoardState(5))
	assert.Equal(t, Pair{Black: 0, White: 2.5}, p)
}

func TestCalculateOneEach(t *testing.T) {
	b := types.NewBoardState(5)
	b.Board[2][2] = types.Black
	b.Board[1][2] = types.White

	assert.Equal(t, Pair{Black: 1, White: 3.5}, Calculate(b))
}

func TestCalculateMatchesCellCounts(t *testing.T) {
	boards := [][][]int{
		{{0, 1, 0, 2, 0}, {2, 2, 2, 1, 2}, {0, 2, 1, 1, 1}, {1, 0, 1, 2, 0}, {0, 1, 2, 0, 2}},
		{{1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}},
		{{2, 0}, {0, 2}},
	}
	for i, board := range boards {
		b := types.BoardState{Board: board}
		p := Calculate(b)
		assert.Equal(t, float64(b.Count(types.Black)), p.Black, "board %d black", i)
		assert.Equal(t, float64(b.Count(types.White))+2.5, p.White, "board %d white", i)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	b := types.BoardState{Board: [][]int{
		{0, 1, 0, 2, 1},
		{2, 2, 2, 1, 0},
		{0, 2, 1, 1, 1},
		{1, 0, 1, 2, 0},
		{0, 1, 0, 1, 2},
	}}
	before := b.Clone()

	first := Calculate(b)
	second := Calculate(b)

	require.Equal(t, first, second)
	assert.Equal(t, before.Board, b.Board, "input board was mutated")
}

func TestLines(t *testing.T) {
	lines := Lines(Pair{Black: 9, White: 10.5})
	assert.Equal(t, "Black: 9.0", lines[0])
	assert.Equal(t, "White: 10.5", lines[1])

	lines = Lines(Calculate(types.NewBoardState(5)))
	assert.Equal(t, [2]string{"Black: 0.0", "White: 2.5"}, lines)
}
