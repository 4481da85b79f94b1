package types

import (
	"errors"
	"testing"
)

func TestBoardStateCount(t *testing.T) {
	b := BoardState{Board: [][]int{
		{0, 1, 0},
		{2, 1, 0},
		{0, 0, 2},
	}}
	if got := b.Count(Black); got != 2 {
		t.Errorf("Count(Black) = %d, want 2", got)
	}
	if got := b.Count(White); got != 2 {
		t.Errorf("Count(White) = %d, want 2", got)
	}
	if got := b.Count(Empty); got != 5 {
		t.Errorf("Count(Empty) = %d, want 5", got)
	}
}

func TestBoardStateClone(t *testing.T) {
	b := NewBoardState(3)
	b.Board[1][1] = Black

	c := b.Clone()
	c.Board[1][1] = White

	if b.At(1, 1) != Black {
		t.Errorf("original changed through clone: got %d, want %d", b.At(1, 1), Black)
	}
	if c.Width() != 3 || c.Height() != 3 {
		t.Errorf("clone size = %dx%d, want 3x3", c.Width(), c.Height())
	}
}

func TestSequenceValidate(t *testing.T) {
	tests := []struct {
		name  string
		seq   Sequence
		want  error
		index int
	}{
		{"empty", Sequence{}, ErrEmptySequence, -1},
		{"ok", Sequence{NewBoardState(5), NewBoardState(5)}, nil, -1},
		{"size mismatch", Sequence{NewBoardState(5), NewBoardState(4)}, ErrSizeMismatch, 1},
		{"not square", Sequence{{Board: [][]int{{0, 0}, {0}}}}, ErrNotSquare, 0},
		{"invalid cell", Sequence{NewBoardState(2), {Board: [][]int{{0, 3}, {0, 0}}}}, ErrInvalidCell, 1},
	}

	for _, tt := range tests {
		err := tt.seq.Validate()
		if tt.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
			continue
		}
		var seqErr *SequenceError
		if tt.index >= 0 {
			if !errors.As(err, &seqErr) {
				t.Errorf("%s: expected *SequenceError, got %T", tt.name, err)
			} else if seqErr.Index != tt.index {
				t.Errorf("%s: Index = %d, want %d", tt.name, seqErr.Index, tt.index)
			}
		}
	}
}

func TestFromBoardsRoundTrip(t *testing.T) {
	boards := [][][]int{{{0, 1}, {2, 0}}, {{1, 1}, {2, 0}}}
	seq := FromBoards(boards)
	if seq.Size() != 2 {
		t.Errorf("Size = %d, want 2", seq.Size())
	}
	if got := seq.Boards(); got[1][0][1] != 1 {
		t.Errorf("Boards()[1][0][1] = %d, want 1", got[1][0][1])
	}
}

func TestIsStarPoint(t *testing.T) {
	tests := []struct {
		row, col, size int
		want           bool
	}{
		{2, 2, 5, true},
		{1, 1, 5, false},
		{4, 4, 9, true},
		{3, 15, 19, true},
		{3, 3, 7, false},
	}
	for _, tt := range tests {
		if got := IsStarPoint(tt.row, tt.col, tt.size); got != tt.want {
			t.Errorf("IsStarPoint(%d, %d, %d) = %v, want %v", tt.row, tt.col, tt.size, got, tt.want)
		}
	}
}
