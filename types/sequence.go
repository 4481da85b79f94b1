package types

import (
	"errors"
	"fmt"
)

// Validation errors for board sequences.
var (
	// ErrEmptySequence indicates a sequence without any board state.
	ErrEmptySequence = errors.New("types: sequence has no board states")

	// ErrNotSquare indicates a board whose rows differ from its height.
	ErrNotSquare = errors.New("types: board is not square")

	// ErrSizeMismatch indicates a board whose size differs from the first board.
	ErrSizeMismatch = errors.New("types: board size differs from sequence size")

	// ErrInvalidCell indicates a cell value other than empty, black or white.
	ErrInvalidCell = errors.New("types: invalid cell value")
)

// SequenceError wraps a validation error with the offending frame.
type SequenceError struct {
	Index   int
	Wrapped error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("frame %d: %s", e.Index, e.Wrapped.Error())
}

func (e *SequenceError) Unwrap() error {
	return e.Wrapped
}

// Sequence is an ordered list of full board snapshots. Index 0 is the
// initial state.
type Sequence []BoardState

// Size returns the board size of the sequence, or 0 when it is empty.
func (s Sequence) Size() int {
	if len(s) == 0 {
		return 0
	}
	return s[0].Height()
}

// Validate checks that the sequence is non-empty and that every state is a
// square board of the same size holding only empty, black or white cells.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return ErrEmptySequence
	}
	size := s.Size()
	if size == 0 {
		return &SequenceError{Index: 0, Wrapped: ErrNotSquare}
	}
	for i := range s {
		b := &s[i]
		if b.Height() != size {
			return &SequenceError{Index: i, Wrapped: ErrSizeMismatch}
		}
		for _, row := range b.Board {
			if len(row) != size {
				return &SequenceError{Index: i, Wrapped: ErrNotSquare}
			}
			for _, c := range row {
				if c != Empty && c != Black && c != White {
					return &SequenceError{Index: i, Wrapped: fmt.Errorf("%w: %d", ErrInvalidCell, c)}
				}
			}
		}
	}
	return nil
}

// FromBoards builds a sequence from bare nested arrays.
func FromBoards(boards [][][]int) Sequence {
	seq := make(Sequence, len(boards))
	for i, b := range boards {
		seq[i] = BoardState{Board: b}
	}
	return seq
}

// Boards returns the sequence as bare nested arrays.
func (s Sequence) Boards() [][][]int {
	boards := make([][][]int, len(s))
	for i := range s {
		boards[i] = s[i].Board
	}
	return boards
}
