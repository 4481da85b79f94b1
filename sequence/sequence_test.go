package sequence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsuji-replay/replay"
	"termsuji-replay/score"
	"termsuji-replay/types"
)

func TestDefault(t *testing.T) {
	seq := Default()
	require.NoError(t, seq.Validate())
	assert.Len(t, seq, 25)
	assert.Equal(t, 5, seq.Size())
	assert.Equal(t, 0, seq[0].Count(types.Black)+seq[0].Count(types.White))
	assert.Equal(t, types.Black, seq[1].At(2, 2))
	assert.Equal(t, types.White, seq[2].At(1, 2))
}

func TestDefaultScores(t *testing.T) {
	seq := Default()
	assert.Equal(t, score.Pair{Black: 0, White: 2.5}, score.Calculate(seq[0]))
	assert.Equal(t, score.Pair{Black: 5, White: 8.5}, score.Calculate(seq[12]))
	assert.Equal(t, score.Pair{Black: 10, White: 10.5}, score.Calculate(seq[24]))
}

type nopBoard struct{}

func (nopBoard) DrawBoard()                           {}
func (nopBoard) DrawStone(row, col, color, label int) {}
func (nopBoard) DisplayScores(score.Pair)             {}

func TestDefaultPlaysThrough(t *testing.T) {
	clock := replay.NewManualClock()
	var frames []replay.Frame
	a, err := replay.New(Default(), nopBoard{}, nopBoard{},
		replay.WithScheduler(clock),
		replay.WithObserver(func(f replay.Frame) { frames = append(frames, f) }),
	)
	require.NoError(t, err)
	require.NoError(t, a.Start())
	clock.Advance(24 * time.Second)

	require.Len(t, frames, 25)
	last := frames[24]
	assert.Equal(t, 25, last.NextStep)
	assert.Equal(t, [][]int{
		{22, 7, 0, 18, 0},
		{14, 4, 2, 5, 20},
		{0, 16, 1, 3, 13},
		{19, 24, 15, 0, 23},
		{0, 11, 0, 21, 0},
	}, last.Steps)
	// every frame after the first adds a stone
	for _, f := range frames[1:] {
		assert.True(t, f.NewStone, "frame %d", f.Index)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	seq := Default()
	for _, name := range []string{"game.yaml", "game.yml", "game.json", "game.sgf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, seq))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, seq.Boards(), got.Boards())
		})
	}
}

func TestLoadRejectsInvalidCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "frames:\n  - board: [[0, 3], [0, 0]]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := Load(path)
	require.ErrorIs(t, err, types.ErrInvalidCell)
	var seqErr *types.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, 0, seqErr.Index)
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"frames": []}`), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, types.ErrEmptySequence)
}

func TestUnknownFormat(t *testing.T) {
	_, err := Load("game.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Save(filepath.Join(t.TempDir(), "game.txt"), Default()), ErrUnknownFormat)
}

func TestParseSGF(t *testing.T) {
	seq, err := Parse([]byte("(;GM[1]FF[4]SZ[5];B[cc];W[cb])"), "sgf")
	require.NoError(t, err)
	require.Len(t, seq, 3)
	assert.Equal(t, types.Black, seq[1].At(2, 2))
	assert.Equal(t, types.White, seq[2].At(1, 2))
}

func TestFileKomiIsInformational(t *testing.T) {
	data := []byte("name: custom\nkomi: 6.5\nframes:\n  - board: [[1, 0], [0, 2]]\n")
	seq, err := Parse(data, "yaml")
	require.NoError(t, err)
	require.Len(t, seq, 1)
	assert.Equal(t, score.Pair{Black: 1, White: 1 + score.Komi}, score.Calculate(seq[0]))
}
