package render

import (
	"bytes"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"termsuji-replay/config"
	"termsuji-replay/replay"
	"termsuji-replay/score"
	"termsuji-replay/types"
)

func rgb(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func isBackground(img image.Image, x, y int) bool {
	r, g, b := rgb(img, x, y)
	return r == 0xDC && g == 0xB5 && b == 0x79
}

func TestGeometry(t *testing.T) {
	g := NewGeometry(400, 400, 5)
	assert.InDelta(t, 40, g.Border, 1e-9)
	assert.InDelta(t, 80, g.Cell, 1e-9)
	assert.InDelta(t, 38, g.StoneRadius(), 1e-9)

	x, y := g.Point(2, 2)
	assert.Equal(t, [2]float64{200, 200}, [2]float64{x, y})
	x, y = g.Point(0, 4)
	assert.Equal(t, [2]float64{360, 40}, [2]float64{x, y})
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("#DCB579")
	require.NoError(t, err)
	r, g, b, _ := c.RGBA()
	assert.Equal(t, []uint32{0xDC, 0xB5, 0x79}, []uint32{r >> 8, g >> 8, b >> 8})

	c, err = parseHex("#ccc")
	require.NoError(t, err)
	r, _, _, _ = c.RGBA()
	assert.Equal(t, uint32(0xCC), r>>8)

	_, err = parseHex("#12345")
	assert.Error(t, err)
	_, err = parseHex("#zzzzzz")
	assert.Error(t, err)
}

func newBoard(t *testing.T) *BoardCanvas {
	t.Helper()
	c, err := NewBoardCanvas(config.DefaultRaster, 5)
	require.NoError(t, err)
	return c
}

func TestDrawBoard(t *testing.T) {
	c := newBoard(t)
	c.DrawBoard()
	img := c.Image()

	assert.Equal(t, image.Rect(0, 0, 400, 400), img.Bounds())
	assert.True(t, isBackground(img, 5, 5), "corner")
	assert.True(t, isBackground(img, 80, 80), "inside a cell")

	// star point at the centre intersection
	r, g, b := rgb(img, 200, 200)
	assert.Less(t, int(r)+int(g)+int(b), 0x60)
	// grid line through the top edge
	assert.False(t, isBackground(img, 120, 40))
}

func TestDrawBoardRepaintsFromScratch(t *testing.T) {
	c := newBoard(t)
	c.DrawBoard()
	c.DrawStone(1, 1, types.Black, 1)
	c.DrawBoard()

	fresh := newBoard(t)
	fresh.DrawBoard()
	assert.Equal(t, fresh.Image(), c.Image())
}

func TestDrawStoneColours(t *testing.T) {
	c := newBoard(t)
	c.DrawBoard()
	c.DrawStone(1, 1, types.Black, replay.NoStep)
	c.DrawStone(3, 3, types.White, replay.NoStep)
	img := c.Image()

	// (1,1) is centred at (120,120); sample away from the grid lines
	r, _, _ := rgb(img, 140, 135)
	assert.Less(t, r, uint8(0x70), "black stone")
	r, _, _ = rgb(img, 300, 295)
	assert.Greater(t, r, uint8(0xC0), "white stone")
	assert.True(t, isBackground(img, 120+45, 120+20), "outside the stone")
}

func TestDrawStoneLabel(t *testing.T) {
	plain := newBoard(t)
	plain.DrawBoard()
	plain.DrawStone(2, 2, types.White, replay.NoStep)

	labelled := newBoard(t)
	labelled.DrawBoard()
	labelled.DrawStone(2, 2, types.White, 7)

	assert.NotEqual(t, plain.Image(), labelled.Image())
}

func TestDisplayScores(t *testing.T) {
	c, err := NewScoreCanvas(config.DefaultRaster)
	require.NoError(t, err)
	c.DisplayScores(score.Pair{Black: 3, White: 4.5})
	img := c.Image()

	assert.Equal(t, image.Rect(0, 0, 200, 150), img.Bounds())
	dark := func(y0, y1 int) int {
		n := 0
		for y := y0; y < y1; y++ {
			for x := 0; x < 200; x++ {
				if r, _, _ := rgb(img, x, y); r < 0x60 {
					n++
				}
			}
		}
		return n
	}
	assert.Zero(t, dark(0, 55), "nothing above the first line")
	assert.Positive(t, dark(60, 82), "black score line")
	assert.Positive(t, dark(100, 122), "white score line")
}

func TestExportRecordsOnePass(t *testing.T) {
	seq := types.FromBoards([][][]int{
		{{0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}},
		{{0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 1, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}},
		{{0, 0, 0, 0, 0}, {0, 0, 2, 0, 0}, {0, 0, 1, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}},
	})
	rec, err := Export(seq, config.DefaultRaster, 500*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, err)

	frames := rec.Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, image.Rect(0, 0, 600, 400), frames[0].Bounds())
	assert.NotEqual(t, frames[0], frames[1])

	var buf bytes.Buffer
	require.NoError(t, rec.WriteGIF(&buf))
	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
	assert.Equal(t, []int{50, 50, 50}, anim.Delay)
	assert.Equal(t, 0, anim.LoopCount)

	dir := filepath.Join(t.TempDir(), "frames")
	paths, err := rec.WritePNGs(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "frame-002.png"), paths[2])
	_, err = os.Stat(paths[2])
	assert.NoError(t, err)
}

func TestExportRejectsInvalidSequence(t *testing.T) {
	_, err := Export(types.Sequence{}, config.DefaultRaster, time.Second, zap.NewNop().Sugar())
	assert.ErrorIs(t, err, types.ErrEmptySequence)
}

func TestWriteGIFWithoutFrames(t *testing.T) {
	rec := NewRecorder(newBoard(t), nil, time.Second)
	assert.Error(t, rec.WriteGIF(&bytes.Buffer{}))
}

func TestExportRejectsNonPositiveDelay(t *testing.T) {
	seq := types.Sequence{types.NewBoardState(5)}
	for _, d := range []time.Duration{0, -time.Second} {
		_, err := Export(seq, config.DefaultRaster, d, zap.NewNop().Sugar())
		assert.ErrorIs(t, err, replay.ErrInvalidDelay, "delay %v", d)
	}
}

// countPixels counts pixels in the square of half-width half around (cx, cy)
// whose red channel satisfies keep.
func countPixels(img image.Image, cx, cy, half int, keep func(r uint8) bool) int {
	n := 0
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			if r, _, _ := rgb(img, x, y); keep(r) {
				n++
			}
		}
	}
	return n
}

func TestStoneLabelContrasts(t *testing.T) {
	light := func(r uint8) bool { return r > 0xE0 }
	dark := func(r uint8) bool { return r < 0x40 }

	tests := []struct {
		name  string
		stone int
		ink   func(uint8) bool
	}{
		{"black stone, light label", types.Black, light},
		{"white stone, dark label", types.White, dark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := newBoard(t)
			plain.DrawBoard()
			plain.DrawStone(2, 2, tt.stone, replay.NoStep)
			assert.Zero(t, countPixels(plain.Image(), 200, 200, 8, tt.ink), "stone body alone")

			labelled := newBoard(t)
			labelled.DrawBoard()
			labelled.DrawStone(2, 2, tt.stone, 8)
			assert.Positive(t, countPixels(labelled.Image(), 200, 200, 8, tt.ink), "label ink")
		})
	}
}

func TestDrawBoardCoordinates(t *testing.T) {
	c := newBoard(t)
	c.DrawBoard()
	img := c.Image()
	ink := func(r uint8) bool { return r < 0x80 }

	// letters sit centred under each column in the bottom border
	for col, x := range []int{40, 120, 200, 280, 360} {
		assert.Positive(t, countPixels(img, x, 380, 8, ink), "letter %c", 'A'+col)
	}
	// numbers sit centred left of each row in the left border
	for row, y := range []int{40, 120, 200, 280, 360} {
		assert.Positive(t, countPixels(img, 20, y, 8, ink), "number %d", 5-row)
	}
	// the border between two labels stays empty
	assert.Zero(t, countPixels(img, 80, 380, 4, ink), "between A and B")
	assert.Zero(t, countPixels(img, 20, 80, 4, ink), "between 5 and 4")
}
