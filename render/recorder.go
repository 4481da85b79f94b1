package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"termsuji-replay/config"
	"termsuji-replay/replay"
	"termsuji-replay/types"
)

// Recorder snapshots the board and score panels after every frame.
type Recorder struct {
	board  *BoardCanvas
	scores *ScoreCanvas
	delay  time.Duration

	mu     sync.Mutex
	frames []image.Image
}

// NewRecorder records the two canvases side by side.
func NewRecorder(board *BoardCanvas, scores *ScoreCanvas, delay time.Duration) *Recorder {
	return &Recorder{board: board, scores: scores, delay: delay}
}

// Capture is a replay observer that stores a copy of the current frame.
func (r *Recorder) Capture(replay.Frame) {
	bb := r.board.Image().Bounds()
	sb := r.scores.Image().Bounds()
	h := bb.Dy()
	if sb.Dy() > h {
		h = sb.Dy()
	}

	dc := gg.NewContext(bb.Dx()+sb.Dx(), h)
	dc.SetColor(r.board.background)
	dc.Clear()
	dc.DrawImage(r.board.Image(), 0, 0)
	dc.DrawImage(r.scores.Image(), bb.Dx(), 0)

	r.mu.Lock()
	r.frames = append(r.frames, dc.Image())
	r.mu.Unlock()
}

// Frames returns the recorded images.
func (r *Recorder) Frames() []image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]image.Image(nil), r.frames...)
}

// WritePNGs writes every frame as dir/frame-NNN.png and returns the paths.
func (r *Recorder) WritePNGs(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var paths []string
	for i, img := range r.Frames() {
		path := filepath.Join(dir, fmt.Sprintf("frame-%03d.png", i))
		if err := gg.SavePNG(path, img); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteGIF encodes the frames as an endlessly looping animation.
func (r *Recorder) WriteGIF(w io.Writer) error {
	frames := r.Frames()
	if len(frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	delay := int(r.delay / (10 * time.Millisecond))
	for _, frame := range frames {
		img := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(img, img.Bounds(), frame, image.Point{})
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// Export plays one pass of seq on a virtual clock and records every frame.
func Export(seq types.Sequence, theme config.RasterTheme, delay time.Duration, log *zap.SugaredLogger) (*Recorder, error) {
	if delay <= 0 {
		return nil, fmt.Errorf("%w, got %v", replay.ErrInvalidDelay, delay)
	}
	board, err := NewBoardCanvas(theme, seq.Size())
	if err != nil {
		return nil, err
	}
	scores, err := NewScoreCanvas(theme)
	if err != nil {
		return nil, err
	}
	rec := NewRecorder(board, scores, delay)

	clock := replay.NewManualClock()
	a, err := replay.New(seq, board, scores,
		replay.WithScheduler(clock),
		replay.WithDelay(delay),
		replay.WithLogger(log),
		replay.WithObserver(rec.Capture),
	)
	if err != nil {
		return nil, err
	}
	if err := a.Start(); err != nil {
		return nil, err
	}
	clock.Advance(time.Duration(len(seq)-1) * delay)
	a.Stop()

	log.Infow("sequence exported", "frames", len(rec.Frames()), "delay", delay)
	return rec, nil
}
