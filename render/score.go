package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"termsuji-replay/config"
	"termsuji-replay/score"
)

// ScoreCanvas draws the two score lines onto a fixed-size image.
type ScoreCanvas struct {
	dc         *gg.Context
	background color.Color
	text       color.Color
	face       font.Face
}

// NewScoreCanvas creates the score panel described by the raster theme.
func NewScoreCanvas(theme config.RasterTheme) (*ScoreCanvas, error) {
	colors, err := parseHexes(theme.Background, theme.ScoreText)
	if err != nil {
		return nil, err
	}
	face, err := fontFace(float64(theme.ScoreFontPx))
	if err != nil {
		return nil, err
	}
	return &ScoreCanvas{
		dc:         gg.NewContext(theme.ScoreWidth, theme.ScoreHeight),
		background: colors[0],
		text:       colors[1],
		face:       face,
	}, nil
}

// Image returns the live canvas image.
func (c *ScoreCanvas) Image() image.Image {
	return c.dc.Image()
}

// DisplayScores clears the panel and writes both scores left aligned.
func (c *ScoreCanvas) DisplayScores(p score.Pair) {
	dc := c.dc
	dc.SetColor(c.background)
	dc.Clear()

	dc.SetColor(c.text)
	dc.SetFontFace(c.face)
	lines := score.Lines(p)
	// ay=1 puts the top of the text at y
	dc.DrawStringAnchored(lines[0], 20, 60, 0, 1)
	dc.DrawStringAnchored(lines[1], 20, 100, 0, 1)
}
