package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"termsuji-replay/config"
	"termsuji-replay/replay"
	"termsuji-replay/types"
)

// BoardCanvas draws the board and its stones onto a fixed-size image.
type BoardCanvas struct {
	dc  *gg.Context
	geo Geometry

	background color.Color
	line       color.Color
	blackStops [2]color.Color
	whiteStops [2]color.Color

	coordFace font.Face
	labelFace font.Face
}

// NewBoardCanvas creates a canvas for a size x size board using the raster theme.
func NewBoardCanvas(theme config.RasterTheme, size int) (*BoardCanvas, error) {
	colors, err := parseHexes(theme.Background, theme.Line, theme.BlackInner, theme.BlackOuter, theme.WhiteInner, theme.WhiteOuter)
	if err != nil {
		return nil, err
	}
	geo := NewGeometry(theme.BoardWidth, theme.BoardHeight, size)
	coordFace, err := fontFace(geo.Cell * 0.3)
	if err != nil {
		return nil, err
	}
	labelFace, err := fontFace(geo.StoneRadius() * 0.6)
	if err != nil {
		return nil, err
	}
	return &BoardCanvas{
		dc:         gg.NewContext(theme.BoardWidth, theme.BoardHeight),
		geo:        geo,
		background: colors[0],
		line:       colors[1],
		blackStops: [2]color.Color{colors[2], colors[3]},
		whiteStops: [2]color.Color{colors[4], colors[5]},
		coordFace:  coordFace,
		labelFace:  labelFace,
	}, nil
}

// Geometry returns the canvas layout.
func (c *BoardCanvas) Geometry() Geometry {
	return c.geo
}

// Image returns the live canvas image. Copy it before the next frame is drawn.
func (c *BoardCanvas) Image() image.Image {
	return c.dc.Image()
}

// DrawBoard repaints background, grid lines, star points and coordinates.
func (c *BoardCanvas) DrawBoard() {
	dc, g := c.dc, c.geo

	dc.SetColor(c.background)
	dc.Clear()

	dc.SetColor(c.line)
	dc.SetLineWidth(1)
	for i := 0; i < g.Size; i++ {
		offset := g.Border + float64(i)*g.Cell
		dc.DrawLine(offset, g.Border, offset, g.Height-g.Border)
		dc.DrawLine(g.Border, offset, g.Width-g.Border, offset)
	}
	dc.Stroke()

	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if types.IsStarPoint(row, col, g.Size) {
				x, y := g.Point(row, col)
				dc.DrawCircle(x, y, 3)
				dc.Fill()
			}
		}
	}

	// Letters under the bottom edge, numbers left of each row counting up from the bottom
	dc.SetFontFace(c.coordFace)
	for i := 0; i < g.Size; i++ {
		offset := g.Border + float64(i)*g.Cell
		dc.DrawStringAnchored(string(rune('A'+i)), offset, g.Height-g.Border/2, 0.5, 0.5)
		dc.DrawStringAnchored(strconv.Itoa(g.Size-i), g.Border/2, offset, 0.5, 0.5)
	}
}

// DrawStone draws a shaded stone at row, col with an optional step label.
func (c *BoardCanvas) DrawStone(row, col, stone, label int) {
	dc := c.dc
	x, y := c.geo.Point(row, col)
	r := c.geo.StoneRadius()

	stops, labelColor := c.blackStops, color.Color(color.White)
	if stone == types.White {
		stops, labelColor = c.whiteStops, color.Black
	}
	grad := gg.NewRadialGradient(x-r/3, y-r/3, r/10, x, y, r)
	grad.AddColorStop(0, stops[0])
	grad.AddColorStop(1, stops[1])

	dc.DrawCircle(x, y, r)
	dc.SetFillStyle(grad)
	dc.Fill()

	if label == replay.NoStep {
		return
	}
	dc.SetColor(labelColor)
	dc.SetFontFace(c.labelFace)
	dc.DrawStringAnchored(strconv.Itoa(label), x, y, 0.5, 0.5)
}

func parseHexes(hexes ...string) ([]color.Color, error) {
	colors := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, err := parseHex(h)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return colors, nil
}
