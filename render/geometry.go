// Package render draws board sequences onto pixel canvases and records them
// as PNG frames or animated GIFs.
package render

// Geometry maps board intersections to pixel coordinates.
type Geometry struct {
	Width  float64
	Height float64
	Size   int
	Border float64
	Cell   float64
}

// NewGeometry lays out a size x size board on a width x height canvas. The
// border is 60% of a cell-and-border slot so coordinates fit beside the grid.
func NewGeometry(width, height, size int) Geometry {
	border := float64(width) / float64(size+1) * 0.6
	cell := float64(width) - 2*border
	if size > 1 {
		cell /= float64(size - 1)
	}
	return Geometry{
		Width:  float64(width),
		Height: float64(height),
		Size:   size,
		Border: border,
		Cell:   cell,
	}
}

// Point returns the pixel centre of the intersection at row, col.
func (g Geometry) Point(row, col int) (x, y float64) {
	return g.Border + float64(col)*g.Cell, g.Border + float64(row)*g.Cell
}

// StoneRadius returns the radius of a stone.
func (g Geometry) StoneRadius() float64 {
	return g.Cell/2 - 2
}
