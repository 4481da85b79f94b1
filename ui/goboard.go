// Package ui specifies custom controls for tview to replay Go board sequences in the terminal.
package ui

import (
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsuji-replay/config"
	"termsuji-replay/replay"
	"termsuji-replay/types"
)

type boardCell struct {
	stone int
	label int
}

// ReplayBoardUI is a terminal board that implements replay.BoardRenderer.
// Frames are drawn into a pending grid and only shown after Commit.
type ReplayBoardUI struct {
	Box    *tview.Box
	cfg    *config.Config
	styles []tcell.Color

	mu      sync.Mutex
	size    int
	pending [][]boardCell
	shown   [][]boardCell
}

func newGrid(size int) [][]boardCell {
	grid := make([][]boardCell, size)
	for i := range grid {
		grid[i] = make([]boardCell, size)
	}
	return grid
}

func NewReplayBoard(c *config.Config, size int) *ReplayBoardUI {
	goBoard := &ReplayBoardUI{
		Box:     tview.NewBox(),
		size:    size,
		pending: newGrid(size),
		shown:   newGrid(size),
	}
	goBoard.SetConfig(c)
	goBoard.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		goBoard.mu.Lock()
		defer goBoard.mu.Unlock()
		if goBoard.size == 0 {
			return x, y, 1, 1
		}
		// 2 characters per cell for square appearance
		boardW, boardH := goBoard.size*2, goBoard.size
		for row := 0; row < goBoard.size; row++ {
			for col := 0; col < goBoard.size; col++ {
				goBoard.drawCell(screen, row, col, x+4, y)
			}
		}
		goBoard.drawCoordinates(screen, x, y)
		// Add offset for coordinate display
		return x, y, boardW + 4, boardH + 2
	})
	return goBoard
}

func (g *ReplayBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor), // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor), // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor), // 2
		tcell.PaletteColor(c.Theme.Colors.LineColor),  // 3
		tcell.PaletteColor(c.Theme.Colors.LabelDark),  // 4
		tcell.PaletteColor(c.Theme.Colors.LabelLight), // 5
	}
	g.cfg = c
}

// Size returns the board size.
func (g *ReplayBoardUI) Size() int {
	return g.size
}

// DrawBoard starts a new pending frame with every intersection empty.
func (g *ReplayBoardUI) DrawBoard() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = newGrid(g.size)
}

// DrawStone places a stone in the pending frame.
func (g *ReplayBoardUI) DrawStone(row, col, color, label int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= g.size || col < 0 || col >= g.size {
		return
	}
	g.pending[row][col] = boardCell{stone: color, label: label}
}

// Commit makes the pending frame the visible one.
func (g *ReplayBoardUI) Commit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shown = g.pending
	g.pending = newGrid(g.size)
}

// Cell returns the stone and label currently shown at row, col.
func (g *ReplayBoardUI) Cell(row, col int) (stone, label int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := g.shown[row][col]
	return c.stone, c.label
}

// drawCell draws one intersection. Must be called while holding the lock.
func (g *ReplayBoardUI) drawCell(s tcell.Screen, row, col, l, t int) {
	c := g.shown[row][col]
	board := tcell.StyleDefault.Background(g.styles[0])

	if c.stone == types.Empty {
		hoshi := types.IsStarPoint(row, col, g.size)
		drawRune := ' '
		if g.cfg.Theme.UseGridLines {
			drawRune = getGridRune(col, row, g.size, g.size)
		}
		if hoshi {
			drawRune = g.cfg.Theme.Symbols.StarPoint
		}
		if !g.cfg.Theme.UseGridLines {
			drawStoneCell(s, board.Foreground(g.styles[3]), [2]rune{drawRune, ' '}, col, row, l, t)
			return
		}
		// No line should connect into a stone on the right
		hasStoneRight := col < g.size-1 && g.shown[row][col+1].stone != types.Empty
		drawGridCell(s, board.Foreground(g.styles[3]), drawRune, col, row, l, t, g.size, hasStoneRight)
		return
	}

	symbol := g.cfg.Theme.Symbols.BlackStone
	stoneColor, labelColor := g.styles[1], g.styles[5]
	if c.stone == types.White {
		symbol = g.cfg.Theme.Symbols.WhiteStone
		stoneColor, labelColor = g.styles[2], g.styles[4]
	}

	if !g.cfg.Theme.ShowLabels || c.label == replay.NoStep {
		drawStoneCell(s, board.Foreground(stoneColor), [2]rune{symbol, ' '}, col, row, l, t)
		return
	}
	// Labelled stones fill the slot with the stone colour and print the step on it
	drawStoneCell(s, tcell.StyleDefault.Background(stoneColor).Foreground(labelColor), labelRunes(c.label), col, row, l, t)
}

// labelRunes formats a step label for a 2-character slot. Labels above 99
// keep their last two digits.
func labelRunes(label int) [2]rune {
	digits := []rune(strconv.Itoa(label))
	if len(digits) > 2 {
		digits = digits[len(digits)-2:]
	}
	if len(digits) == 1 {
		return [2]rune{digits[0], ' '}
	}
	return [2]rune{digits[0], digits[1]}
}

// drawStoneCell draws a stone cell (2 characters wide)
func drawStoneCell(s tcell.Screen, c tcell.Style, r [2]rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r[0], nil, c)
	s.SetContent(l+x*2+1, t+y, r[1], nil, c)
}

// drawGridCell draws a cell using box-drawing characters for grid lines
func drawGridCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t, boardWidth int, hasStoneRight bool) {
	// 2-char cell: [intersection][right-line]
	s.SetContent(l+x*2, t+y, r, nil, c)

	// Right connector: space if at right edge or if there's a stone to the right
	rightConn := '─'
	if x == boardWidth-1 || hasStoneRight {
		rightConn = ' '
	}
	s.SetContent(l+x*2+1, t+y, rightConn, nil, c)
}

// getGridRune returns the appropriate box-drawing character for a grid position
func getGridRune(x, y, width, height int) rune {
	isTop := y == 0
	isBottom := y == height-1
	isLeft := x == 0
	isRight := x == width-1

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}

// drawCoordinates prints letters under the board and numbers to its left,
// counting up from the bottom row.
func (g *ReplayBoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	style := tcell.StyleDefault
	n := g.size

	for ix := 0; ix < n; ix++ {
		// 2-char cells
		s.SetContent(x+4+(ix*2), y+n+1, rune('A'+ix), nil, style)
		s.SetContent(x+4+(ix*2)+1, y+n+1, ' ', nil, style)
	}

	for iy := 0; iy < n; iy++ {
		displayNum := iy + 1
		tensRune := ' '
		if displayNum >= 10 {
			tensRune = rune('0' + displayNum/10)
		}
		s.SetContent(x+1, y+n-iy-1, tensRune, nil, style)
		s.SetContent(x+2, y+n-iy-1, rune('0'+(displayNum%10)), nil, style)
	}
}
