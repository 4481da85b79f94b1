package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsuji-replay/config"
	"termsuji-replay/replay"
)

// Viewer lays out the board, the score panel and a status line, and shows
// each frame the animator renders.
type Viewer struct {
	app    *tview.Application
	board  *ReplayBoardUI
	scores *ScorePanel
	hint   *tview.TextView
	root   *tview.Flex
	onQuit func()
}

// NewViewer creates the replay layout for a size x size board.
func NewViewer(app *tview.Application, c *config.Config, size int) *Viewer {
	hint := tview.NewTextView()
	hint.SetBorder(true)
	hint.SetBorderPadding(0, 0, 1, 1)
	hint.SetBorderColor(PanelColors.Border)
	hint.SetTitle(" Status ")
	hint.SetTitleAlign(tview.AlignLeft)
	hint.SetTitleColor(PanelColors.Title)
	hint.SetTextColor(PanelColors.Hint)

	v := &Viewer{
		app:    app,
		board:  NewReplayBoard(c, size),
		scores: NewScorePanel(),
		hint:   hint,
	}
	v.root = createReplayLayout(v.board, v.scores, hint)
	v.board.Box.SetInputCapture(v.handleKey)
	v.refreshHint(nil)
	return v
}

// createReplayLayout puts board and score panel side by side above the status line.
func createReplayLayout(board *ReplayBoardUI, scores *ScorePanel, hint *tview.TextView) *tview.Flex {
	// Board (fixed size) | score panel (fixed width)
	boardWidth := board.Size()*2 + 4 // 2 chars per cell + coordinates
	boardHeight := board.Size() + 2  // + coordinates
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(nil, 0, 1, false)
	boardRow.AddItem(board.Box, boardWidth, 0, true)
	boardRow.AddItem(scores.Box(), 26, 0, false)
	boardRow.AddItem(nil, 0, 1, false)

	// Center the board row vertically, compact status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(nil, 0, 1, false)
	mainFlex.AddItem(boardRow, boardHeight, 0, true)
	mainFlex.AddItem(nil, 0, 1, false)
	mainFlex.AddItem(hint, 3, 0, false)

	return mainFlex
}

// Root returns the primitive to install as the application root.
func (v *Viewer) Root() tview.Primitive {
	return v.root
}

// Board returns the board renderer.
func (v *Viewer) Board() *ReplayBoardUI {
	return v.board
}

// Scores returns the score renderer.
func (v *Viewer) Scores() *ScorePanel {
	return v.scores
}

// SetQuitFunc sets the function called when q or Esc is pressed.
func (v *Viewer) SetQuitFunc(f func()) {
	v.onQuit = f
}

// FrameDone is a replay observer: it publishes the finished frame and asks
// the application to redraw.
func (v *Viewer) FrameDone(f replay.Frame) {
	v.board.Commit()
	v.scores.Commit()
	v.refreshHint(&f)
	// Spawn goroutine to avoid deadlock when called from the main thread
	if v.app != nil {
		go func() {
			v.app.QueueUpdateDraw(func() {})
		}()
	}
}

func (v *Viewer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
		if v.onQuit != nil {
			v.onQuit()
		}
		return nil
	}
	return event
}

func (v *Viewer) refreshHint(f *replay.Frame) {
	if f == nil {
		v.hint.SetText("  waiting for first frame   q quit")
		return
	}
	v.hint.SetText(fmt.Sprintf("  frame %d/%d  step %d   q quit", f.Index+1, f.Total, f.NextStep))
}
