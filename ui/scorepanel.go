package ui

import (
	"fmt"
	"sync"

	"github.com/rivo/tview"

	"termsuji-replay/score"
)

// ScorePanel displays both scores beside the board. It implements
// replay.ScoreRenderer; new scores are shown after Commit.
type ScorePanel struct {
	box *tview.TextView

	mu      sync.Mutex
	pending score.Pair
	shown   score.Pair
}

// NewScorePanel creates a new score panel.
func NewScorePanel() *ScorePanel {
	panel := &ScorePanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *ScorePanel) Box() *tview.TextView {
	return p.box
}

// DisplayScores stores the scores of the frame being drawn.
func (p *ScorePanel) DisplayScores(pair score.Pair) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = pair
}

// Commit shows the pending scores.
func (p *ScorePanel) Commit() {
	p.mu.Lock()
	p.shown = p.pending
	pair := p.shown
	p.mu.Unlock()

	lines := score.Lines(pair)

	var text string
	text += "[white::b]Score[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]●[-] %s\n", lines[0])
	text += fmt.Sprintf("[dimgray]○[-] %s\n", lines[1])
	text += fmt.Sprintf("\n[dimgray]komi %.1f[-]\n", score.Komi)

	p.box.SetText(text)
}

// Scores returns the scores currently shown.
func (p *ScorePanel) Scores() score.Pair {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}
