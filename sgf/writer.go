// Package sgf implements SGF FF[4] writing and reading for board sequences.
package sgf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"termsuji-replay/types"
)

// sgfCoord converts 0-indexed board coordinates to SGF letter pair.
// (0,0) -> "aa", (3,4) -> "de", (18,18) -> "ss".
func sgfCoord(x, y int) string {
	return string(rune('a'+x)) + string(rune('a'+y))
}

func colorChar(color int) string {
	if color == types.White {
		return "W"
	}
	return "B"
}

// WriteSequence encodes seq as a single SGF game tree. Frame 0 goes into the
// root node as AB/AW setup. Every later frame becomes one node: a move when the
// frame is reachable by a single stone plus captures, a pass when nothing
// changed, and an AB/AW/AE setup node otherwise. Replay of the output yields
// seq again.
func WriteSequence(w io.Writer, seq types.Sequence, info GameInfo) error {
	if err := seq.Validate(); err != nil {
		return err
	}
	size := seq.Size()

	if info.Date == "" {
		info.Date = time.Now().Format("2006-01-02")
	}
	result := "?"
	if info.Result != "" {
		result = NormalizeResult(info.Result)
	}

	bw := bufio.NewWriter(w)

	// Root node
	bw.WriteString("(;GM[1]FF[4]CA[UTF-8]")
	bw.WriteString("AP[termsuji-replay:1.0]")
	fmt.Fprintf(bw, "SZ[%d]", size)
	fmt.Fprintf(bw, "KM[%.1f]", info.Komi)
	fmt.Fprintf(bw, "PB[%s]", escape(info.PlayerBlack))
	fmt.Fprintf(bw, "PW[%s]", escape(info.PlayerWhite))
	fmt.Fprintf(bw, "DT[%s]", info.Date)
	fmt.Fprintf(bw, "RE[%s]", result)
	writeSetup(bw, MakeBoard(size), seq[0].Board)
	bw.WriteString("\n")

	toPlay := types.Black
	for i := 1; i < len(seq); i++ {
		prev, next := seq[i-1].Board, seq[i].Board
		if color, x, y, ok := singleMove(prev, next); ok {
			fmt.Fprintf(bw, ";%s[%s]", colorChar(color), sgfCoord(x, y))
			toPlay = opponent(color)
			continue
		}
		if equalBoards(prev, next) {
			fmt.Fprintf(bw, ";%s[]", colorChar(toPlay))
			toPlay = opponent(toPlay)
			continue
		}
		bw.WriteString(";")
		writeSetup(bw, prev, next)
	}

	bw.WriteString(")\n")
	return bw.Flush()
}

// singleMove reports whether next follows from prev by one stone plus the
// captures that stone makes.
func singleMove(prev, next [][]int) (color, x, y int, ok bool) {
	found := false
	for row := range next {
		for col := range next[row] {
			if next[row][col] == types.Empty || next[row][col] == prev[row][col] {
				continue
			}
			if found {
				return 0, 0, 0, false
			}
			found = true
			color, x, y = next[row][col], col, row
		}
	}
	if !found || prev[y][x] != types.Empty {
		return 0, 0, 0, false
	}

	state := types.BoardState{Board: prev}
	played := state.Clone().Board
	played[y][x] = color
	RemoveCaptures(played, len(played), x, y, color)
	if !equalBoards(played, next) {
		return 0, 0, 0, false
	}
	return color, x, y, true
}

// writeSetup writes the AB/AW/AE properties turning prev into next.
func writeSetup(w *bufio.Writer, prev, next [][]int) {
	var ab, aw, ae []string
	for row := range next {
		for col := range next[row] {
			if next[row][col] == prev[row][col] {
				continue
			}
			c := sgfCoord(col, row)
			switch next[row][col] {
			case types.Black:
				ab = append(ab, c)
			case types.White:
				aw = append(aw, c)
			default:
				ae = append(ae, c)
			}
		}
	}
	for _, p := range []struct {
		key    string
		coords []string
	}{{"AB", ab}, {"AW", aw}, {"AE", ae}} {
		if len(p.coords) == 0 {
			continue
		}
		w.WriteString(p.key)
		for _, c := range p.coords {
			fmt.Fprintf(w, "[%s]", c)
		}
	}
}

func equalBoards(a, b [][]int) bool {
	for row := range a {
		for col := range a[row] {
			if a[row][col] != b[row][col] {
				return false
			}
		}
	}
	return true
}

func opponent(color int) int {
	if color == types.Black {
		return types.White
	}
	return types.Black
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`)

func escape(s string) string {
	return valueEscaper.Replace(s)
}

// NormalizeResult converts various outcome formats to an SGF RE[] value.
// Accepts GnuGo output like "White wins by 5.5 points" or "Black wins by resign"
// as well as already-formatted SGF like "W+5.5", "B+R".
func NormalizeResult(outcome string) string {
	o := strings.TrimSpace(outcome)

	// Already in SGF format
	if isValidSGFResult(o) {
		return o
	}

	low := strings.ToLower(o)

	var winner string
	switch {
	case strings.HasPrefix(low, "white wins"):
		winner = "W"
	case strings.HasPrefix(low, "black wins"):
		winner = "B"
	default:
		return "?"
	}

	byIdx := strings.Index(low, " by ")
	if byIdx == -1 {
		return winner + "+?"
	}
	rest := strings.TrimSpace(low[byIdx+4:])

	switch {
	case strings.HasPrefix(rest, "resign"):
		return winner + "+R"
	case strings.HasPrefix(rest, "time"):
		return winner + "+T"
	case strings.HasPrefix(rest, "forfeit"):
		return winner + "+F"
	}

	// "5.5 points" or "5.5"
	if parts := strings.Fields(rest); len(parts) > 0 && isDecimal(parts[0]) {
		return winner + "+" + parts[0]
	}
	return winner + "+?"
}

// isValidSGFResult checks if a string is already a valid SGF result.
func isValidSGFResult(s string) bool {
	switch s {
	case "?", "Jigo", "Void", "0":
		return true
	}
	if len(s) < 3 || (s[0] != 'B' && s[0] != 'W') || s[1] != '+' {
		return false
	}
	switch rest := s[2:]; rest {
	case "R", "T", "F", "?":
		return true
	default:
		return isDecimal(rest)
	}
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	dotSeen := false
	for _, ch := range s {
		if ch == '.' {
			if dotSeen {
				return false
			}
			dotSeen = true
		} else if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
