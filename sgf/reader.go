package sgf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"termsuji-replay/types"
)

// ErrNoGameTree is returned for content without an SGF game tree.
var ErrNoGameTree = errors.New("sgf: no game tree found")

// GameInfo holds metadata parsed from an SGF file header.
type GameInfo struct {
	FilePath    string
	FileName    string
	BoardSize   int
	Komi        float64
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	MoveCount   int
}

// ParseHeader reads an SGF file and extracts metadata from the root node.
func ParseHeader(filePath string) (*GameInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	info := parseHeader(string(data))
	info.FilePath = filePath
	info.FileName = filepath.Base(filePath)
	return info, nil
}

func parseHeader(content string) *GameInfo {
	props := parseProperties(content)

	komi := 0.0
	if v, ok := props["KM"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			komi = f
		}
	}

	return &GameInfo{
		BoardSize:   boardSize(props),
		Komi:        komi,
		PlayerBlack: props["PB"],
		PlayerWhite: props["PW"],
		Date:        props["DT"],
		Result:      props["RE"],
		MoveCount:   countMoves(content),
	}
}

func boardSize(props map[string]string) int {
	size := 19
	if v, ok := props["SZ"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	return size
}

// ReplayToEnd parses an SGF file and replays all moves to produce the final board position.
// Returns the board (board[row][col], 0=empty, 1=black, 2=white), the move count, and any error.
func ReplayToEnd(filePath string) ([][]int, int, error) {
	seq, info, err := ReplayFile(filePath)
	if err != nil {
		return nil, 0, err
	}
	return seq[len(seq)-1].Board, info.MoveCount, nil
}

// ReplayFile reads an SGF file and returns its board sequence.
func ReplayFile(filePath string) (types.Sequence, *GameInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	seq, info, err := Replay(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filePath, err)
	}
	info.FilePath = filePath
	info.FileName = filepath.Base(filePath)
	return seq, info, nil
}

// Replay parses SGF content and returns one snapshot for the initial position
// followed by one snapshot per move or setup node. Passes repeat the previous
// snapshot. Captures are removed as moves are applied.
func Replay(content string) (types.Sequence, *GameInfo, error) {
	if !strings.Contains(content, "(;") {
		return nil, nil, ErrNoGameTree
	}
	info := parseHeader(content)
	size := info.BoardSize

	board := MakeBoard(size)
	applySetup(rootNode(content), board, size)
	seq := types.Sequence{{Board: board}}

	for _, node := range parseNodes(content) {
		prev := types.BoardState{Board: board}
		next := prev.Clone()
		if color, x, y, ok := parseMoveNode(node); ok {
			if x >= 0 && x < size && y >= 0 && y < size {
				next.Board[y][x] = color
				RemoveCaptures(next.Board, size, x, y, color)
			}
		} else if !applySetup(node, next.Board, size) {
			continue
		}
		board = next.Board
		seq = append(seq, next)
	}

	return seq, info, nil
}

// MakeBoard creates an empty boardSize x boardSize board.
func MakeBoard(size int) [][]int {
	return types.NewBoardState(size).Board
}

// rootNode returns the text of the root node, without the leading "(;".
func rootNode(content string) string {
	start := strings.Index(content, "(;")
	if start == -1 {
		return ""
	}
	start += 2

	// Root node ends at the next ";" or ")" outside a value
	i := start
	for i < len(content) && content[i] != ';' && content[i] != ')' {
		if content[i] == '[' {
			i = skipValue(content, i)
		}
		i++
	}
	return content[start:i]
}

// skipValue returns the index of the ']' closing the value opened at i.
func skipValue(content string, i int) int {
	i++
	for i < len(content) && content[i] != ']' {
		if content[i] == '\\' && i+1 < len(content) {
			i++
		}
		i++
	}
	return i
}

// parseProperties extracts KEY[value] pairs from the root node of an SGF string.
func parseProperties(content string) map[string]string {
	props := make(map[string]string)
	for key, values := range extractProps(rootNode(content)) {
		props[key] = values[len(values)-1] // last value wins for simple props
	}
	return props
}

// extractProps parses KEY[value][value] lists from a node string.
func extractProps(node string) map[string][]string {
	props := make(map[string][]string)
	i := 0
	for i < len(node) {
		// Skip whitespace and node separators
		for i < len(node) && strings.IndexByte(" \n\r\t;", node[i]) >= 0 {
			i++
		}
		if i >= len(node) {
			break
		}

		// Read property identifier (uppercase letters)
		keyStart := i
		for i < len(node) && node[i] >= 'A' && node[i] <= 'Z' {
			i++
		}
		if i == keyStart {
			i++
			continue
		}
		key := node[keyStart:i]

		// Read all property values (e.g., AB[aa][bb][cc])
		for i < len(node) && node[i] == '[' {
			end := skipValue(node, i)
			props[key] = append(props[key], unescape(node[i+1:min(end, len(node))]))
			i = end + 1
		}
	}
	return props
}

// unescape drops the backslash of SGF escape sequences.
func unescape(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) {
			i++
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

// countMoves counts the number of move nodes (;B[...] or ;W[...]) in the SGF.
func countMoves(content string) int {
	count := 0
	for _, node := range parseNodes(content) {
		if _, _, _, ok := parseMoveNode(node); ok {
			count++
		}
	}
	return count
}

// parseNodes returns all node strings after the root node.
func parseNodes(content string) []string {
	var nodes []string

	start := strings.Index(content, "(;")
	if start == -1 {
		return nodes
	}
	i := start + 2 + len(rootNode(content))

	for i < len(content) {
		if content[i] == ';' {
			nodeStart := i
			i++
			// Read until next ';' or ')'
			for i < len(content) && content[i] != ';' && content[i] != ')' {
				if content[i] == '[' {
					i = skipValue(content, i)
				}
				i++
			}
			nodes = append(nodes, content[nodeStart:min(i, len(content))])
		} else {
			i++
		}
	}

	return nodes
}

// parseMoveNode extracts color and coordinates from a move node like ";B[pd]".
// Returns color (1=black, 2=white), x, y, and whether it's a valid move node.
// Pass moves return x=-1, y=-1.
func parseMoveNode(node string) (color, x, y int, ok bool) {
	node = strings.TrimSpace(node)
	if len(node) < 3 || node[0] != ';' {
		return 0, 0, 0, false
	}

	ch := node[1]
	if (ch != 'B' && ch != 'W') || node[2] != '[' {
		return 0, 0, 0, false
	}

	color = types.Black
	if ch == 'W' {
		color = types.White
	}

	// Find the value in brackets
	bracketStart := strings.Index(node, "[")
	bracketEnd := strings.Index(node, "]")
	if bracketStart == -1 || bracketEnd == -1 || bracketEnd <= bracketStart {
		return 0, 0, 0, false
	}

	coord := node[bracketStart+1 : bracketEnd]
	if coord == "" {
		// Pass
		return color, -1, -1, true
	}

	if len(coord) != 2 {
		return 0, 0, 0, false
	}

	x = int(coord[0] - 'a')
	y = int(coord[1] - 'a')
	return color, x, y, true
}

// applySetup applies AB[]/AW[]/AE[] setup properties of one node to the board.
// It reports whether the node held any setup property.
func applySetup(node string, board [][]int, size int) bool {
	found := false
	props := extractProps(node)
	for key, color := range map[string]int{"AB": types.Black, "AW": types.White, "AE": types.Empty} {
		values, ok := props[key]
		if !ok {
			continue
		}
		found = true
		for _, coord := range values {
			if len(coord) != 2 {
				continue
			}
			x := int(coord[0] - 'a')
			y := int(coord[1] - 'a')
			if x >= 0 && x < size && y >= 0 && y < size {
				board[y][x] = color
			}
		}
	}
	return found
}

// RemoveCaptures checks and removes any opponent groups adjacent to (x, y) that have zero liberties.
func RemoveCaptures(board [][]int, size, x, y, color int) {
	opponent := types.Black
	if color == types.Black {
		opponent = types.White
	}

	// Check all four neighbors
	for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= size || ny < 0 || ny >= size {
			continue
		}
		if board[ny][nx] == opponent {
			if !hasLiberties(board, size, nx, ny, opponent) {
				removeGroup(board, size, nx, ny, opponent)
			}
		}
	}
}

// hasLiberties checks if the group at (x, y) has any liberties using flood fill.
func hasLiberties(board [][]int, size, x, y, color int) bool {
	visited := make([][]bool, size)
	for i := range visited {
		visited[i] = make([]bool, size)
	}
	return hasLibertiesDFS(board, visited, size, x, y, color)
}

func hasLibertiesDFS(board [][]int, visited [][]bool, size, x, y, color int) bool {
	if x < 0 || x >= size || y < 0 || y >= size {
		return false
	}
	if visited[y][x] {
		return false
	}
	if board[y][x] == types.Empty {
		return true // found a liberty
	}
	if board[y][x] != color {
		return false
	}

	visited[y][x] = true
	for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		if hasLibertiesDFS(board, visited, size, x+d[0], y+d[1], color) {
			return true
		}
	}
	return false
}

// removeGroup removes all stones in the group at (x, y) of the given color.
func removeGroup(board [][]int, size, x, y, color int) {
	if x < 0 || x >= size || y < 0 || y >= size {
		return
	}
	if board[y][x] != color {
		return
	}
	board[y][x] = types.Empty
	for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		removeGroup(board, size, x+d[0], y+d[1], color)
	}
}
