package gtp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"

	"termsuji-replay/engine"
	"termsuji-replay/sgf"
	"termsuji-replay/types"
)

// ErrNotConnected is returned when a command is sent before Connect.
var ErrNotConnected = errors.New("gtp: engine not connected")

// GTPEngine implements engine.Generator by letting GnuGo play both colours
// over the GTP protocol.
type GTPEngine struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	config engine.GameConfig
	log    *zap.SugaredLogger

	mu sync.Mutex
}

// NewGTPEngine creates a new GTP engine with the given configuration.
func NewGTPEngine(cfg engine.GameConfig, log *zap.SugaredLogger) *GTPEngine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &GTPEngine{
		config: cfg,
		log:    log.With("engine", cfg.EnginePath),
	}
}

// Connect starts the GnuGo subprocess. The process is killed when ctx is done.
func (g *GTPEngine) Connect(ctx context.Context) error {
	args := []string{
		"--mode", "gtp",
		"--level", fmt.Sprintf("%d", g.config.EngineLevel),
		"--quiet",
	}
	g.cmd = exec.CommandContext(ctx, g.config.EnginePath, args...)

	stdin, err := g.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	stdout, err := g.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	// Discard stderr to prevent blocking
	g.cmd.Stderr = nil

	if err := g.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start GnuGo: %w", err)
	}
	g.attach(stdin, stdout)
	g.log.Debugw("engine started", "pid", g.cmd.Process.Pid)
	return nil
}

// attach connects the engine to an already running GTP peer.
func (g *GTPEngine) attach(stdin io.WriteCloser, stdout io.Reader) {
	g.stdin = stdin
	g.stdout = bufio.NewReader(stdout)
}

// Generate sets up an empty board and lets the engine play black and white
// alternately until two consecutive passes, a resignation or MaxMoves.
func (g *GTPEngine) Generate(ctx context.Context) (*engine.Game, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stdin == nil {
		if err := g.Connect(ctx); err != nil {
			return nil, err
		}
	}
	if err := g.setup(); err != nil {
		return nil, err
	}

	size := g.config.BoardSize
	seq := types.Sequence{types.NewBoardState(size)}
	color := types.Black
	passes := 0
	outcome := ""

	for move := 0; move < g.config.MaxMoves && passes < 2 && outcome == ""; move++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		response, err := g.sendCommand(fmt.Sprintf("genmove %s", colorToGTP(color)))
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", move+1, err)
		}
		response = strings.TrimSpace(strings.ToUpper(response))

		switch response {
		case "RESIGN":
			winner := "Black"
			if color == types.Black {
				winner = "White"
			}
			outcome = fmt.Sprintf("%s wins by resignation", winner)
			g.log.Debugw("engine resigned", "color", colorToGTP(color), "move", move+1)
			continue
		case "PASS":
			passes++
			last := seq[len(seq)-1]
			seq = append(seq, last.Clone())
		default:
			if _, _, err := gtpToPos(response, size); err != nil {
				return nil, fmt.Errorf("move %d: %w", move+1, err)
			}
			passes = 0
			// Refresh from the engine so captures are applied
			board, err := g.listStones()
			if err != nil {
				return nil, err
			}
			seq = append(seq, board)
		}
		g.log.Debugw("move generated", "move", move+1, "color", colorToGTP(color), "vertex", response)
		color = oppositeColor(color)
	}

	if outcome == "" {
		score, err := g.sendCommand("final_score")
		if err != nil {
			g.log.Warnw("final_score failed", "error", err)
			score = "?"
		}
		outcome = score
	}

	game := &engine.Game{Frames: seq, Outcome: sgf.NormalizeResult(outcome)}
	g.log.Infow("game generated", "frames", len(seq), "outcome", game.Outcome)
	return game, nil
}

// setup sizes and clears the board and sets komi.
func (g *GTPEngine) setup() error {
	if _, err := g.sendCommand(fmt.Sprintf("boardsize %d", g.config.BoardSize)); err != nil {
		return fmt.Errorf("failed to set board size: %w", err)
	}
	if _, err := g.sendCommand("clear_board"); err != nil {
		return fmt.Errorf("failed to clear board: %w", err)
	}
	if _, err := g.sendCommand(fmt.Sprintf("komi %.1f", g.config.Komi)); err != nil {
		return fmt.Errorf("failed to set komi: %w", err)
	}
	return nil
}

// sendCommand sends a GTP command and returns the response.
func (g *GTPEngine) sendCommand(cmd string) (string, error) {
	if g.stdin == nil {
		return "", ErrNotConnected
	}
	g.log.Debugw("sending command", "cmd", cmd)

	if _, err := fmt.Fprintf(g.stdin, "%s\n", cmd); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	var response strings.Builder
	for {
		line, err := g.stdout.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")

		// Empty line signals end of response
		if line == "" {
			break
		}

		if response.Len() > 0 {
			response.WriteString("\n")
		}
		response.WriteString(line)
	}

	result := response.String()
	g.log.Debugw("received response", "cmd", cmd, "response", result)

	// Check for error response (starts with '?')
	if strings.HasPrefix(result, "?") {
		return "", fmt.Errorf("GTP error: %s", strings.TrimSpace(strings.TrimPrefix(result, "?")))
	}

	// Success response starts with '='
	return strings.TrimPrefix(strings.TrimPrefix(result, "="), " "), nil
}

// listStones reads the current position from the engine.
func (g *GTPEngine) listStones() (types.BoardState, error) {
	size := g.config.BoardSize
	board := types.NewBoardState(size)
	for _, color := range []int{types.Black, types.White} {
		stones, err := g.sendCommand(fmt.Sprintf("list_stones %s", colorToGTP(color)))
		if err != nil {
			return board, err
		}
		for _, vertex := range strings.Fields(stones) {
			x, y, err := gtpToPos(vertex, size)
			if err == nil && x >= 0 && y >= 0 {
				board.Board[y][x] = color
			}
		}
	}
	return board, nil
}

// Close shuts down the GnuGo subprocess.
func (g *GTPEngine) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stdin != nil {
		g.sendCommand("quit")
		g.stdin.Close()
		g.stdin = nil
	}
	if g.cmd != nil && g.cmd.Process != nil {
		g.cmd.Wait()
	}
}
