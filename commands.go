package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"termsuji-replay/config"
	"termsuji-replay/engine"
	"termsuji-replay/engine/gtp"
	"termsuji-replay/render"
	"termsuji-replay/replay"
	"termsuji-replay/score"
	"termsuji-replay/sequence"
	"termsuji-replay/sgf"
	"termsuji-replay/types"
	"termsuji-replay/ui"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play [file]",
		Short: "replay a sequence in the terminal (default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	seq, err := loadSequence(args)
	if err != nil {
		return err
	}

	// The terminal belongs to tview while playing
	logPath, err := config.LogFile()
	if err != nil {
		return err
	}
	log, err := newLogger(logPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	app := tview.NewApplication()
	viewer := ui.NewViewer(app, cfg, seq.Size())

	a, err := replay.New(seq, viewer.Board(), viewer.Scores(),
		replay.WithDelay(cfg.FrameDelay()),
		replay.WithLogger(log),
		replay.WithObserver(viewer.FrameDone),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	viewer.SetQuitFunc(func() {
		cancel()
		app.Stop()
	})

	go func() {
		if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("replay stopped", "error", err)
		}
	}()

	log.Infow("replay started", "frames", len(seq), "size", seq.Size(), "delay", cfg.FrameDelay())
	if err := app.SetRoot(viewer.Root(), true).Run(); err != nil {
		return err
	}
	log.Infow("replay finished", "step", a.StepCounter(), "frame", a.Index())
	return nil
}

func newRenderCmd() *cobra.Command {
	var outDir, gifPath string
	c := &cobra.Command{
		Use:   "render [file]",
		Short: "render a sequence to PNG frames and/or an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" && gifPath == "" {
				return errors.New("nothing to write: pass --out and/or --gif")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			seq, err := loadSequence(args)
			if err != nil {
				return err
			}
			log, err := newLogger("stderr")
			if err != nil {
				return err
			}
			defer log.Sync()

			rec, err := render.Export(seq, cfg.Raster, cfg.FrameDelay(), log)
			if err != nil {
				return err
			}

			if outDir != "" {
				paths, err := rec.WritePNGs(outDir)
				if err != nil {
					return err
				}
				fmt.Printf("wrote %d frames to %s\n", len(paths), outDir)
			}
			if gifPath != "" {
				if err := writeGIF(rec, gifPath); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", gifPath)
			}
			return nil
		},
	}
	c.Flags().StringVar(&outDir, "out", "", "directory for PNG frames")
	c.Flags().StringVar(&gifPath, "gif", "", "animated GIF output file")
	return c
}

func writeGIF(rec *render.Recorder, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rec.WriteGIF(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newScoresCmd() *cobra.Command {
	var plot bool
	c := &cobra.Command{
		Use:   "scores [file]",
		Short: "print the score of every frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := loadSequence(args)
			if err != nil {
				return err
			}
			printScores(seq, plot)
			return nil
		},
	}
	c.Flags().BoolVar(&plot, "plot", true, "plot both scores")
	return c
}

func printScores(seq types.Sequence, plot bool) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%d frames, %dx%d, komi %.1f", len(seq), seq.Size(), seq.Size(), score.Komi)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tBLACK\tWHITE\tB STONES\tW STONES\tLEAD")

	black := make([]float64, len(seq))
	white := make([]float64, len(seq))
	for i := range seq {
		p := score.Calculate(seq[i])
		black[i], white[i] = p.Black, p.White
		lead := fmt.Sprintf("W+%.1f", p.White-p.Black)
		if p.Black > p.White {
			lead = fmt.Sprintf("B+%.1f", p.Black-p.White)
		}
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%d\t%d\t%s\n",
			i, p.Black, p.White, seq[i].Count(types.Black), seq[i].Count(types.White), lead)
	}
	w.Flush()

	if plot && len(seq) > 1 {
		fmt.Println()
		graph := asciigraph.PlotMany([][]float64{black, white},
			asciigraph.Height(10),
			asciigraph.SeriesColors(asciigraph.Default, asciigraph.Red),
			asciigraph.Caption("score per frame (black, white)"),
		)
		fmt.Println(graph)
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		outPath string
		moves   int
		level   int
		size    int
	)
	c := &cobra.Command{
		Use:   "generate",
		Short: "let GnuGo play itself and save the sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return errors.New("--out is required")
			}
			if _, err := sequence.Format(outPath); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := checkGnuGo(cfg.GnuGo.Path); err != nil {
				fmt.Println("Error: GnuGo not found.")
				fmt.Println("Please install GnuGo:")
				fmt.Println("  macOS:  brew install gnu-go")
				fmt.Println("  Ubuntu: sudo apt install gnugo")
				fmt.Println("  Fedora: sudo dnf install gnugo")
				return err
			}
			log, err := newLogger("stderr")
			if err != nil {
				return err
			}
			defer log.Sync()

			gameCfg := buildGameConfig(cfg, size, level, moves)
			eng := gtp.NewGTPEngine(gameCfg, log)
			defer eng.Close()

			game, err := eng.Generate(cmd.Context())
			if err != nil {
				return err
			}

			if strings.EqualFold(filepath.Ext(outPath), ".sgf") {
				err = writeSGF(outPath, game.Frames, sgf.GameInfo{
					Komi:        gameCfg.Komi,
					PlayerBlack: "GnuGo",
					PlayerWhite: "GnuGo",
					Result:      game.Outcome,
				})
			} else {
				err = sequence.Save(outPath, game.Frames)
			}
			if err != nil {
				return err
			}
			fmt.Printf("wrote %d frames to %s (%s)\n", len(game.Frames), outPath, dimStyle.Render(game.Outcome))
			return nil
		},
	}
	c.Flags().StringVarP(&outPath, "out", "o", "", "output file (.yaml, .json or .sgf)")
	c.Flags().IntVar(&moves, "moves", 0, "maximum number of moves (0 uses the default)")
	c.Flags().IntVar(&level, "level", 0, "GnuGo level 1-10 (0 uses the config)")
	c.Flags().IntVar(&size, "size", 0, "board size (0 uses the config)")
	return c
}

// buildGameConfig creates a GameConfig from the config file and flags.
func buildGameConfig(cfg *config.Config, size, level, moves int) engine.GameConfig {
	// Start with defaults
	gameCfg := engine.DefaultConfig()
	gameCfg.EnginePath = cfg.GnuGo.Path
	gameCfg.Komi = cfg.GnuGo.DefaultKomi
	if cfg.GnuGo.DefaultBoardSize > 0 {
		gameCfg.BoardSize = cfg.GnuGo.DefaultBoardSize
	}
	if cfg.GnuGo.DefaultLevel > 0 {
		gameCfg.EngineLevel = cfg.GnuGo.DefaultLevel
	}

	// Override with flags
	if size >= 2 && size <= 19 {
		gameCfg.BoardSize = size
	}
	if level >= 1 && level <= 10 {
		gameCfg.EngineLevel = level
	}
	if moves > 0 {
		gameCfg.MaxMoves = moves
	}
	return gameCfg
}

// checkGnuGo verifies that GnuGo is installed and accessible.
func checkGnuGo(path string) error {
	if path == "" {
		path = "gnugo"
	}
	_, err := exec.LookPath(path)
	return err
}

func newExportSGFCmd() *cobra.Command {
	var outPath string
	c := &cobra.Command{
		Use:   "export-sgf [file]",
		Short: "write a sequence as an SGF game record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return errors.New("--out is required")
			}
			seq, err := loadSequence(args)
			if err != nil {
				return err
			}
			info := sgf.GameInfo{Komi: score.Komi, PlayerBlack: "Black", PlayerWhite: "White"}
			if err := writeSGF(outPath, seq, info); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", outPath)
			return nil
		},
	}
	c.Flags().StringVarP(&outPath, "out", "o", "", "output SGF file")
	return c
}

func writeSGF(path string, seq types.Sequence, info sgf.GameInfo) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sgf.WriteSequence(f, seq, info); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	c.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "write the default config to the user config directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig
			path, err := cfg.Save()
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "print where the config and log files live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := config.Path()
			if err != nil {
				return err
			}
			logPath, err := config.LogFile()
			if err != nil {
				return err
			}
			fmt.Printf("config: %s\nlog:    %s\n", cfgPath, logPath)
			return nil
		},
	})
	return c
}
