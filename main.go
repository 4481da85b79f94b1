// termsuji-replay is a terminal application that replays a sequence of Go
// board states, numbering each stone by the step it appeared in.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"termsuji-replay/config"
	"termsuji-replay/sequence"
	"termsuji-replay/types"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configFile string
	delayMs    int
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "termsuji-replay [file]",
		Short:        "replay Go board sequences in the terminal",
		Version:      Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		// Default to the terminal replay when no command given
		RunE: runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (json)")
	rootCmd.PersistentFlags().IntVar(&delayMs, "delay", 0, "frame delay in milliseconds (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newPlayCmd(),
		newRenderCmd(),
		newScoresCmd(),
		newGenerateCmd(),
		newExportSGFCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config if given, the XDG config file otherwise, and
// applies --delay on top.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		return nil, err
	}
	if delayMs < 0 {
		return nil, fmt.Errorf("--delay must be positive, got %d", delayMs)
	}
	if delayMs > 0 {
		cfg.Replay.FrameDelayMs = delayMs
	}
	return cfg, nil
}

// loadSequence reads the sequence named by args, or the bundled sample.
func loadSequence(args []string) (types.Sequence, error) {
	if len(args) == 0 {
		return sequence.Default(), nil
	}
	return sequence.Load(args[0])
}

// newLogger builds a zap logger writing to path ("stderr" for the console).
func newLogger(path string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}
