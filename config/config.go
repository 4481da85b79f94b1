package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "termsuji-replay/config.json"
	logFile = "termsuji-replay/replay.log"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds 256-colour palette indices for the terminal board.
type ConfigColors struct {
	BoardColor int `json:"board"`
	BlackColor int `json:"black"`
	WhiteColor int `json:"white"`
	LineColor  int `json:"line"`
	LabelDark  int `json:"label_dark"`
	LabelLight int `json:"label_light"`
}

type ConfigSymbols struct {
	BlackStone rune `json:"black"`
	WhiteStone rune `json:"white"`
	StarPoint  rune `json:"star_point"`
}

// Theme configures the terminal board.
type Theme struct {
	UseGridLines bool          `json:"use_grid_lines"`
	ShowLabels   bool          `json:"show_labels"`
	Colors       ConfigColors  `json:"colors"`
	Symbols      ConfigSymbols `json:"symbols"`
}

// RasterTheme configures the pixel canvases used for image export.
type RasterTheme struct {
	BoardWidth  int    `json:"board_width"`
	BoardHeight int    `json:"board_height"`
	ScoreWidth  int    `json:"score_width"`
	ScoreHeight int    `json:"score_height"`
	Background  string `json:"background"`
	Line        string `json:"line"`
	BlackInner  string `json:"black_inner"`
	BlackOuter  string `json:"black_outer"`
	WhiteInner  string `json:"white_inner"`
	WhiteOuter  string `json:"white_outer"`
	ScoreText   string `json:"score_text"`
	ScoreFontPx int    `json:"score_font_px"`
}

// ReplayConfig holds playback settings.
type ReplayConfig struct {
	FrameDelayMs int `json:"frame_delay_ms"`
}

// GnuGoConfig holds GnuGo-specific settings used when generating sequences.
type GnuGoConfig struct {
	Path             string  `json:"gnugo_path"`
	DefaultBoardSize int     `json:"default_board_size"`
	DefaultKomi      float64 `json:"default_komi"`
	DefaultLevel     int     `json:"default_level"`
}

type Config struct {
	Theme  Theme        `json:"theme"`
	Raster RasterTheme  `json:"raster"`
	Replay ReplayConfig `json:"replay"`
	GnuGo  GnuGoConfig  `json:"gnugo"`
}

// InitConfig loads the config file from the XDG config directories, falling
// back to DefaultConfig when none exists.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads a config file from an explicit path on top of the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.StarPoint} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Replay.FrameDelayMs <= 0 {
		return &InvalidConfig{"frame_delay_ms must be positive"}
	}
	r := c.Raster
	if r.BoardWidth <= 0 || r.BoardHeight <= 0 || r.ScoreWidth <= 0 || r.ScoreHeight <= 0 {
		return &InvalidConfig{"raster canvas sizes must be positive"}
	}
	if r.ScoreFontPx <= 0 {
		return &InvalidConfig{"score_font_px must be positive"}
	}
	for _, hex := range []string{r.Background, r.Line, r.BlackInner, r.BlackOuter, r.WhiteInner, r.WhiteOuter, r.ScoreText} {
		if !hexColor.MatchString(hex) {
			return &InvalidConfig{fmt.Sprintf("invalid raster colour %q", hex)}
		}
	}
	return nil
}

// Save writes the config to the user's XDG config directory and returns the
// file path.
func (c *Config) Save() (string, error) {
	absPath, err := Path()
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

// FrameDelay returns the pause between two frames.
func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.Replay.FrameDelayMs) * time.Millisecond
}

// Path returns where Save writes the config file.
func Path() (string, error) {
	return xdg.ConfigFile(cfgFile)
}

// LogFile returns the path of the log file used while the terminal UI runs.
func LogFile() (string, error) {
	return xdg.StateFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
