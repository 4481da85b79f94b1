// Package sequence loads and saves board sequences.
package sequence

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"termsuji-replay/score"
	"termsuji-replay/sgf"
	"termsuji-replay/types"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrUnknownFormat is returned for file extensions other than yaml, json and sgf.
var ErrUnknownFormat = errors.New("sequence: unknown file format")

// File is the on-disk layout of a sequence file.
type File struct {
	Name   string         `yaml:"name,omitempty" json:"name,omitempty"`
	Komi   float64        `yaml:"komi,omitempty" json:"komi,omitempty"` // informational; scores always use score.Komi
	Frames types.Sequence `yaml:"frames" json:"frames"`
}

// Default returns the bundled 5x5 sample game.
func Default() types.Sequence {
	var f File
	if err := yaml.Unmarshal(defaultYAML, &f); err != nil {
		panic(fmt.Sprintf("sequence: bundled dataset: %v", err))
	}
	return f.Frames
}

// Format returns the file format implied by path's extension.
func Format(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	case ".sgf":
		return "sgf", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Load reads and validates the sequence stored at path.
func Load(path string) (types.Sequence, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	seq, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

// Parse decodes and validates a sequence in the given format.
func Parse(data []byte, format string) (types.Sequence, error) {
	var seq types.Sequence
	switch format {
	case "yaml":
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		seq = f.Frames
	case "json":
		var f File
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		seq = f.Frames
	case "sgf":
		var err error
		if seq, _, err = sgf.Replay(string(data)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return seq, nil
}

// Save writes seq to path as YAML, JSON or SGF depending on the extension.
func Save(path string, seq types.Sequence) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if err := seq.Validate(); err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f := File{Name: name, Komi: score.Komi, Frames: seq}

	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(&f)
	case "json":
		data, err = json.MarshalIndent(&f, "", "  ")
	case "sgf":
		var b strings.Builder
		err = sgf.WriteSequence(&b, seq, sgf.GameInfo{Komi: score.Komi, PlayerBlack: "Black", PlayerWhite: "White"})
		data = []byte(b.String())
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
