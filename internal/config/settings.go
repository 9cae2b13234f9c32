package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handiism/scale-sheets/internal/audio"
	ioutils "github.com/handiism/scale-sheets/internal/io"
	"github.com/handiism/scale-sheets/internal/lilypond"
	"github.com/handiism/scale-sheets/internal/model"
	"github.com/handiism/scale-sheets/internal/render"
	"github.com/handiism/scale-sheets/internal/theory"
)

// Settings holds all configuration options.
type Settings struct {
	// Scale settings
	Keys             []string `json:"keys" yaml:"keys"`
	ScaleTypes       []string `json:"scale_types" yaml:"scale_types"`
	Octaves          int      `json:"octaves" yaml:"octaves"`
	RelativeMinor    bool     `json:"relative_minor" yaml:"relative_minor"`
	SpellingPolicy   string   `json:"spelling_policy" yaml:"spelling_policy"` // key, sharp, flat
	DescendingSharps bool     `json:"descending_sharps" yaml:"descending_sharps"`

	// Document settings
	Title         string  `json:"title" yaml:"title"`
	Composer      string  `json:"composer" yaml:"composer"`
	Version       string  `json:"version" yaml:"version"`
	DetectVersion bool    `json:"detect_version" yaml:"detect_version"`
	Layout        string  `json:"layout" yaml:"layout"` // combined, single
	Tempo         int     `json:"tempo" yaml:"tempo"`
	LineWidth     float64 `json:"line_width" yaml:"line_width"`

	// Output naming
	OutputDir      string `json:"output_dir" yaml:"output_dir"`
	BaseName       string `json:"base_name" yaml:"base_name"`
	FileNameFormat string `json:"file_name_format" yaml:"file_name_format"`

	// Typesetter settings
	LilyPondPath string `json:"lilypond_path" yaml:"lilypond_path"`
	VerifyMIDI   bool   `json:"verify_midi" yaml:"verify_midi"`

	// Raster settings
	Rasterize        bool   `json:"rasterize" yaml:"rasterize"`
	PdftoppmPath     string `json:"pdftoppm_path" yaml:"pdftoppm_path"`
	DPI              int    `json:"dpi" yaml:"dpi"`
	ThumbnailMaxSize int    `json:"thumbnail_max_size" yaml:"thumbnail_max_size"`

	// Composite settings
	Composite    bool   `json:"composite" yaml:"composite"`
	Gutter       int    `json:"gutter" yaml:"gutter"`
	Caption      string `json:"caption" yaml:"caption"`
	Threshold    int    `json:"threshold" yaml:"threshold"`
	CaptionScale int    `json:"caption_scale" yaml:"caption_scale"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist" yaml:"create_playlist"`
	PlaylistFormat string `json:"playlist_format" yaml:"playlist_format"` // m3u, pls, wpl
	M3UExtended    bool   `json:"m3u_extended" yaml:"m3u_extended"`

	// Batch settings
	MaxConcurrentJobs int  `json:"max_concurrent_jobs" yaml:"max_concurrent_jobs"`
	ContinueOnError   bool `json:"continue_on_error" yaml:"continue_on_error"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Keys:             []string{"c"},
		ScaleTypes:       []string{"major", "minor"},
		Octaves:          2,
		RelativeMinor:    true,
		SpellingPolicy:   "key",
		DescendingSharps: false,

		Title:         "Practice Scales",
		Composer:      "Traditional",
		Version:       lilypond.DefaultVersion,
		DetectVersion: false,
		Layout:        "combined",
		Tempo:         60,
		LineWidth:     16,

		OutputDir:      ".",
		BaseName:       "combined_practice",
		FileNameFormat: "{base}_{key}",

		LilyPondPath: render.DefaultLilyPond,
		VerifyMIDI:   true,

		Rasterize:        false,
		PdftoppmPath:     render.DefaultPdftoppm,
		DPI:              render.DefaultDPI,
		ThumbnailMaxSize: 0,

		Composite:    false,
		Gutter:       ioutils.DefaultGutter,
		Caption:      ioutils.DefaultCaption,
		Threshold:    ioutils.DefaultThreshold,
		CaptionScale: ioutils.DefaultCaptionScale,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		MaxConcurrentJobs: 1,
		ContinueOnError:   false,
	}
}

// Load reads settings from a JSON or YAML file. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON. Fields missing from the
// file keep their defaults; a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate checks the settings before a run. Problems with scale input are
// model.KindValidation errors.
func (s *Settings) Validate() error {
	if err := (model.ScaleRequest{Octaves: s.Octaves}).Validate(); err != nil {
		return err
	}
	if len(s.Keys) == 0 {
		return model.NewError(model.KindValidation, "keys", fmt.Errorf("at least one key is required"))
	}
	if len(s.ScaleTypes) == 0 {
		return model.NewError(model.KindValidation, "scale types", fmt.Errorf("at least one scale type is required"))
	}
	gen, err := s.ToGenerator(nil)
	if err != nil {
		return err
	}
	for _, name := range s.ScaleTypes {
		if _, err := gen.ScaleType(name); err != nil {
			return err
		}
	}
	if _, err := s.ToFormatOptions(); err != nil {
		return model.NewError(model.KindValidation, "layout", err)
	}
	if len(s.Keys) > 1 && !strings.Contains(s.FileNameFormat, "{key}") {
		return model.NewError(model.KindValidation, "file name format",
			fmt.Errorf("%q must contain {key} when generating %d keys", s.FileNameFormat, len(s.Keys)))
	}
	if s.Composite && !s.Rasterize {
		return model.NewError(model.KindValidation, "composite", fmt.Errorf("compositing needs rasterize enabled"))
	}
	if s.MaxConcurrentJobs < 1 {
		return model.NewError(model.KindValidation, "max concurrent jobs", fmt.Errorf("must be at least 1, got %d", s.MaxConcurrentJobs))
	}
	return nil
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		OutputDir:      s.OutputDir,
		FileNameFormat: s.FileNameFormat,
		BaseName:       s.BaseName,
	}
}

// ToFormatOptions converts settings to formatter options.
func (s *Settings) ToFormatOptions() (lilypond.Options, error) {
	layout, err := lilypond.ParseLayout(s.Layout)
	if err != nil {
		return lilypond.Options{}, err
	}
	return lilypond.Options{
		Version:          s.Version,
		Layout:           layout,
		Tempo:            s.Tempo,
		DescendingSharps: s.DescendingSharps,
		LineWidth:        s.LineWidth,
	}, nil
}

// ToGenerator builds the scale generator: all three scale types and the
// configured spelling policy.
func (s *Settings) ToGenerator(resolver *theory.Resolver) (*theory.Generator, error) {
	policy, err := theory.ParseSpellingPolicy(s.SpellingPolicy)
	if err != nil {
		return nil, model.NewError(model.KindValidation, "spelling policy", err)
	}
	return theory.NewGenerator(theory.DefaultScaleTypes(), policy, resolver), nil
}

// ToCompositorConfig converts settings to compositor options.
func (s *Settings) ToCompositorConfig() ioutils.CompositorConfig {
	threshold := s.Threshold
	if threshold <= 0 || threshold > 255 {
		threshold = ioutils.DefaultThreshold
	}
	return ioutils.CompositorConfig{
		Gutter:       s.Gutter,
		Threshold:    uint8(threshold),
		Caption:      s.Caption,
		CaptionScale: s.CaptionScale,
	}
}

// ToPlaylistFormat converts the playlist format name.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	return audio.ParsePlaylistFormat(s.PlaylistFormat)
}
