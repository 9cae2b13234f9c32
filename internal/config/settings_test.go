package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/handiism/scale-sheets/internal/audio"
	"github.com/handiism/scale-sheets/internal/lilypond"
	"github.com/handiism/scale-sheets/internal/model"
)

func TestDefaultSettings_Valid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.Octaves != 2 || settings.BaseName != "combined_practice" {
		t.Errorf("missing file should yield defaults, got %+v", settings)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	content := "keys: [g, eb]\nscale_types: [major, harmonic_minor]\noctaves: 3\nlayout: single\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !slices.Equal(settings.Keys, []string{"g", "eb"}) {
		t.Errorf("Keys = %v", settings.Keys)
	}
	if settings.Octaves != 3 {
		t.Errorf("Octaves = %d, want 3", settings.Octaves)
	}
	// Unset fields keep their defaults.
	if settings.Title != "Practice Scales" {
		t.Errorf("Title = %q, want default", settings.Title)
	}
	opts, err := settings.ToFormatOptions()
	if err != nil || opts.Layout != lilypond.LayoutSingle {
		t.Errorf("ToFormatOptions() = %+v, %v", opts, err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"settings.json", "settings.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			settings := DefaultSettings()
			settings.Keys = []string{"f#", "db"}
			settings.Composite = true
			settings.Rasterize = true

			if err := settings.Save(path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !slices.Equal(loaded.Keys, settings.Keys) || !loaded.Composite || !loaded.Rasterize {
				t.Errorf("loaded settings differ: %+v", loaded)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Settings)
		wantErr error
	}{
		{"octaves too high", func(s *Settings) { s.Octaves = 5 }, model.ErrInvalidOctaves},
		{"octaves zero", func(s *Settings) { s.Octaves = 0 }, model.ErrInvalidOctaves},
		{"unknown scale type", func(s *Settings) { s.ScaleTypes = []string{"major", "lydian"} }, model.ErrUnknownScaleType},
		{"no keys", func(s *Settings) { s.Keys = nil }, nil},
		{"bad policy", func(s *Settings) { s.SpellingPolicy = "dutch" }, nil},
		{"bad layout", func(s *Settings) { s.Layout = "grid" }, nil},
		{"keys collide", func(s *Settings) { s.Keys = []string{"c", "g"}; s.FileNameFormat = "{base}" }, nil},
		{"composite without raster", func(s *Settings) { s.Composite = true }, nil},
		{"no workers", func(s *Settings) { s.MaxConcurrentJobs = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.modify(settings)

			err := settings.Validate()
			if !model.IsKind(err, model.KindValidation) {
				t.Fatalf("Validate() = %v, want validation error", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConverters(t *testing.T) {
	settings := DefaultSettings()
	settings.OutputDir = "/tmp/out"
	settings.Threshold = 900
	settings.PlaylistFormat = "pls"

	pc := settings.ToPathConfig()
	if pc.OutputDir != "/tmp/out" || pc.BaseName != "combined_practice" || pc.FileNameFormat != "{base}_{key}" {
		t.Errorf("ToPathConfig() = %+v", pc)
	}
	if cc := settings.ToCompositorConfig(); cc.Threshold != 200 || cc.Gutter != 100 {
		t.Errorf("ToCompositorConfig() = %+v", cc)
	}
	if settings.ToPlaylistFormat() != audio.FormatPLS {
		t.Error("ToPlaylistFormat() should parse pls")
	}

	settings.SpellingPolicy = "flat"
	gen, err := settings.ToGenerator(nil)
	if err != nil {
		t.Fatalf("ToGenerator failed: %v", err)
	}
	if gen.Table("g").Name() != "flat" {
		t.Error("flat policy should always pick the flat table")
	}
}
