// Package config provides configuration management for scale-sheets.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Validation before a run
//   - Conversion to the option types of other packages
//
// # Default Settings
//
// Use DefaultSettings() to get the classic single-key practice sheet:
//
//	settings := config.DefaultSettings()
//	// Key C, major and relative minor, 2 octaves
//	// Output ./combined_practice_c.{ly,pdf,midi}
//
// # Loading from File
//
//	settings, err := config.Load("scales.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// A YAML plan for a batch of keys:
//
//	keys: [c, g, d, f, bb]
//	scale_types: [major, harmonic_minor]
//	octaves: 2
//	rasterize: true
//	composite: true
//
// # Saving Settings
//
//	settings.Octaves = 3
//	err := settings.Save("scales.json")
package config
