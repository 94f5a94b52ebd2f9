package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for segmentation, replay and the UI.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Segmentation parameters
	Threshold int     `json:"threshold"` // intensity at or below which a pixel is foreground
	MinArea   float64 `json:"min_area"`
	MinWidth  int     `json:"min_width"`
	MinHeight int     `json:"min_height"`
	RowBucket int     `json:"row_bucket"` // vertical tolerance (px) for grouping regions into one row
	Margin    int     `json:"margin"`     // inset trimmed from each side of a crop

	// Replay parameters
	GridWidth    int `json:"grid_width"`
	StartDelayMs int `json:"start_delay_ms"`
	StepDelayMs  int `json:"step_delay_ms"`

	// UI
	GalleryColumns int `json:"gallery_columns"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		Threshold:      250,
		MinArea:        1000,
		MinWidth:       50,
		MinHeight:      50,
		RowBucket:      100,
		Margin:         2,
		GridWidth:      3,
		StartDelayMs:   3000,
		StepDelayMs:    500,
		GalleryColumns: 3,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.Threshold < 0 || c.Threshold > 255 {
		c.Threshold = d.Threshold
	}
	if c.MinArea < 0 {
		c.MinArea = d.MinArea
	}
	if c.MinWidth < 0 {
		c.MinWidth = d.MinWidth
	}
	if c.MinHeight < 0 {
		c.MinHeight = d.MinHeight
	}
	if c.RowBucket <= 0 {
		c.RowBucket = d.RowBucket
	}
	if c.Margin < 0 {
		c.Margin = d.Margin
	}
	if c.GridWidth <= 0 {
		c.GridWidth = d.GridWidth
	}
	if c.StartDelayMs < 0 {
		c.StartDelayMs = d.StartDelayMs
	}
	if c.StepDelayMs < 0 {
		c.StepDelayMs = d.StepDelayMs
	}
	if c.GalleryColumns <= 0 {
		c.GalleryColumns = d.GalleryColumns
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
