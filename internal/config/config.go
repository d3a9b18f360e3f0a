package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and warp settings.
type Config struct {
	// Paths
	BoundaryJSON  string `json:"boundary_json"`
	ReferenceJSON string `json:"reference_json"`
	TrackJSON     string `json:"track_json"`
	Texture       string `json:"texture"`
	OutputDir     string `json:"output_dir"`

	// Mesh / solver settings. Segments is the maximum segment count
	// of the boundary resampling; HandleWeight trades handle tracking
	// against local rigidity.
	Segments     int     `json:"segments"`
	HandleWeight float64 `json:"handle_weight"`

	// Output settings
	CanvasWidth  int     `json:"canvas_width"`
	CanvasHeight int     `json:"canvas_height"`
	Supersample  int     `json:"supersample"`
	SmoothAlpha  float64 `json:"smooth_alpha"`
	Workers      int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Segments  int
	Weight    float64
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Segments > 0 {
		c.Segments = flags.Segments
	}
	if flags.Weight > 0 {
		c.HandleWeight = flags.Weight
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.Segments <= 0 {
		c.Segments = 24
	}
	if c.HandleWeight <= 0 {
		c.HandleWeight = 1000
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	// CanvasWidth/CanvasHeight of 0 mean "use the texture size";
	// resolved by the caller once the texture is decoded.
}
