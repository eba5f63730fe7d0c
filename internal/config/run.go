package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical run defaults file.
const DefaultConfigPath = "config/kmeans.defaults.json"

// Prompt modes for the interactive seed prompt.
const (
	PromptAuto   = "auto"   // ask only when stdin is a terminal
	PromptAlways = "always" // always ask
	PromptNever  = "never"  // never ask; use seed_indices or random seeding
)

// RunConfig holds the settings of one clustering run. Every field is optional;
// Get* methods supply the default for fields left unset. Command line flags
// take precedence over values loaded from a file.
type RunConfig struct {
	Clusters    *int   `json:"clusters,omitempty"`
	SeedIndices []int  `json:"seed_indices,omitempty"`
	RandomSeed  *int64 `json:"random_seed,omitempty"`
	MaxPoints   *int   `json:"max_points,omitempty"`

	// Outputs. Empty plot/chart/db paths disable that output.
	OutputPath *string `json:"output_path,omitempty"`
	PlotPath   *string `json:"plot_path,omitempty"`
	ChartPath  *string `json:"chart_path,omitempty"`
	DBPath     *string `json:"db_path,omitempty"`

	Prompt *string `json:"prompt,omitempty"`
	Debug  *bool   `json:"debug,omitempty"`
}

// Helper functions to create pointers
func ptrInt(v int) *int          { return &v }
func ptrInt64(v int64) *int64    { return &v }
func ptrString(v string) *string { return &v }
func ptrBool(v bool) *bool       { return &v }

// EmptyRunConfig returns a RunConfig with all fields unset.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root. Panics if the file
// cannot be loaded; intended for test setup.
func MustLoadDefaultConfig() *RunConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from cmd/
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadRunConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *RunConfig) Validate() error {
	if c.Clusters != nil && *c.Clusters < 0 {
		return fmt.Errorf("clusters must be non-negative, got %d", *c.Clusters)
	}
	if c.MaxPoints != nil && *c.MaxPoints < 0 {
		return fmt.Errorf("max_points must be non-negative, got %d", *c.MaxPoints)
	}
	if c.Prompt != nil {
		switch *c.Prompt {
		case PromptAuto, PromptAlways, PromptNever:
		default:
			return fmt.Errorf("prompt must be one of %q, %q, %q, got %q", PromptAuto, PromptAlways, PromptNever, *c.Prompt)
		}
	}
	if c.OutputPath != nil && *c.OutputPath == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	return nil
}

// Merge overlays every field set in o onto c.
func (c *RunConfig) Merge(o *RunConfig) {
	if o == nil {
		return
	}
	if o.Clusters != nil {
		c.Clusters = o.Clusters
	}
	if o.SeedIndices != nil {
		c.SeedIndices = append([]int(nil), o.SeedIndices...)
	}
	if o.RandomSeed != nil {
		c.RandomSeed = o.RandomSeed
	}
	if o.MaxPoints != nil {
		c.MaxPoints = o.MaxPoints
	}
	if o.OutputPath != nil {
		c.OutputPath = o.OutputPath
	}
	if o.PlotPath != nil {
		c.PlotPath = o.PlotPath
	}
	if o.ChartPath != nil {
		c.ChartPath = o.ChartPath
	}
	if o.DBPath != nil {
		c.DBPath = o.DBPath
	}
	if o.Prompt != nil {
		c.Prompt = o.Prompt
	}
	if o.Debug != nil {
		c.Debug = o.Debug
	}
}

// GetClusters returns the clusters value or 0 when unset.
func (c *RunConfig) GetClusters() int {
	if c.Clusters == nil {
		return 0
	}
	return *c.Clusters
}

// GetRandomSeed returns the random_seed value or 0 (time based) when unset.
func (c *RunConfig) GetRandomSeed() int64 {
	if c.RandomSeed == nil {
		return 0
	}
	return *c.RandomSeed
}

// GetMaxPoints returns the max_points value or 0 (unlimited) when unset.
func (c *RunConfig) GetMaxPoints() int {
	if c.MaxPoints == nil {
		return 0
	}
	return *c.MaxPoints
}

// GetOutputPath returns the output_path value or the default report path.
func (c *RunConfig) GetOutputPath() string {
	if c.OutputPath == nil {
		return "kmeans-output.txt"
	}
	return *c.OutputPath
}

// GetPlotPath returns the plot_path value or "" (disabled).
func (c *RunConfig) GetPlotPath() string {
	if c.PlotPath == nil {
		return ""
	}
	return *c.PlotPath
}

// GetChartPath returns the chart_path value or "" (disabled).
func (c *RunConfig) GetChartPath() string {
	if c.ChartPath == nil {
		return ""
	}
	return *c.ChartPath
}

// GetDBPath returns the db_path value or "" (disabled).
func (c *RunConfig) GetDBPath() string {
	if c.DBPath == nil {
		return ""
	}
	return *c.DBPath
}

// GetPrompt returns the prompt mode or PromptAuto.
func (c *RunConfig) GetPrompt() string {
	if c.Prompt == nil {
		return PromptAuto
	}
	return *c.Prompt
}

// GetDebug returns the debug value or false.
func (c *RunConfig) GetDebug() bool {
	if c.Debug == nil {
		return false
	}
	return *c.Debug
}
