package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/banshee-data/trackeval/internal/analysis"
	"github.com/banshee-data/trackeval/internal/verify"
)

// EvalConfig holds the evaluation parameters shared by every trackeval
// subcommand. Nil fields fall back to the defaults returned by the Get*
// methods, so partial configs are safe.
type EvalConfig struct {
	// Matching
	ToleranceDecimals *int `json:"tolerance_decimals,omitempty"`

	// Bootstrap
	BootstrapReps *int     `json:"bootstrap_reps,omitempty"`
	CIAlpha       *float64 `json:"ci_alpha,omitempty"`
	Seed          *uint64  `json:"seed,omitempty"`

	// Execution
	Workers *int `json:"workers,omitempty"`

	// Reporting
	Skills       []string `json:"skills,omitempty"`
	ReferenceRun *string  `json:"reference_run,omitempty"` // empty compares against the first run
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }
func ptrUint64(v uint64) *uint64    { return &v }

// EmptyEvalConfig returns an EvalConfig with all fields unset.
func EmptyEvalConfig() *EvalConfig {
	return &EvalConfig{}
}

// DefaultEvalConfig returns an EvalConfig with every field set to its
// default value.
func DefaultEvalConfig() *EvalConfig {
	return &EvalConfig{
		ToleranceDecimals: ptrInt(verify.DefaultDecimals),
		BootstrapReps:     ptrInt(100),
		CIAlpha:           ptrFloat64(0.05),
		Seed:              ptrUint64(1),
		Workers:           ptrInt(runtime.GOMAXPROCS(0)),
		Skills:            []string{string(verify.SkillHSS), string(verify.SkillTSS)},
		ReferenceRun:      ptrString(""),
	}
}

// LoadEvalConfig loads an EvalConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadEvalConfig(path string) (*EvalConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
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

	cfg := EmptyEvalConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *EvalConfig) Validate() error {
	if c.ToleranceDecimals != nil {
		if *c.ToleranceDecimals < 0 || *c.ToleranceDecimals > 12 {
			return fmt.Errorf("tolerance_decimals must be between 0 and 12, got %d", *c.ToleranceDecimals)
		}
	}

	if c.BootstrapReps != nil && *c.BootstrapReps <= 0 {
		return fmt.Errorf("bootstrap_reps must be positive, got %d", *c.BootstrapReps)
	}

	if c.CIAlpha != nil {
		if *c.CIAlpha <= 0 || *c.CIAlpha >= 1 {
			return fmt.Errorf("ci_alpha must be in (0, 1), got %f", *c.CIAlpha)
		}
	}

	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}

	if _, err := verify.ParseSkills(c.Skills); err != nil {
		return fmt.Errorf("skills: %w", err)
	}

	return nil
}

// GetToleranceDecimals returns the tolerance_decimals value or the default.
func (c *EvalConfig) GetToleranceDecimals() int {
	if c.ToleranceDecimals == nil {
		return verify.DefaultDecimals
	}
	return *c.ToleranceDecimals
}

// GetBootstrapReps returns the bootstrap_reps value or the default.
func (c *EvalConfig) GetBootstrapReps() int {
	if c.BootstrapReps == nil {
		return 100 // default
	}
	return *c.BootstrapReps
}

// GetCIAlpha returns the ci_alpha value or the default.
func (c *EvalConfig) GetCIAlpha() float64 {
	if c.CIAlpha == nil {
		return 0.05 // default
	}
	return *c.CIAlpha
}

// GetSeed returns the seed value or the default.
func (c *EvalConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 1 // default
	}
	return *c.Seed
}

// GetWorkers returns the workers value, or GOMAXPROCS when unset or zero.
func (c *EvalConfig) GetWorkers() int {
	if c.Workers == nil || *c.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return *c.Workers
}

// GetSkills returns the configured skills, or HSS and TSS.
func (c *EvalConfig) GetSkills() []verify.SkillName {
	if len(c.Skills) == 0 {
		return []verify.SkillName{verify.SkillHSS, verify.SkillTSS}
	}
	skills, err := verify.ParseSkills(c.Skills)
	if err != nil {
		return []verify.SkillName{verify.SkillHSS, verify.SkillTSS}
	}
	return skills
}

// GetReferenceRun returns the reference_run value or "".
func (c *EvalConfig) GetReferenceRun() string {
	if c.ReferenceRun == nil {
		return ""
	}
	return *c.ReferenceRun
}

// AnalysisOptions converts the matching and execution settings.
func (c *EvalConfig) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Tolerance: verify.Tolerance{Decimals: c.GetToleranceDecimals()},
		Workers:   c.GetWorkers(),
	}
}

// BootstrapParams converts the bootstrap settings.
func (c *EvalConfig) BootstrapParams() analysis.BootstrapParams {
	return analysis.BootstrapParams{
		Reps:    c.GetBootstrapReps(),
		Alpha:   c.GetCIAlpha(),
		Seed:    c.GetSeed(),
		Workers: c.GetWorkers(),
	}
}
