package trackfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/trackeval/internal/security"
)

const (
	// SimParamsFile is the parameter file inside every simulation directory.
	SimParamsFile = "simParams.json"
	// MultiSimParamsFile is the parameter file of a multi-simulation scenario.
	MultiSimParamsFile = "MultiSim.json"
)

// maxParamsSize bounds parameter files; they only carry a handful of fields.
const maxParamsSize = 1 * 1024 * 1024

// ErrInvalidParams is wrapped by parameter validation failures.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// SimParams describes one simulation: where its truth lives and which
// tracker runs produced results for it.
type SimParams struct {
	TrackFile      string   `json:"trackFile,omitempty"`
	NoisyTrackFile string   `json:"noisyTrackFile"`
	ResultFile     string   `json:"resultFile"`
	Trackers       []string `json:"trackers"`
	FrameCnt       int      `json:"frameCnt,omitempty"`
	Seed           int64    `json:"seed,omitempty"`
}

// Validate checks the fields needed to locate truth and results.
func (p *SimParams) Validate() error {
	if p.NoisyTrackFile == "" {
		return fmt.Errorf("%w: noisyTrackFile is required", ErrInvalidParams)
	}
	if p.ResultFile == "" {
		return fmt.Errorf("%w: resultFile is required", ErrInvalidParams)
	}
	if err := security.ValidateFileName(p.NoisyTrackFile); err != nil {
		return fmt.Errorf("%w: noisyTrackFile: %w", ErrInvalidParams, err)
	}
	for _, tracker := range p.Trackers {
		if err := security.ValidateFileName(p.ResultFile + "_" + tracker); err != nil {
			return fmt.Errorf("%w: tracker: %w", ErrInvalidParams, err)
		}
	}
	return nil
}

// ResultPath returns the track file written by tracker in simDir.
func (p *SimParams) ResultPath(simDir, tracker string) string {
	return filepath.Join(simDir, p.ResultFile+"_"+tracker)
}

// TruthPath returns the ground-truth track file in simDir.
func (p *SimParams) TruthPath(simDir string) string {
	return filepath.Join(simDir, p.NoisyTrackFile)
}

// MultiSimParams describes a scenario made of SimCnt simulations stored in
// numbered sub-directories.
type MultiSimParams struct {
	SimCnt     int    `json:"simCnt"`
	GlobalSeed int64  `json:"globalSeed"`
	SimName    string `json:"simName"`
}

// Validate rejects scenarios without simulations.
func (p *MultiSimParams) Validate() error {
	if p.SimCnt <= 0 {
		return fmt.Errorf("%w: simCnt must be positive, got %d", ErrInvalidParams, p.SimCnt)
	}
	return nil
}

// SubSimName names the directory of the i-th simulation of a scenario.
func SubSimName(i int) string {
	return fmt.Sprintf("%03d", i)
}

// SubSimNames lists the directories of every simulation of the scenario.
func (p *MultiSimParams) SubSimNames() []string {
	names := make([]string, p.SimCnt)
	for i := range names {
		names[i] = SubSimName(i)
	}
	return names
}

// ReadSimParams loads simParams.json from simDir.
func ReadSimParams(simDir string) (*SimParams, error) {
	var p SimParams
	if err := readParams(filepath.Join(simDir, SimParamsFile), &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", simDir, err)
	}
	return &p, nil
}

// WriteSimParams stores p as simParams.json in simDir.
func WriteSimParams(simDir string, p *SimParams) error {
	return writeJSON(filepath.Join(simDir, SimParamsFile), p)
}

// ReadMultiSimParams loads MultiSim.json from multiDir.
func ReadMultiSimParams(multiDir string) (*MultiSimParams, error) {
	var p MultiSimParams
	if err := readParams(filepath.Join(multiDir, MultiSimParamsFile), &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", multiDir, err)
	}
	return &p, nil
}

// WriteMultiSimParams stores p as MultiSim.json in multiDir.
func WriteMultiSimParams(multiDir string, p *MultiSimParams) error {
	return writeJSON(filepath.Join(multiDir, MultiSimParamsFile), p)
}

func readParams(path string, v any) error {
	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to stat params file: %w", err)
	}
	if info.Size() > maxParamsSize {
		return fmt.Errorf("params file too large: %d bytes (max %d)", info.Size(), maxParamsSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to read params file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse params file %s: %w", path, err)
	}
	return nil
}
