package analysis

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/trackeval/internal/bootstrap"
	"github.com/banshee-data/trackeval/internal/verify"
)

// BootstrapParams configures the confidence intervals of a scenario
// analysis.
type BootstrapParams struct {
	Reps    int
	Alpha   float64
	Seed    uint64
	Workers int
}

// DefaultBootstrapParams returns 100 repetitions at alpha 0.05.
func DefaultBootstrapParams() BootstrapParams {
	return BootstrapParams{Reps: 100, Alpha: 0.05, Seed: bootstrap.DefaultSeed}
}

// Scenario is a named group of simulations sharing generation parameters.
type Scenario struct {
	Name string
	Sims []SimulationInput
}

// ScenarioAnalysis holds a bootstrap summary per scenario, skill and
// tracker run.
type ScenarioAnalysis struct {
	Scenarios []string
	Skills    []verify.SkillName
	Trackers  []string
	results   [][][]bootstrap.Result // [scenario][skill][tracker]
}

// Result returns the summary for one cell.
func (s *ScenarioAnalysis) Result(scenario int, skill verify.SkillName, tracker string) (bootstrap.Result, error) {
	if scenario < 0 || scenario >= len(s.Scenarios) {
		return bootstrap.Result{}, fmt.Errorf("scenario index %d out of range", scenario)
	}
	k := slices.Index(s.Skills, skill)
	if k < 0 {
		return bootstrap.Result{}, fmt.Errorf("%w: %q", verify.ErrUnknownSkill, skill)
	}
	j := slices.Index(s.Trackers, tracker)
	if j < 0 {
		return bootstrap.Result{}, fmt.Errorf("%w: %q", ErrTrackerNotFound, tracker)
	}
	return s.results[scenario][k][j], nil
}

// Means returns the scenarios × trackers matrix of bootstrap means for
// skill, suitable for bootstrap.RankAgainst.
func (s *ScenarioAnalysis) Means(skill verify.SkillName) (*mat.Dense, error) {
	k := slices.Index(s.Skills, skill)
	if k < 0 {
		return nil, fmt.Errorf("%w: %q", verify.ErrUnknownSkill, skill)
	}
	m := mat.NewDense(len(s.Scenarios), len(s.Trackers), nil)
	for i := range s.Scenarios {
		for j := range s.Trackers {
			m.Set(i, j, s.results[i][k][j].Mean)
		}
	}
	return m, nil
}

// MultiScenarioAnalyze analyzes every scenario with MultiAnalyze and
// summarises each tracker's scores across the scenario's simulations with a
// bootstrap mean and confidence interval. Every column is resampled with the
// same seed, so trackers are compared on identical simulation draws.
func MultiScenarioAnalyze(scenarios []Scenario, skills []verify.SkillName, trackers []string,
	params BootstrapParams, opts Options) (*ScenarioAnalysis, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoSimulations
	}

	out := &ScenarioAnalysis{
		Scenarios: make([]string, len(scenarios)),
		Skills:    slices.Clone(skills),
		Trackers:  slices.Clone(trackers),
		results:   make([][][]bootstrap.Result, len(scenarios)),
	}
	for i, sc := range scenarios {
		m, err := MultiAnalyze(sc.Sims, skills, trackers, opts)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		out.Scenarios[i] = sc.Name
		out.results[i] = make([][]bootstrap.Result, len(skills))
		for k, skill := range skills {
			out.results[i][k] = make([]bootstrap.Result, len(trackers))
			for j, tracker := range trackers {
				res, err := m.Bootstrap(skill, tracker, params)
				if err != nil {
					return nil, fmt.Errorf("scenario %s, %s, %s: %w", sc.Name, skill, tracker, err)
				}
				out.results[i][k][j] = res
			}
		}
		logf("scenario %s: %d simulations", sc.Name, len(sc.Sims))
	}
	return out, nil
}

// Bootstrap summarises the scores of tracker across simulations for skill.
func (m *MultiAnalysis) Bootstrap(skill verify.SkillName, tracker string, params BootstrapParams) (bootstrap.Result, error) {
	col, err := m.Column(skill, tracker)
	if err != nil {
		return bootstrap.Result{}, err
	}
	return bootstrap.NewResampler(params.Seed, params.Workers).Bootstrap(col, params.Reps, params.Alpha)
}
