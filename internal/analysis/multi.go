package analysis

import (
	"errors"
	"fmt"
	"path"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/trackeval/internal/verify"
)

// ErrNoSimulations is returned when a multi-simulation analysis has no input.
var ErrNoSimulations = errors.New("no simulations to analyze")

// SimulationInput is the truth and tracker output of one simulation.
type SimulationInput struct {
	Name  string
	Truth TrackSet
	Runs  []TrackerRun
}

// selectRuns returns the runs named by trackers, in that order.
func (s SimulationInput) selectRuns(trackers []string) ([]TrackerRun, error) {
	out := make([]TrackerRun, len(trackers))
	for i, name := range trackers {
		k := slices.IndexFunc(s.Runs, func(r TrackerRun) bool { return r.Name == name })
		if k < 0 {
			return nil, fmt.Errorf("simulation %s: %w: %q", s.Name, ErrTrackerNotFound, name)
		}
		out[i] = s.Runs[k]
	}
	return out, nil
}

// MultiAnalysis holds, for every skill, a simulations × trackers score
// matrix.
type MultiAnalysis struct {
	Sims     []string
	Skills   []verify.SkillName
	Trackers []string
	scores   map[verify.SkillName]*mat.Dense
}

// Scores returns a copy of the simulations × trackers matrix for skill.
func (m *MultiAnalysis) Scores(skill verify.SkillName) (*mat.Dense, error) {
	s, ok := m.scores[skill]
	if !ok {
		return nil, fmt.Errorf("%w: %q", verify.ErrUnknownSkill, skill)
	}
	return mat.DenseCopyOf(s), nil
}

// Column returns the scores of tracker across simulations for skill.
func (m *MultiAnalysis) Column(skill verify.SkillName, tracker string) ([]float64, error) {
	s, ok := m.scores[skill]
	if !ok {
		return nil, fmt.Errorf("%w: %q", verify.ErrUnknownSkill, skill)
	}
	j := slices.Index(m.Trackers, tracker)
	if j < 0 {
		return nil, fmt.Errorf("%w: %q", ErrTrackerNotFound, tracker)
	}
	return mat.Col(nil, j, s), nil
}

// MultiAnalyze runs AnalyzeTrackings on every simulation for the given
// trackers and stacks the results per skill.
func MultiAnalyze(sims []SimulationInput, skills []verify.SkillName, trackers []string, opts Options) (*MultiAnalysis, error) {
	if len(sims) == 0 {
		return nil, ErrNoSimulations
	}
	if len(skills) == 0 || len(trackers) == 0 {
		return nil, ErrEmptyAnalysis
	}

	m := &MultiAnalysis{
		Sims:     make([]string, len(sims)),
		Skills:   slices.Clone(skills),
		Trackers: slices.Clone(trackers),
		scores:   make(map[verify.SkillName]*mat.Dense, len(skills)),
	}
	for _, s := range skills {
		m.scores[s] = mat.NewDense(len(sims), len(trackers), nil)
	}

	for i, sim := range sims {
		runs, err := sim.selectRuns(trackers)
		if err != nil {
			return nil, err
		}
		table, err := AnalyzeTrackings(sim.Truth, runs, skills, opts)
		if err != nil {
			return nil, fmt.Errorf("simulation %s: %w", sim.Name, err)
		}
		m.Sims[i] = sim.Name
		for k, s := range skills {
			m.scores[s].SetRow(i, mat.Row(nil, k, table.scores))
		}
	}
	logf("analyzed %d simulations x %d tracker runs", len(sims), len(trackers))
	return m, nil
}

// CommonTrackRuns returns, sorted, the tracker runs present in every set.
func CommonTrackRuns(sets [][]string) []string {
	if len(sets) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, set := range sets {
		seen := make(map[string]bool, len(set))
		for _, name := range set {
			if !seen[name] {
				seen[name] = true
				counts[name]++
			}
		}
	}

	var common []string
	for name, n := range counts {
		if n == len(sets) {
			common = append(common, name)
		}
	}
	slices.Sort(common)
	return common
}

// ExpandTrackRuns selects the runs in all matched by requested glob
// patterns (path.Match syntax). Matches are returned in request order
// without duplicates; an empty request selects all.
func ExpandTrackRuns(all, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return slices.Clone(all), nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, pattern := range requested {
		for _, name := range all {
			ok, err := path.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("tracker pattern %q: %w", pattern, err)
			}
			if ok && !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out, nil
}

// Simulation returns the skill score table of the i-th simulation.
func (m *MultiAnalysis) Simulation(i int) (*SkillScoreTable, error) {
	if i < 0 || i >= len(m.Sims) {
		return nil, fmt.Errorf("simulation index %d out of range", i)
	}
	table, err := NewSkillScoreTable(m.Skills, m.Trackers)
	if err != nil {
		return nil, err
	}
	for k, s := range m.Skills {
		table.scores.SetRow(k, mat.Row(nil, i, m.scores[s]))
	}
	return table, nil
}
