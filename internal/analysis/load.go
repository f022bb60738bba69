package analysis

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/trackeval/internal/security"
	"github.com/banshee-data/trackeval/internal/trackfile"
)

// LoadSimulation reads the truth and the results of the requested tracker
// runs from simDir. A nil trackers list loads every run named in the
// simulation parameters.
func LoadSimulation(simDir string, trackers []string) (SimulationInput, error) {
	params, err := trackfile.ReadSimParams(simDir)
	if err != nil {
		return SimulationInput{}, err
	}
	if trackers == nil {
		trackers = params.Trackers
	}

	sim := SimulationInput{Name: filepath.Base(simDir), Runs: make([]TrackerRun, len(trackers))}
	truthPath := params.TruthPath(simDir)
	if err := security.ValidatePathWithinDirectory(truthPath, simDir); err != nil {
		return SimulationInput{}, fmt.Errorf("simulation %s truth: %w", sim.Name, err)
	}
	sim.Truth.Tracks, sim.Truth.Falarms, err = trackfile.LoadTracks(truthPath)
	if err != nil {
		return SimulationInput{}, fmt.Errorf("simulation %s truth: %w", sim.Name, err)
	}

	for i, name := range trackers {
		resultPath := params.ResultPath(simDir, name)
		if err := security.ValidatePathWithinDirectory(resultPath, simDir); err != nil {
			return SimulationInput{}, fmt.Errorf("simulation %s, tracker %q: %w", sim.Name, name, err)
		}
		trks, falarms, err := trackfile.LoadTracks(resultPath)
		if err != nil {
			return SimulationInput{}, fmt.Errorf("simulation %s, %w: %q: %w", sim.Name, ErrTrackerNotFound, name, err)
		}
		sim.Runs[i] = TrackerRun{Name: name, Tracks: trks, Falarms: falarms}
	}
	return sim, nil
}

// SimulationTrackRuns lists the tracker runs recorded for simDir.
func SimulationTrackRuns(simDir string) ([]string, error) {
	params, err := trackfile.ReadSimParams(simDir)
	if err != nil {
		return nil, err
	}
	return params.Trackers, nil
}

// MultiSimTrackRuns returns the tracker runs common to every simulation of
// the scenario in multiDir.
func MultiSimTrackRuns(multiDir string) ([]string, error) {
	params, err := trackfile.ReadMultiSimParams(multiDir)
	if err != nil {
		return nil, err
	}
	sets := make([][]string, params.SimCnt)
	for i, name := range params.SubSimNames() {
		if sets[i], err = SimulationTrackRuns(filepath.Join(multiDir, name)); err != nil {
			return nil, err
		}
	}
	return CommonTrackRuns(sets), nil
}

// ScenarioTrackRuns returns the tracker runs common to every scenario.
func ScenarioTrackRuns(multiDirs []string) ([]string, error) {
	sets := make([][]string, len(multiDirs))
	for i, dir := range multiDirs {
		runs, err := MultiSimTrackRuns(dir)
		if err != nil {
			return nil, err
		}
		sets[i] = runs
	}
	return CommonTrackRuns(sets), nil
}

// LoadScenario reads every simulation of the scenario in multiDir,
// concurrently and bounded by workers.
func LoadScenario(multiDir string, trackers []string, workers int) (Scenario, error) {
	params, err := trackfile.ReadMultiSimParams(multiDir)
	if err != nil {
		return Scenario{}, err
	}

	sc := Scenario{Name: filepath.Base(multiDir), Sims: make([]SimulationInput, params.SimCnt)}
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, name := range params.SubSimNames() {
		g.Go(func() error {
			sim, err := LoadSimulation(filepath.Join(multiDir, name), trackers)
			if err != nil {
				return err
			}
			sc.Sims[i] = sim
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	logf("loaded scenario %s (%d simulations)", sc.Name, len(sc.Sims))
	return sc, nil
}
