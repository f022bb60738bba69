package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/banshee-data/trackeval/internal/analysis"
	"github.com/banshee-data/trackeval/internal/bootstrap"
	"github.com/banshee-data/trackeval/internal/monitoring"
)

// minScenarios is the fewest scenarios a comparison accepts.
const minScenarios = 2

func runScenarios(args []string, stdout io.Writer) error {
	var flags commonFlags
	var skillNames stringList
	fs := newFlagSet("scenarios", stdout)
	flags.register(fs)
	fs.Var(&skillNames, "skills", "Skill measures to use (comma separated); default from config")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < minScenarios {
		fmt.Fprintf(stdout, "Need at least %d scenarios to analyze\n", minScenarios)
		fmt.Fprintln(stdout, "Usage: trackeval scenarios [flags] MULTISIM MULTISIM...")
		fs.PrintDefaults()
		return errUsage
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	skills, err := parseSkills(skillNames, cfg)
	if err != nil {
		return err
	}

	dirs := make([]string, fs.NArg())
	for i, name := range fs.Args() {
		dirs[i] = filepath.Join(flags.dir, name)
	}
	common, err := analysis.ScenarioTrackRuns(dirs)
	if err != nil {
		return err
	}
	trackers, err := flags.selectTrackRuns(common)
	if err != nil {
		return err
	}

	scenarios := make([]analysis.Scenario, len(dirs))
	for i, dir := range dirs {
		if scenarios[i], err = analysis.LoadScenario(dir, trackers, cfg.GetWorkers()); err != nil {
			return err
		}
	}

	params := cfg.BootstrapParams()
	res, err := analysis.MultiScenarioAnalyze(scenarios, skills, trackers, params, cfg.AnalysisOptions())
	if err != nil {
		return err
	}

	ref := flags.referenceRun(cfg, trackers)
	fmt.Fprintf(stdout, "Scenarios: %s\n\n", strings.Join(res.Scenarios, ", "))
	for _, skill := range skills {
		if err := analysis.DisplayScenarioAnalysis(stdout, res, skill); err != nil {
			return err
		}
		if len(trackers) > 1 {
			means, err := res.Means(skill)
			if err != nil {
				return err
			}
			ranks, err := bootstrap.RankAgainst(means, trackers, ref)
			if err != nil {
				return err
			}
			if err := analysis.DisplayRanking(stdout, ranks); err != nil {
				return err
			}
		}
		fmt.Fprint(stdout, "\n\n")
	}

	store, closeStore, err := openStore(flags.dbPath)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return nil
	}

	runID, err := store.CreateRun(strings.Join(res.Scenarios, ","), "scenarios", runParams{
		Target: strings.Join(fs.Args(), ","), Skills: skills, Trackers: trackers, Reference: ref, Config: cfg,
	})
	if err != nil {
		return err
	}
	for i, scenario := range res.Scenarios {
		for _, skill := range skills {
			for _, tracker := range trackers {
				r, err := res.Result(i, skill, tracker)
				if err != nil {
					return err
				}
				if err := store.InsertBootstrap(runID, scenario, skill, tracker, r, params.Reps, params.Alpha); err != nil {
					return err
				}
			}
		}
	}
	monitoring.Logf("stored results as run %s", runID)
	return nil
}
