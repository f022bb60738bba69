package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/trackeval/internal/analysis"
	"github.com/banshee-data/trackeval/internal/bootstrap"
	"github.com/banshee-data/trackeval/internal/config"
	"github.com/banshee-data/trackeval/internal/db"
	"github.com/banshee-data/trackeval/internal/monitoring"
	"github.com/banshee-data/trackeval/internal/storage/sqlite"
	"github.com/banshee-data/trackeval/internal/verify"
)

// runParams is stored with every persisted run.
type runParams struct {
	Target    string             `json:"target"`
	Skills    []verify.SkillName `json:"skills"`
	Trackers  []string           `json:"trackers"`
	Reference string             `json:"reference,omitempty"`
	Config    *config.EvalConfig `json:"config"`
}

// openStore opens the results database when a path was given.
func openStore(path string) (*sqlite.ScoreStore, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	database, err := db.NewDB(path)
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewScoreStore(database.DB), func() { database.Close() }, nil
}

func runAnalyze(args []string, stdout io.Writer) error {
	var flags commonFlags
	fs := newFlagSet("analyze", stdout)
	flags.register(fs)
	showTables := fs.Bool("tables", false, "Print the contingency table of every tracker run")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stdout, "Usage: trackeval analyze [flags] SIMNAME SKILL...")
		fs.PrintDefaults()
		return errUsage
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	skills, err := parseSkills(fs.Args()[1:], cfg)
	if err != nil {
		return err
	}

	simName := fs.Arg(0)
	simDir := filepath.Join(flags.dir, simName)
	available, err := analysis.SimulationTrackRuns(simDir)
	if err != nil {
		return err
	}
	trackers, err := flags.selectTrackRuns(available)
	if err != nil {
		return err
	}

	sim, err := analysis.LoadSimulation(simDir, trackers)
	if err != nil {
		return err
	}
	table, err := analysis.AnalyzeTrackings(sim.Truth, sim.Runs, skills, cfg.AnalysisOptions())
	if err != nil {
		return err
	}

	if *showTables {
		tol := cfg.AnalysisOptions().Tolerance
		for _, run := range sim.Runs {
			fmt.Fprintf(stdout, "%s\n%s\n", run.Name, analysis.Evaluate(sim.Truth, run, tol).Format())
		}
	}

	view := table.ForSimulation(simName)
	for _, skill := range skills {
		fmt.Fprintf(stdout, "%s\n", skill)
		if err := analysis.DisplaySkillScores(stdout, view, skill, cfg.BootstrapParams()); err != nil {
			return err
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

	runID, err := store.CreateRun(simName, "analyze", runParams{
		Target: simName, Skills: skills, Trackers: trackers, Config: cfg,
	})
	if err != nil {
		return err
	}
	if err := store.InsertScores(runID, "", simName, table); err != nil {
		return err
	}
	monitoring.Logf("stored results as run %s", runID)
	return nil
}

func runMulti(args []string, stdout io.Writer) error {
	var flags commonFlags
	fs := newFlagSet("multi", stdout)
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stdout, "Usage: trackeval multi [flags] MULTISIM SKILL...")
		fs.PrintDefaults()
		return errUsage
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	skills, err := parseSkills(fs.Args()[1:], cfg)
	if err != nil {
		return err
	}

	multiSim := fs.Arg(0)
	multiDir := filepath.Join(flags.dir, multiSim)
	available, err := analysis.MultiSimTrackRuns(multiDir)
	if err != nil {
		return err
	}
	trackers, err := flags.selectTrackRuns(available)
	if err != nil {
		return err
	}

	sc, err := analysis.LoadScenario(multiDir, trackers, cfg.GetWorkers())
	if err != nil {
		return err
	}
	m, err := analysis.MultiAnalyze(sc.Sims, skills, trackers, cfg.AnalysisOptions())
	if err != nil {
		return err
	}

	ref := flags.referenceRun(cfg, trackers)
	params := cfg.BootstrapParams()
	for _, skill := range skills {
		fmt.Fprintf(stdout, "%s\n", skill)
		if err := analysis.DisplaySkillScores(stdout, m, skill, params); err != nil {
			return err
		}
		if len(trackers) > 1 {
			scores, err := m.Scores(skill)
			if err != nil {
				return err
			}
			ranks, err := bootstrap.RankAgainst(scores, trackers, ref)
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

	runID, err := store.CreateRun(multiSim, "multi", runParams{
		Target: multiSim, Skills: skills, Trackers: trackers, Reference: ref, Config: cfg,
	})
	if err != nil {
		return err
	}
	for i, simName := range m.Sims {
		table, err := m.Simulation(i)
		if err != nil {
			return err
		}
		if err := store.InsertScores(runID, sc.Name, simName, table); err != nil {
			return err
		}
	}
	for _, skill := range skills {
		for _, tracker := range trackers {
			res, err := m.Bootstrap(skill, tracker, params)
			if err != nil {
				return err
			}
			if err := store.InsertBootstrap(runID, sc.Name, skill, tracker, res, params.Reps, params.Alpha); err != nil {
				return err
			}
		}
	}
	monitoring.Logf("stored results as run %s", runID)
	return nil
}
