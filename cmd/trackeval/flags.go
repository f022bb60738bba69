package main

import (
	"flag"
	"io"
	"slices"
	"strings"

	"github.com/banshee-data/trackeval/internal/analysis"
	"github.com/banshee-data/trackeval/internal/config"
	"github.com/banshee-data/trackeval/internal/monitoring"
	"github.com/banshee-data/trackeval/internal/verify"
)

const defaultDBPath = "trackeval.db"

// stringList collects a repeatable, comma separated flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*l = append(*l, s)
		}
	}
	return nil
}

// commonFlags are shared by the analysis commands.
type commonFlags struct {
	dir        string
	trackRuns  stringList
	configPath string
	dbPath     string
	reference  string
	quiet      bool
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.dir, "dir", ".", "Base directory holding the simulations")
	fs.Var(&c.trackRuns, "t", "Tracker runs to analyze (repeatable, comma separated, glob patterns allowed); all when omitted")
	fs.StringVar(&c.configPath, "config", "", "Path to a JSON evaluation config")
	fs.StringVar(&c.dbPath, "db", "", "Store results in this SQLite database")
	fs.StringVar(&c.reference, "ref", "", "Tracker run to rank the others against (default from config, else the first run)")
	fs.BoolVar(&c.quiet, "quiet", false, "Suppress diagnostic logging")
}

// loadConfig returns the evaluation config named by -config, or defaults.
func (c *commonFlags) loadConfig() (*config.EvalConfig, error) {
	if c.quiet {
		monitoring.SetLogger(nil)
	}
	if c.configPath == "" {
		return config.EmptyEvalConfig(), nil
	}
	return config.LoadEvalConfig(c.configPath)
}

// selectTrackRuns expands -t against the available runs. When the user's
// patterns expanded to a different number of runs the result is sorted;
// otherwise the requested order is kept.
func (c *commonFlags) selectTrackRuns(available []string) ([]string, error) {
	runs, err := analysis.ExpandTrackRuns(available, c.trackRuns)
	if err != nil {
		return nil, err
	}
	if len(c.trackRuns) > 0 && len(c.trackRuns) != len(runs) {
		slices.Sort(runs)
	}
	if len(runs) == 0 {
		return nil, analysis.ErrTrackerNotFound
	}
	return runs, nil
}

// referenceRun picks the run others are ranked against.
func (c *commonFlags) referenceRun(cfg *config.EvalConfig, runs []string) string {
	if c.reference != "" {
		return c.reference
	}
	if ref := cfg.GetReferenceRun(); ref != "" {
		return ref
	}
	return runs[0]
}

// parseSkills uses names when given, else the configured skills.
func parseSkills(names []string, cfg *config.EvalConfig) ([]verify.SkillName, error) {
	if len(names) == 0 {
		return cfg.GetSkills(), nil
	}
	return verify.ParseSkills(names)
}
