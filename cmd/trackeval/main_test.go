package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackeval/internal/analysis"
	"github.com/banshee-data/trackeval/internal/db"
	"github.com/banshee-data/trackeval/internal/monitoring"
	"github.com/banshee-data/trackeval/internal/storage/sqlite"
	"github.com/banshee-data/trackeval/internal/testutil"
	"github.com/banshee-data/trackeval/internal/tracks"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

// writeRuns lays out a scenario where "good" reproduces the truth and
// "bad" is shifted off it.
func writeRuns(t *testing.T, multiDir string, simCnt int) {
	t.Helper()
	testutil.WriteScenario(t, multiDir, simCnt, func(i int) ([]tracks.Track, []tracks.Track, []testutil.Run) {
		truth := []tracks.Track{testutil.Line(0, 0, 1, 1, 1, 5)}
		falarms := []tracks.Track{testutil.Falarm(50, 50, 2)}
		bad := []tracks.Track{testutil.Line(0.5, 0, 1, 1, 1, 5)}
		return truth, falarms, []testutil.Run{
			{Name: "good", Tracks: truth, Falarms: falarms},
			{Name: "bad", Tracks: bad, Falarms: falarms},
		}
	})
}

func openResults(t *testing.T, path string) *sqlite.ScoreStore {
	t.Helper()
	database, err := db.NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return sqlite.NewScoreStore(database.DB)
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(nil, &out), errUsage)
	assert.Contains(t, out.String(), "Usage: trackeval")

	out.Reset()
	assert.ErrorIs(t, run([]string{"frobnicate"}, &out), errUsage)
	assert.Contains(t, out.String(), "Unknown command: frobnicate")

	out.Reset()
	require.NoError(t, run([]string{"help"}, &out))
	assert.Contains(t, out.String(), "scenarios")

	out.Reset()
	require.NoError(t, run([]string{"version"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "trackeval dev"))
}

func TestRun_Analyze(t *testing.T) {
	base := t.TempDir()
	writeRuns(t, filepath.Join(base, "Fast"), 1)
	dbPath := filepath.Join(base, "results.db")

	var out bytes.Buffer
	err := run([]string{"analyze", "-dir", filepath.Join(base, "Fast"), "-tables", "-db", dbPath, "000", "HSS", "TSS"}, &out)
	require.NoError(t, err)
	s := out.String()
	assert.Contains(t, s, "HSS\n")
	assert.Contains(t, s, "TSS\n")
	assert.Contains(t, s, "       good          bad\n")
	assert.Contains(t, s, " 1.00000000  -0.80000000\n")

	store := openResults(t, dbPath)
	runs, err := store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "analyze", runs[0].Command)
	scores, err := store.ListScores(runs[0].RunID)
	require.NoError(t, err)
	assert.Len(t, scores, 4)
}

func TestRun_AnalyzeErrors(t *testing.T) {
	base := t.TempDir()
	writeRuns(t, filepath.Join(base, "Fast"), 1)
	dir := filepath.Join(base, "Fast")

	var out bytes.Buffer
	assert.ErrorIs(t, run([]string{"analyze", "-dir", dir}, &out), errUsage)
	assert.ErrorIs(t, run([]string{"analyze", "-nope"}, &out), errUsage)
	assert.ErrorIs(t, run([]string{"analyze", "-dir", dir, "-t", "MHT*", "000"}, &out), analysis.ErrTrackerNotFound)
	assert.Error(t, run([]string{"analyze", "-dir", dir, "000", "CSI"}, &out))
	assert.Error(t, run([]string{"analyze", "-dir", dir, "missing", "HSS"}, &out))
}

func TestRun_Multi(t *testing.T) {
	base := t.TempDir()
	writeRuns(t, filepath.Join(base, "Fast"), 3)
	dbPath := filepath.Join(base, "results.db")

	var out bytes.Buffer
	err := run([]string{"multi", "-dir", base, "-ref", "good", "-db", dbPath, "Fast", "HSS"}, &out)
	require.NoError(t, err)
	s := out.String()
	assert.Contains(t, s, "HSS\n")
	assert.Contains(t, s, " Against:      bad\n")
	// runs are listed sorted; three simulation rows and the mean row
	assert.Contains(t, s, "        bad         good\n")
	assert.Equal(t, 4, strings.Count(s, "-0.80000000   1.00000000\n"))

	store := openResults(t, dbPath)
	runs, err := store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	scores, err := store.ListScores(runs[0].RunID)
	require.NoError(t, err)
	assert.Len(t, scores, 6)
	boots, err := store.ListBootstrap(runs[0].RunID)
	require.NoError(t, err)
	require.Len(t, boots, 2)
	for _, b := range boots {
		assert.Equal(t, "Fast", b.Scenario)
	}
}

func TestRun_Scenarios(t *testing.T) {
	base := t.TempDir()
	writeRuns(t, filepath.Join(base, "Fast"), 2)
	writeRuns(t, filepath.Join(base, "Slow"), 3)
	dbPath := filepath.Join(base, "results.db")

	var out bytes.Buffer
	assert.ErrorIs(t, run([]string{"scenarios", "-dir", base, "Fast"}, &out), errUsage)
	assert.Contains(t, out.String(), "Need at least 2 scenarios")

	out.Reset()
	err := run([]string{"scenarios", "-dir", base, "-skills", "HSS,TSS", "-t", "good", "-t", "bad",
		"-db", dbPath, "Fast", "Slow"}, &out)
	require.NoError(t, err)
	s := out.String()
	assert.Contains(t, s, "Scenarios: Fast, Slow\n")
	assert.Contains(t, s, "HSS                 good          bad\n")
	assert.Contains(t, s, "Fast          1.00000000  -0.80000000\n")
	assert.Contains(t, s, "Slow          1.00000000  -0.80000000\n")
	assert.Contains(t, s, "Best Run:")

	store := openResults(t, dbPath)
	runs, err := store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "scenarios", runs[0].Command)
	boots, err := store.ListBootstrap(runs[0].RunID)
	require.NoError(t, err)
	assert.Len(t, boots, 8)
}

func TestRun_Migrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "m.db")

	var out bytes.Buffer
	require.NoError(t, run([]string{"migrate", "-db", dbPath, "up"}, &out))
	assert.Contains(t, out.String(), "Current version: 1")

	out.Reset()
	require.NoError(t, run([]string{"migrate", "-db", dbPath, "status"}, &out))
	assert.Contains(t, out.String(), "Current version: 1")

	assert.Error(t, run([]string{"migrate", "-db", dbPath, "sideways"}, &out))
}

func TestStringList(t *testing.T) {
	var l stringList
	require.NoError(t, l.Set("a, b"))
	require.NoError(t, l.Set("c,,"))
	assert.Equal(t, stringList{"a", "b", "c"}, l)
	assert.Equal(t, "a,b,c", l.String())
}
