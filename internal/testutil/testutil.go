// Package testutil provides shared test utilities and fixtures.
//
// It builds small track collections and writes them out in the simulation
// directory layout read by the analysis package and the trackeval command.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/banshee-data/trackeval/internal/trackfile"
	"github.com/banshee-data/trackeval/internal/tracks"
)

// DefaultResultFile is the result file prefix used by WriteSimulation.
const DefaultResultFile = "testResults"

// DefaultTruthFile is the truth file name used by WriteSimulation.
const DefaultTruthFile = "noise_tracks"

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Track builds a measured track from (x, y, frame) triples.
func Track(coords ...[3]float64) tracks.Track {
	pts := make([]tracks.Point, len(coords))
	for i, c := range coords {
		pts[i] = tracks.Point{XLoc: c[0], YLoc: c[1], FrameNum: int(c[2]), Type: tracks.PointMeasured}
	}
	return tracks.Track{Points: pts}
}

// Falarm builds a single-point false alarm.
func Falarm(x, y float64, frame int) tracks.Track {
	return tracks.Track{Points: []tracks.Point{{XLoc: x, YLoc: y, FrameNum: frame, Type: tracks.PointFalseAlarm}}}
}

// Line builds a measured track moving by (dx, dy) per frame for n frames.
func Line(x0, y0, dx, dy float64, frame0, n int) tracks.Track {
	pts := make([]tracks.Point, n)
	for i := range pts {
		pts[i] = tracks.Point{
			XLoc:     x0 + float64(i)*dx,
			YLoc:     y0 + float64(i)*dy,
			FrameNum: frame0 + i,
			Type:     tracks.PointMeasured,
		}
	}
	return tracks.Track{Points: pts}
}

// Run is a tracker output written by WriteSimulation.
type Run struct {
	Name    string
	Tracks  []tracks.Track
	Falarms []tracks.Track
}

// WriteSimulation lays out a simulation in simDir: simParams.json, the truth
// track file and one result file per run.
func WriteSimulation(t testing.TB, simDir string, truth, truthFalarms []tracks.Track, runs ...Run) {
	t.Helper()

	params := &trackfile.SimParams{
		NoisyTrackFile: DefaultTruthFile,
		ResultFile:     DefaultResultFile,
		Trackers:       make([]string, len(runs)),
	}
	for i, r := range runs {
		params.Trackers[i] = r.Name
	}
	AssertNoError(t, trackfile.WriteSimParams(simDir, params))
	AssertNoError(t, trackfile.WriteTracks(params.TruthPath(simDir), truth, truthFalarms))
	for _, r := range runs {
		AssertNoError(t, trackfile.WriteTracks(params.ResultPath(simDir, r.Name), r.Tracks, r.Falarms))
	}
}

// WriteScenario writes MultiSim.json in multiDir and simCnt simulations
// produced by build.
func WriteScenario(t testing.TB, multiDir string, simCnt int,
	build func(i int) (truth, truthFalarms []tracks.Track, runs []Run)) {
	t.Helper()

	AssertNoError(t, trackfile.WriteMultiSimParams(multiDir, &trackfile.MultiSimParams{
		SimCnt:  simCnt,
		SimName: filepath.Base(multiDir),
	}))
	for i := 0; i < simCnt; i++ {
		truth, falarms, runs := build(i)
		WriteSimulation(t, filepath.Join(multiDir, trackfile.SubSimName(i)), truth, falarms, runs...)
	}
}
