package analysis

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/trackeval/internal/tracks"
	"github.com/banshee-data/trackeval/internal/verify"
)

// TrackSet is a collection of tracks and false alarms, either ground truth
// or the output of a tracker.
type TrackSet struct {
	Tracks  []tracks.Track
	Falarms []tracks.Track
}

// TrackerRun is the output of one tracker configuration.
type TrackerRun struct {
	Name    string
	Tracks  []tracks.Track
	Falarms []tracks.Track
}

// Options controls matching and concurrency.
type Options struct {
	Tolerance verify.Tolerance
	Workers   int // <= 0 uses GOMAXPROCS
}

// DefaultOptions matches at two decimal places using every CPU.
func DefaultOptions() Options {
	return Options{Tolerance: verify.DefaultTolerance()}
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// prepared is a TrackSet reduced to what the matcher consumes.
type prepared struct {
	tracks   []tracks.Track
	falarms  []tracks.Track
	segments []tracks.Segment
	points   []tracks.Point
}

// prepare keeps measured points only, then splits the result into segments
// and false alarm detections. Tracks too short to yield a segment count as
// false alarms.
func prepare(trks, falarms []tracks.Track) prepared {
	trks, falarms = tracks.FilterMeasured(trks, falarms)
	set := tracks.CreateSegments(trks)
	points := append(tracks.FalarmPoints(falarms), set.Singletons...)
	return prepared{tracks: trks, falarms: falarms, segments: set.Segments, points: points}
}

// Evaluate builds the contingency table of run against truth.
func Evaluate(truth TrackSet, run TrackerRun, tol verify.Tolerance) *verify.ContingencyTable {
	t := prepare(truth.Tracks, truth.Falarms)
	p := prepare(run.Tracks, run.Falarms)
	return verify.NewMatcher(tol).CompareSegments(t.segments, t.points, p.segments, p.points)
}

// AnalyzeTrackings scores every tracker run against truth for each skill.
// Runs are evaluated concurrently, bounded by opts.Workers.
func AnalyzeTrackings(truth TrackSet, runs []TrackerRun, skills []verify.SkillName, opts Options) (*SkillScoreTable, error) {
	names := make([]string, len(runs))
	for i, r := range runs {
		names[i] = r.Name
	}
	table, err := NewSkillScoreTable(skills, names)
	if err != nil {
		return nil, err
	}

	calcs := make([]verify.SkillFunc, len(skills))
	for i, s := range skills {
		if calcs[i], err = verify.LookupSkill(s); err != nil {
			return nil, err
		}
	}

	truthPrep := prepare(truth.Tracks, truth.Falarms)
	matcher := verify.NewMatcher(opts.Tolerance)

	columns := make([][]float64, len(runs))
	var g errgroup.Group
	g.SetLimit(opts.workers())
	for j, run := range runs {
		g.Go(func() error {
			p := prepare(run.Tracks, run.Falarms)
			ct := matcher.CompareSegments(truthPrep.segments, truthPrep.points, p.segments, p.points)

			c := ct.Counts()
			logf("%s: a=%d b=%d c=%d d=%d unmatched_true_fa=%d unmatched_pred_fa=%d",
				run.Name, c.A, c.B, c.C, c.D, len(ct.UnmatchedTrueFalarms), len(ct.UnmatchedPredFalarms))

			col := make([]float64, len(calcs))
			for i, fn := range calcs {
				col[i] = fn(p.tracks, p.falarms, ct)
			}
			columns[j] = col
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for j, col := range columns {
		table.scores.SetCol(j, col)
	}
	return table, nil
}
