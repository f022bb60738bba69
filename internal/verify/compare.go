package verify

import (
	"math"

	"github.com/banshee-data/trackeval/internal/tracks"
)

// DefaultDecimals is the number of decimal places two coordinates must agree
// on to be considered equal. Coordinates written by the simulator and read
// back through tracker output accumulate float error well below 0.005 units,
// while distinct storm cells are never that close.
const DefaultDecimals = 2

// Tolerance decides coordinate equality by rounding to a fixed number of
// decimal places. It is the only equality used for positions; frame
// numbers are always compared exactly.
type Tolerance struct {
	Decimals int
}

// DefaultTolerance returns the tolerance used when none is configured.
func DefaultTolerance() Tolerance { return Tolerance{Decimals: DefaultDecimals} }

// Equal reports whether a and b round to the same value.
func (t Tolerance) Equal(a, b float64) bool {
	scale := math.Pow10(t.Decimals)
	return math.Round(a*scale) == math.Round(b*scale)
}

// SegmentsEqual reports whether both endpoints and both frames agree.
func (t Tolerance) SegmentsEqual(a, b tracks.Segment) bool {
	return a.FrameNums == b.FrameNums &&
		t.Equal(a.XLocs[0], b.XLocs[0]) &&
		t.Equal(a.XLocs[1], b.XLocs[1]) &&
		t.Equal(a.YLocs[0], b.YLocs[0]) &&
		t.Equal(a.YLocs[1], b.YLocs[1])
}

// PointsEqual reports whether two detections share frame and position.
func (t Tolerance) PointsEqual(a, b tracks.Point) bool {
	return a.FrameNum == b.FrameNum && t.Equal(a.XLoc, b.XLoc) && t.Equal(a.YLoc, b.YLoc)
}

// Matcher builds contingency tables under a fixed tolerance.
type Matcher struct {
	Tolerance Tolerance
}

// NewMatcher returns a Matcher using tol.
func NewMatcher(tol Tolerance) *Matcher {
	return &Matcher{Tolerance: tol}
}

// CompareSegments matches with the default tolerance.
func CompareSegments(trueSegs []tracks.Segment, trueFalarms []tracks.Point,
	predSegs []tracks.Segment, predFalarms []tracks.Point) *ContingencyTable {
	return NewMatcher(DefaultTolerance()).CompareSegments(trueSegs, trueFalarms, predSegs, predFalarms)
}

// CompareSegments classifies predicted segments and false alarms against the
// true ones. For each true segment, in order, the first unmatched predicted
// segment equal to it is taken as a correct association; a true segment with
// no counterpart is a missed association. Predicted segments never taken are
// wrong associations. False alarms are matched the same way on their single
// point.
//
// Inputs are read only and the returned table holds fresh slices.
func (m *Matcher) CompareSegments(trueSegs []tracks.Segment, trueFalarms []tracks.Point,
	predSegs []tracks.Segment, predFalarms []tracks.Point) *ContingencyTable {
	table := &ContingencyTable{
		AssocsCorrect:  []tracks.Segment{},
		AssocsWrong:    []tracks.Segment{},
		FalarmsWrong:   []tracks.Segment{},
		FalarmsCorrect: []tracks.Point{},
	}

	taken := make([]bool, len(predSegs))
	for _, ts := range trueSegs {
		idx := firstUnmatched(len(predSegs), taken, func(i int) bool {
			return m.Tolerance.SegmentsEqual(ts, predSegs[i])
		})
		if idx < 0 {
			table.FalarmsWrong = append(table.FalarmsWrong, ts)
			continue
		}
		taken[idx] = true
		table.AssocsCorrect = append(table.AssocsCorrect, predSegs[idx])
	}
	for i, ps := range predSegs {
		if !taken[i] {
			table.AssocsWrong = append(table.AssocsWrong, ps)
		}
	}

	takenFA := make([]bool, len(predFalarms))
	for _, tf := range trueFalarms {
		idx := firstUnmatched(len(predFalarms), takenFA, func(i int) bool {
			return m.Tolerance.PointsEqual(tf, predFalarms[i])
		})
		if idx < 0 {
			table.UnmatchedTrueFalarms = append(table.UnmatchedTrueFalarms, tf)
			continue
		}
		takenFA[idx] = true
		table.FalarmsCorrect = append(table.FalarmsCorrect, tf)
	}
	for i, pf := range predFalarms {
		if !takenFA[i] {
			table.UnmatchedPredFalarms = append(table.UnmatchedPredFalarms, pf)
		}
	}

	return table
}

// firstUnmatched scans indices [0, n) in order, skipping taken ones, and
// returns the first for which eq holds, or -1.
func firstUnmatched(n int, taken []bool, eq func(int) bool) int {
	for i := 0; i < n; i++ {
		if !taken[i] && eq(i) {
			return i
		}
	}
	return -1
}
