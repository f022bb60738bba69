package bootstrap

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrUnknownTracker is returned when the reference run is not among the
// score columns.
var ErrUnknownTracker = errors.New("unknown tracker run")

// Ranking reports, for one tracker run, the scenarios in which the
// reference run did best and worst relative to it. It is an ordinal
// summary of score differences, not a significance test.
type Ranking struct {
	Tracker string    `json:"tracker"`
	Best    int       `json:"best"`  // Scenario with the largest reference-other difference
	Worst   int       `json:"worst"` // Scenario with the smallest reference-other difference
	Diffs   []float64 `json:"diffs"` // reference - other, per scenario
}

// RankAgainst compares the reference column of scores (scenarios × trackers)
// with every other column. Ties keep the lower scenario index first.
func RankAgainst(scores mat.Matrix, trackers []string, reference string) ([]Ranking, error) {
	rows, cols := scores.Dims()
	if cols != len(trackers) {
		return nil, fmt.Errorf("scores have %d columns for %d trackers", cols, len(trackers))
	}
	if rows == 0 {
		return nil, ErrInsufficientData
	}

	refCol := -1
	for j, name := range trackers {
		if name == reference {
			refCol = j
			break
		}
	}
	if refCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTracker, reference)
	}

	ref := mat.Col(nil, refCol, scores)
	rankings := make([]Ranking, 0, cols-1)
	for j, name := range trackers {
		if j == refCol {
			continue
		}
		diffs := make([]float64, rows)
		floats.SubTo(diffs, ref, mat.Col(nil, j, scores))

		sorted := append([]float64(nil), diffs...)
		inds := make([]int, rows)
		floats.ArgsortStable(sorted, inds)

		// The stable sort keeps tied scenarios in index order, so step back
		// to the first of any ties at the maximum.
		best := rows - 1
		for best > 0 && sorted[best-1] == sorted[rows-1] {
			best--
		}

		rankings = append(rankings, Ranking{
			Tracker: name,
			Best:    inds[best],
			Worst:   inds[0],
			Diffs:   diffs,
		})
	}
	return rankings, nil
}
