package analysis

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/trackeval/internal/verify"
)

var (
	// ErrTrackerNotFound is returned when a tracker run is not available.
	ErrTrackerNotFound = errors.New("tracker run not found")
	// ErrEmptyAnalysis is returned when there is nothing to score.
	ErrEmptyAnalysis = errors.New("analysis needs at least one skill and one tracker run")
)

// SkillScoreTable holds one score per (skill, tracker run), addressed by
// label. Rows follow Skills and columns follow Trackers.
type SkillScoreTable struct {
	Skills   []verify.SkillName
	Trackers []string
	scores   *mat.Dense
}

// NewSkillScoreTable returns a zeroed table for the given labels.
func NewSkillScoreTable(skills []verify.SkillName, trackers []string) (*SkillScoreTable, error) {
	if len(skills) == 0 || len(trackers) == 0 {
		return nil, ErrEmptyAnalysis
	}
	for j, name := range trackers {
		if slices.Index(trackers, name) != j {
			return nil, fmt.Errorf("duplicate tracker run %q", name)
		}
	}
	return &SkillScoreTable{
		Skills:   slices.Clone(skills),
		Trackers: slices.Clone(trackers),
		scores:   mat.NewDense(len(skills), len(trackers), nil),
	}, nil
}

func (t *SkillScoreTable) index(skill verify.SkillName, tracker string) (int, int, error) {
	i := slices.Index(t.Skills, skill)
	if i < 0 {
		return 0, 0, fmt.Errorf("%w: %q", verify.ErrUnknownSkill, skill)
	}
	j := slices.Index(t.Trackers, tracker)
	if j < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrTrackerNotFound, tracker)
	}
	return i, j, nil
}

// Get returns the score of tracker for skill.
func (t *SkillScoreTable) Get(skill verify.SkillName, tracker string) (float64, error) {
	i, j, err := t.index(skill, tracker)
	if err != nil {
		return 0, err
	}
	return t.scores.At(i, j), nil
}

// Set stores the score of tracker for skill.
func (t *SkillScoreTable) Set(skill verify.SkillName, tracker string, v float64) error {
	i, j, err := t.index(skill, tracker)
	if err != nil {
		return err
	}
	t.scores.Set(i, j, v)
	return nil
}

// Row returns a copy of the scores of every tracker run for skill.
func (t *SkillScoreTable) Row(skill verify.SkillName) ([]float64, error) {
	i := slices.Index(t.Skills, skill)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", verify.ErrUnknownSkill, skill)
	}
	return mat.Row(nil, i, t.scores), nil
}

// Matrix returns a copy of the scores as a skills × trackers matrix.
func (t *SkillScoreTable) Matrix() *mat.Dense {
	return mat.DenseCopyOf(t.scores)
}
