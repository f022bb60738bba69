package verify

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/trackeval/internal/tracks"
)

// DegenerateDenominator is the magnitude below which a skill score
// denominator is treated as zero.
const DegenerateDenominator = 0.1

// SkillName identifies a verification score.
type SkillName string

const (
	SkillHSS SkillName = "HSS" // Heidke Skill Score
	SkillTSS SkillName = "TSS" // True Skill Statistic
	SkillDur SkillName = "Dur" // Mean predicted track duration in frames
)

// ErrUnknownSkill is returned for skill names without a calculator.
var ErrUnknownSkill = errors.New("unknown skill")

// SkillFunc computes a score from a tracker's output and its table.
type SkillFunc func(trks, falarms []tracks.Track, table *ContingencyTable) float64

var skillCalcs = map[SkillName]SkillFunc{
	SkillHSS: func(_, _ []tracks.Track, table *ContingencyTable) float64 {
		return HeidkeSkillScore(table.Counts())
	},
	SkillTSS: func(_, _ []tracks.Track, table *ContingencyTable) float64 {
		return TrueSkillStatistic(table.Counts())
	},
	SkillDur: func(trks, _ []tracks.Track, _ *ContingencyTable) float64 {
		return MeanDuration(trks)
	},
}

// Skills lists the supported skill names in display order.
func Skills() []SkillName {
	return []SkillName{SkillHSS, SkillTSS, SkillDur}
}

// LookupSkill returns the calculator for name.
func LookupSkill(name SkillName) (SkillFunc, error) {
	fn, ok := skillCalcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
	}
	return fn, nil
}

// ParseSkills converts names to SkillNames, rejecting unknown ones.
func ParseSkills(names []string) ([]SkillName, error) {
	out := make([]SkillName, len(names))
	for i, n := range names {
		if _, err := LookupSkill(SkillName(n)); err != nil {
			return nil, err
		}
		out[i] = SkillName(n)
	}
	return out, nil
}

// ComputeSkillScore evaluates a table-only skill (HSS or TSS).
func ComputeSkillScore(name SkillName, table *ContingencyTable) (float64, error) {
	switch name {
	case SkillHSS:
		return HeidkeSkillScore(table.Counts()), nil
	case SkillTSS:
		return TrueSkillStatistic(table.Counts()), nil
	}
	return 0, fmt.Errorf("%w: %q needs track data", ErrUnknownSkill, name)
}

// HeidkeSkillScore returns 2(ad-bc) / [(a+c)(c+d) + (a+b)(b+d)], or 1 when
// the denominator is degenerate.
func HeidkeSkillScore(c Counts) float64 {
	a, b, cc, d := float64(c.A), float64(c.B), float64(c.C), float64(c.D)
	denom := (a+cc)*(cc+d) + (a+b)*(b+d)
	if math.Abs(denom) < DegenerateDenominator {
		return 1.0
	}
	return 2 * (a*d - b*cc) / denom
}

// TrueSkillStatistic returns (ad-bc) / [(a+c)(b+d)], or 1 when the
// denominator is degenerate.
func TrueSkillStatistic(c Counts) float64 {
	a, b, cc, d := float64(c.A), float64(c.B), float64(c.C), float64(c.D)
	denom := (a + cc) * (b + d)
	if math.Abs(denom) < DegenerateDenominator {
		return 1.0
	}
	return (a*d - b*cc) / denom
}

// MeanDuration is the average number of frames spanned by the tracks.
func MeanDuration(trks []tracks.Track) float64 {
	if len(trks) == 0 {
		return 0
	}
	total := 0
	for _, t := range trks {
		total += t.Duration()
	}
	return float64(total) / float64(len(trks))
}
