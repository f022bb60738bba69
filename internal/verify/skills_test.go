package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackeval/internal/tracks"
)

func TestSkillScores(t *testing.T) {
	tests := []struct {
		name    string
		counts  Counts
		wantHSS float64
		wantTSS float64
	}{
		{"perfect", Counts{A: 10, D: 5}, 1.0, 1.0},
		{"degenerate empty", Counts{}, 1.0, 1.0},
		{"hits only", Counts{A: 7}, 1.0, 1.0},
		// HSS = 2(50*30-10*10) / (60*40 + 60*40) = 2800/4800
		// TSS = (1500-100) / (60*40) = 1400/2400
		{"mixed", Counts{A: 50, B: 10, C: 10, D: 30}, 2800.0 / 4800.0, 1400.0 / 2400.0},
		// All wrong: a=d=0.
		{"all wrong", Counts{B: 4, C: 6}, 2 * (-24.0) / (6*6 + 4*4), -24.0 / (6 * 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantHSS, HeidkeSkillScore(tt.counts), 1e-12)
			assert.InDelta(t, tt.wantTSS, TrueSkillStatistic(tt.counts), 1e-12)
		})
	}
}

func TestComputeSkillScore(t *testing.T) {
	table := &ContingencyTable{
		AssocsCorrect:  make([]tracks.Segment, 10),
		FalarmsCorrect: make([]tracks.Point, 5),
	}
	hss, err := ComputeSkillScore(SkillHSS, table)
	require.NoError(t, err)
	assert.Equal(t, 1.0, hss)

	tss, err := ComputeSkillScore(SkillTSS, table)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tss)

	_, err = ComputeSkillScore(SkillDur, table)
	assert.ErrorIs(t, err, ErrUnknownSkill)
}

func TestLookupSkill(t *testing.T) {
	for _, name := range Skills() {
		fn, err := LookupSkill(name)
		require.NoError(t, err, name)
		assert.NotNil(t, fn)
	}

	_, err := LookupSkill("CSI")
	assert.ErrorIs(t, err, ErrUnknownSkill)
}

func TestParseSkills(t *testing.T) {
	got, err := ParseSkills([]string{"TSS", "HSS"})
	require.NoError(t, err)
	assert.Equal(t, []SkillName{SkillTSS, SkillHSS}, got)

	_, err = ParseSkills([]string{"HSS", "bogus"})
	assert.ErrorIs(t, err, ErrUnknownSkill)
}

func TestMeanDuration(t *testing.T) {
	trks := []tracks.Track{
		{Points: []tracks.Point{{FrameNum: 1}, {FrameNum: 4}}},
		{Points: []tracks.Point{{FrameNum: 2}, {FrameNum: 3}}},
	}
	assert.Equal(t, 3.0, MeanDuration(trks))
	assert.Equal(t, 0.0, MeanDuration(nil))

	fn, err := LookupSkill(SkillDur)
	require.NoError(t, err)
	assert.Equal(t, 3.0, fn(trks, nil, &ContingencyTable{}))
}
