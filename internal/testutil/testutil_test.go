package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackeval/internal/trackfile"
	"github.com/banshee-data/trackeval/internal/tracks"
)

func TestLine(t *testing.T) {
	t.Parallel()

	tr := Line(1, 2, 0.5, -1, 10, 3)
	require.Len(t, tr.Points, 3)
	assert.Equal(t, tracks.Point{XLoc: 2, YLoc: 0, FrameNum: 12, Type: tracks.PointMeasured}, tr.Points[2])
	assert.Equal(t, 3, tr.Duration())
}

func TestWriteScenario(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "Fast")

	WriteScenario(t, dir, 2, func(i int) ([]tracks.Track, []tracks.Track, []Run) {
		truth := []tracks.Track{Line(0, 0, 1, 1, 1, 4)}
		return truth, []tracks.Track{Falarm(9, 9, 2)}, []Run{{Name: "SCIT", Tracks: truth}}
	})

	params, err := trackfile.ReadMultiSimParams(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, params.SimCnt)
	assert.Equal(t, "Fast", params.SimName)

	sim, err := trackfile.ReadSimParams(filepath.Join(dir, "001"))
	require.NoError(t, err)
	assert.Equal(t, []string{"SCIT"}, sim.Trackers)

	trks, falarms, err := trackfile.LoadTracks(sim.TruthPath(filepath.Join(dir, "001")))
	require.NoError(t, err)
	assert.Len(t, trks, 1)
	assert.Len(t, falarms, 1)
}

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
	AssertError(t, assert.AnError)
}
