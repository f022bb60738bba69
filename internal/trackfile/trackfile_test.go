package trackfile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackeval/internal/security"
	"github.com/banshee-data/trackeval/internal/tracks"
)

func TestWriteThenLoadTracks(t *testing.T) {
	t.Parallel()

	trks := []tracks.Track{{Points: []tracks.Point{
		{XLoc: 1.5, YLoc: 2.5, FrameNum: 1, Type: tracks.PointMeasured},
		{XLoc: 2.5, YLoc: 3.5, FrameNum: 2, Type: tracks.PointCoasted},
		{XLoc: 3.5, YLoc: 4.5, FrameNum: 4, Type: tracks.PointMeasured},
	}}}
	falarms := []tracks.Track{{Points: []tracks.Point{
		{XLoc: 9, YLoc: 9, FrameNum: 3, Type: tracks.PointFalseAlarm},
	}}}

	path := filepath.Join(t.TempDir(), "sim", "noise_tracks")
	require.NoError(t, WriteTracks(path, trks, falarms))

	gotT, gotF, err := LoadTracks(path)
	require.NoError(t, err)
	if diff := cmp.Diff(trks, gotT); diff != "" {
		t.Errorf("tracks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(falarms, gotF); diff != "" {
		t.Errorf("falarms mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTracks_Format(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tracks.json")
	doc := `{
  "tracks": [{"xLocs": [0, 1], "yLocs": [0, 1], "frameNums": [1, 2]}],
  "falarms": [{"xLocs": [5], "yLocs": [5], "frameNums": [3], "types": ["F"]}]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	raw, rawF, err := ReadTracks(path)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	require.Len(t, rawF, 1)
	assert.Equal(t, []int{1, 2}, raw[0].FrameNums)
	assert.Empty(t, raw[0].Types)

	trks, falarms, err := LoadTracks(path)
	require.NoError(t, err)
	require.Len(t, trks, 1)
	assert.Equal(t, tracks.PointMeasured, trks[0].Points[0].Type)
	require.Len(t, falarms, 1)
	assert.Equal(t, tracks.PointFalseAlarm, falarms[0].Points[0].Type)
}

func TestLoadTracks_NullMarksInvalidPoint(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tracks.json")
	doc := `{"tracks":[{"xLocs":[1,null,3],"yLocs":[1,null,3],"frameNums":[1,2,3]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	raw, _, err := ReadTracks(path)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.True(t, math.IsNaN(raw[0].XLocs[1]))

	trks, falarms, err := LoadTracks(path)
	require.NoError(t, err)
	assert.Empty(t, falarms)
	want := []tracks.Track{{Points: []tracks.Point{
		{XLoc: 1, YLoc: 1, FrameNum: 1, Type: tracks.PointMeasured},
		{XLoc: 3, YLoc: 3, FrameNum: 3, Type: tracks.PointMeasured},
	}}}
	if diff := cmp.Diff(want, trks); diff != "" {
		t.Errorf("tracks mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTracks_InvalidPointAsNull(t *testing.T) {
	t.Parallel()

	trks := []tracks.Track{{Points: []tracks.Point{
		{XLoc: 1, YLoc: 1, FrameNum: 1, Type: tracks.PointMeasured},
		{XLoc: math.NaN(), YLoc: math.NaN(), FrameNum: 2, Type: tracks.PointMeasured},
		{XLoc: 3, YLoc: 3, FrameNum: 3, Type: tracks.PointMeasured},
	}}}
	path := filepath.Join(t.TempDir(), "tracks.json")
	require.NoError(t, WriteTracks(path, trks, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "null")

	got, _, err := LoadTracks(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Points, 2)
}

func TestLoadTracks_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, _, err := LoadTracks(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte(`{"tracks": [`), 0o644))
	_, _, err = LoadTracks(bad)
	assert.Error(t, err)

	malformed := filepath.Join(dir, "malformed")
	require.NoError(t, os.WriteFile(malformed,
		[]byte(`{"tracks": [{"xLocs": [0, 1], "yLocs": [0], "frameNums": [1, 2]}], "falarms": []}`), 0o644))
	_, _, err = LoadTracks(malformed)
	assert.ErrorIs(t, err, tracks.ErrMalformedTrack)
}

func TestSimParams(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	p := &SimParams{
		NoisyTrackFile: "noise_tracks",
		ResultFile:     "testResults",
		Trackers:       []string{"SCIT", "MHT_a"},
		FrameCnt:       12,
	}
	require.NoError(t, WriteSimParams(dir, p))

	got, err := ReadSimParams(dir)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, filepath.Join(dir, "testResults_SCIT"), got.ResultPath(dir, "SCIT"))
	assert.Equal(t, filepath.Join(dir, "noise_tracks"), got.TruthPath(dir))
}

func TestSimParams_Validate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	require.NoError(t, WriteSimParams(dir, &SimParams{ResultFile: "r"}))
	_, err := ReadSimParams(dir)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = ReadSimParams(filepath.Join(dir, "nowhere"))
	assert.Error(t, err)

	escapes := []*SimParams{
		{NoisyTrackFile: "../truth", ResultFile: "r"},
		{NoisyTrackFile: "truth", ResultFile: "r", Trackers: []string{"a/../../b"}},
	}
	for _, p := range escapes {
		assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
		assert.ErrorIs(t, p.Validate(), security.ErrPathEscape)
	}
}

func TestMultiSimParams(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	p := &MultiSimParams{SimCnt: 3, GlobalSeed: 42, SimName: "Fast"}
	require.NoError(t, WriteMultiSimParams(dir, p))

	got, err := ReadMultiSimParams(dir)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, []string{"000", "001", "002"}, got.SubSimNames())

	require.NoError(t, WriteMultiSimParams(dir, &MultiSimParams{SimCnt: 0}))
	_, err = ReadMultiSimParams(dir)
	assert.ErrorIs(t, err, ErrInvalidParams)
}
