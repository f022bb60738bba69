package tracks

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// PointType flags how a point entered a trajectory.
type PointType string

const (
	PointMeasured   PointType = "M" // Detected by the tracker in this frame
	PointCoasted    PointType = "C" // Interpolated while the track was coasting
	PointFalseAlarm PointType = "F" // Singleton detection with no continuation
)

// IsMeasurement reports whether the point is a genuine detection rather
// than a coasted placeholder. False alarm singletons are detections.
func (t PointType) IsMeasurement() bool {
	return t != PointCoasted
}

// Point is a single storm-cell position at a given frame.
type Point struct {
	XLoc     float64   `json:"xLoc"`
	YLoc     float64   `json:"yLoc"`
	FrameNum int       `json:"frameNum"`
	Type     PointType `json:"type"`
}

// Track is a time ordered trajectory with strictly increasing FrameNum.
// After normalisation a Track always has at least two points; single point
// trajectories live in the false alarm collection instead.
type Track struct {
	Points []Point `json:"points"`
}

// Len returns the number of points in the track.
func (t Track) Len() int { return len(t.Points) }

// Clone returns a deep copy of the track.
func (t Track) Clone() Track {
	pts := make([]Point, len(t.Points))
	copy(pts, t.Points)
	return Track{Points: pts}
}

// Duration returns the number of frames spanned by the track, inclusive.
// Empty tracks span zero frames.
func (t Track) Duration() int {
	if len(t.Points) == 0 {
		return 0
	}
	return t.Points[len(t.Points)-1].FrameNum - t.Points[0].FrameNum + 1
}

// CloneTracks deep copies a track collection.
func CloneTracks(tracks []Track) []Track {
	if tracks == nil {
		return nil
	}
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = t.Clone()
	}
	return out
}

// Coords is a coordinate column of a RawTrack. NaN entries are written to
// JSON as null and null entries are read back as NaN.
type Coords []float64

// MarshalJSON encodes NaN as null.
func (c Coords) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	vals := make([]*float64, len(c))
	for i := range c {
		if !math.IsNaN(c[i]) {
			vals[i] = &c[i]
		}
	}
	return json.Marshal(vals)
}

// UnmarshalJSON decodes null entries as NaN.
func (c *Coords) UnmarshalJSON(data []byte) error {
	var vals []*float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}
	if vals == nil {
		*c = nil
		return nil
	}
	out := make(Coords, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	*c = out
	return nil
}

// RawTrack is the parallel-array record emitted by track readers. A NaN
// coordinate (null in a track file) marks a point as invalidated; it is
// discarded during normalisation.
type RawTrack struct {
	XLocs     Coords      `json:"xLocs"`
	YLocs     Coords      `json:"yLocs"`
	FrameNums []int       `json:"frameNums"`
	Types     []PointType `json:"types,omitempty"`
}

// ErrMalformedTrack is wrapped by every MalformedTrackError.
var ErrMalformedTrack = errors.New("malformed track")

// ErrEmptyDomain is returned when a domain is requested for tracks with no points.
var ErrEmptyDomain = errors.New("no points to derive a domain from")

// MalformedTrackError describes a raw track that fails validation.
type MalformedTrackError struct {
	Index      int  // Position in the input collection
	FalseAlarm bool // True when the record came from the false alarm collection
	Reason     string
}

func (e *MalformedTrackError) Error() string {
	kind := "track"
	if e.FalseAlarm {
		kind = "false alarm"
	}
	return fmt.Sprintf("%s %d: %s", kind, e.Index, e.Reason)
}

func (e *MalformedTrackError) Unwrap() error { return ErrMalformedTrack }
