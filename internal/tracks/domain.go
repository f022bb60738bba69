package tracks

import "math"

// Limits is a closed spatial interval. The two ends may be given in either
// order.
type Limits [2]float64

// Min returns the lower end of the interval.
func (l Limits) Min() float64 { return math.Min(l[0], l[1]) }

// Max returns the upper end of the interval.
func (l Limits) Max() float64 { return math.Max(l[0], l[1]) }

// Contains reports whether v lies within the closed interval.
func (l Limits) Contains(v float64) bool {
	return v >= l.Min() && v <= l.Max()
}

// FrameLimits is a closed interval of frame numbers, ends in either order.
type FrameLimits [2]int

// Min returns the first frame of the interval.
func (l FrameLimits) Min() int { return min(l[0], l[1]) }

// Max returns the last frame of the interval.
func (l FrameLimits) Max() int { return max(l[0], l[1]) }

// Contains reports whether frame lies within the closed interval.
func (l FrameLimits) Contains(frame int) bool {
	return frame >= l.Min() && frame <= l.Max()
}

// Bounds is the spatio-temporal box covered by a set of tracks.
type Bounds struct {
	X Limits      `json:"x"`
	Y Limits      `json:"y"`
	T FrameLimits `json:"t"`
}

// DomainFromTracks returns the smallest box containing every point of the
// given tracks and false alarms.
func DomainFromTracks(tracks, falarms []Track) (Bounds, error) {
	b := Bounds{
		X: Limits{math.Inf(1), math.Inf(-1)},
		Y: Limits{math.Inf(1), math.Inf(-1)},
		T: FrameLimits{math.MaxInt, math.MinInt},
	}
	seen := false
	for _, set := range [][]Track{tracks, falarms} {
		for _, t := range set {
			for _, p := range t.Points {
				seen = true
				b.X[0] = math.Min(b.X[0], p.XLoc)
				b.X[1] = math.Max(b.X[1], p.XLoc)
				b.Y[0] = math.Min(b.Y[0], p.YLoc)
				b.Y[1] = math.Max(b.Y[1], p.YLoc)
				b.T[0] = min(b.T[0], p.FrameNum)
				b.T[1] = max(b.T[1], p.FrameNum)
			}
		}
	}
	if !seen {
		return Bounds{}, ErrEmptyDomain
	}
	return b, nil
}
