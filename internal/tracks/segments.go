package tracks

// Segment is a directed link between two consecutive points of one track.
// Index 0 holds the start, index 1 the end.
type Segment struct {
	XLocs     [2]float64 `json:"xLocs"`
	YLocs     [2]float64 `json:"yLocs"`
	FrameNums [2]int     `json:"frameNums"`
}

// NewSegment builds the segment running from a to b.
func NewSegment(a, b Point) Segment {
	return Segment{
		XLocs:     [2]float64{a.XLoc, b.XLoc},
		YLocs:     [2]float64{a.YLoc, b.YLoc},
		FrameNums: [2]int{a.FrameNum, b.FrameNum},
	}
}

// SegmentSet is the bag of segments extracted from a track collection.
//
// Singletons holds the lone point of any length-one track passed to
// CreateSegments. Such a record cannot form a segment; it is kept as a
// degenerate point so callers can decide whether to treat it as a false
// alarm. Normalised input never produces singletons.
type SegmentSet struct {
	Segments   []Segment `json:"segments"`
	Singletons []Point   `json:"singletons,omitempty"`
}

// Len returns the number of segments.
func (s SegmentSet) Len() int { return len(s.Segments) }

// CreateSegments breaks every track into its consecutive point pairs
// (0,1), (1,2), …, (L-2,L-1). A track of length L contributes exactly L-1
// segments; empty tracks contribute nothing.
func CreateSegments(tracks []Track) SegmentSet {
	n := 0
	for _, t := range tracks {
		if t.Len() > 1 {
			n += t.Len() - 1
		}
	}

	set := SegmentSet{Segments: make([]Segment, 0, n)}
	for _, t := range tracks {
		switch t.Len() {
		case 0:
		case 1:
			set.Singletons = append(set.Singletons, t.Points[0])
		default:
			for i := 1; i < len(t.Points); i++ {
				set.Segments = append(set.Segments, NewSegment(t.Points[i-1], t.Points[i]))
			}
		}
	}
	return set
}

// FalarmPoints returns the detection carried by each false alarm record.
// Records without points are skipped.
func FalarmPoints(falarms []Track) []Point {
	pts := make([]Point, 0, len(falarms))
	for _, f := range falarms {
		if f.Len() > 0 {
			pts = append(pts, f.Points[0])
		}
	}
	return pts
}
