package tracks

// StormCell is one detection within a volume snapshot. TrackID is the
// index of the source track; false alarms are numbered after the last track
// so the two ranges never collide.
type StormCell struct {
	XLoc    float64 `json:"xLoc"`
	YLoc    float64 `json:"yLoc"`
	TrackID int     `json:"trackID"`
}

// Volume is the set of storm cells observed at one frame.
type Volume struct {
	VolTime    int         `json:"volTime"`
	StormCells []StormCell `json:"stormCells"`
}

// CreateVolData regroups trajectories by frame: for every frame in tLims
// (inclusive) it lists the points of all tracks and false alarms observed in
// that frame and inside xLims × yLims. The result always has
// tLims.Max()-tLims.Min()+1 entries, empty snapshots included.
//
// TrackID is retained so the clipped tracks can be rebuilt from the output.
func CreateVolData(tracks, falarms []Track, tLims FrameLimits, xLims, yLims Limits) []Volume {
	first, last := tLims.Min(), tLims.Max()
	vols := make([]Volume, last-first+1)
	for i := range vols {
		vols[i] = Volume{VolTime: first + i, StormCells: []StormCell{}}
	}

	add := func(trackID int, t Track) {
		for _, p := range t.Points {
			if !tLims.Contains(p.FrameNum) || !xLims.Contains(p.XLoc) || !yLims.Contains(p.YLoc) {
				continue
			}
			v := &vols[p.FrameNum-first]
			v.StormCells = append(v.StormCells, StormCell{XLoc: p.XLoc, YLoc: p.YLoc, TrackID: trackID})
		}
	}

	for id, t := range tracks {
		add(id, t)
	}
	for i, f := range falarms {
		add(len(tracks)+i, f)
	}
	return vols
}
