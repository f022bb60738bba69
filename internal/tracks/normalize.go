package tracks

import (
	"fmt"
	"math"
)

// NormalizeTracks validates raw track and false alarm records and converts
// them to the canonical representation. Points carrying a NaN coordinate are
// dropped, tracks left with a single point become false alarms and empty
// records disappear.
//
// Validation is strict: mismatched parallel array lengths, frame numbers that
// do not strictly increase across the valid points, or a false alarm record
// with more than one valid point all yield a *MalformedTrackError.
func NormalizeTracks(raw, rawFalarms []RawTrack) ([]Track, []Track, error) {
	tracks := make([]Track, 0, len(raw))
	for i, r := range raw {
		t, err := fromRaw(r, i, false)
		if err != nil {
			return nil, nil, err
		}
		tracks = append(tracks, t)
	}

	falarms := make([]Track, 0, len(rawFalarms))
	for i, r := range rawFalarms {
		t, err := fromRaw(r, i, true)
		if err != nil {
			return nil, nil, err
		}
		if t.Len() > 1 {
			return nil, nil, &MalformedTrackError{
				Index:      i,
				FalseAlarm: true,
				Reason:     fmt.Sprintf("false alarm has %d valid points", t.Len()),
			}
		}
		falarms = append(falarms, t)
	}

	tracks, falarms = reclassify(tracks, falarms)
	return tracks, falarms, nil
}

func fromRaw(r RawTrack, index int, falarm bool) (Track, error) {
	n := len(r.FrameNums)
	if len(r.XLocs) != n || len(r.YLocs) != n {
		return Track{}, &MalformedTrackError{
			Index:      index,
			FalseAlarm: falarm,
			Reason: fmt.Sprintf("attribute lengths differ: xLocs=%d yLocs=%d frameNums=%d",
				len(r.XLocs), len(r.YLocs), n),
		}
	}
	if len(r.Types) != 0 && len(r.Types) != n {
		return Track{}, &MalformedTrackError{
			Index:      index,
			FalseAlarm: falarm,
			Reason:     fmt.Sprintf("types has %d entries, want %d", len(r.Types), n),
		}
	}

	defaultType := PointMeasured
	if falarm {
		defaultType = PointFalseAlarm
	}

	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(r.XLocs[i]) || math.IsNaN(r.YLocs[i]) {
			continue
		}
		typ := defaultType
		if len(r.Types) != 0 && r.Types[i] != "" {
			typ = r.Types[i]
		}
		if last := len(pts) - 1; last >= 0 && r.FrameNums[i] <= pts[last].FrameNum {
			return Track{}, &MalformedTrackError{
				Index:      index,
				FalseAlarm: falarm,
				Reason: fmt.Sprintf("frameNums not strictly increasing at point %d (%d after %d)",
					i, r.FrameNums[i], pts[last].FrameNum),
			}
		}
		pts = append(pts, Point{XLoc: r.XLocs[i], YLoc: r.YLocs[i], FrameNum: r.FrameNums[i], Type: typ})
	}
	return Track{Points: pts}, nil
}

// ToRaw converts a track back into parallel arrays.
func (t Track) ToRaw() RawTrack {
	r := RawTrack{
		XLocs:     make([]float64, len(t.Points)),
		YLocs:     make([]float64, len(t.Points)),
		FrameNums: make([]int, len(t.Points)),
		Types:     make([]PointType, len(t.Points)),
	}
	for i, p := range t.Points {
		r.XLocs[i] = p.XLoc
		r.YLocs[i] = p.YLoc
		r.FrameNums[i] = p.FrameNum
		r.Types[i] = p.Type
	}
	return r
}

// Normalize re-establishes the track/false alarm invariants on structured
// data: tracks of length one move to the false alarm collection, empty
// records are dropped, and multi-point records found among the false alarms
// move back to the tracks. Running it on clean data is a no-op.
func Normalize(tracks, falarms []Track) ([]Track, []Track) {
	return reclassify(CloneTracks(tracks), CloneTracks(falarms))
}

// reclassify takes ownership of its arguments.
func reclassify(tracks, falarms []Track) ([]Track, []Track) {
	outTracks := make([]Track, 0, len(tracks))
	outFalarms := make([]Track, 0, len(falarms))

	place := func(t Track) {
		switch t.Len() {
		case 0:
		case 1:
			t.Points[0].Type = PointFalseAlarm
			outFalarms = append(outFalarms, t)
		default:
			outTracks = append(outTracks, t)
		}
	}

	for _, t := range tracks {
		place(t)
	}
	for _, f := range falarms {
		place(f)
	}
	return outTracks, outFalarms
}

// retain copies the collections keeping only points accepted by keep, then
// normalises the result.
func retain(tracks, falarms []Track, keep func(Point) bool) ([]Track, []Track) {
	filter := func(in []Track) []Track {
		out := make([]Track, len(in))
		for i, t := range in {
			pts := make([]Point, 0, len(t.Points))
			for _, p := range t.Points {
				if keep(p) {
					pts = append(pts, p)
				}
			}
			out[i] = Track{Points: pts}
		}
		return out
	}
	return reclassify(filter(tracks), filter(falarms))
}

// ClipTracks returns copies of tracks and falarms with every point outside
// the box xLims × yLims × tLims removed, then normalised. Limits may be
// given in either order.
func ClipTracks(tracks, falarms []Track, xLims, yLims Limits, tLims FrameLimits) ([]Track, []Track) {
	return retain(tracks, falarms, func(p Point) bool {
		return xLims.Contains(p.XLoc) && yLims.Contains(p.YLoc) && tLims.Contains(p.FrameNum)
	})
}

// FilterMeasured drops coasted points, keeping only genuine detections,
// and normalises the result. Multiple-hypothesis trackers emit coasted
// entries while a track is held through a missed detection.
func FilterMeasured(tracks, falarms []Track) ([]Track, []Track) {
	return retain(tracks, falarms, func(p Point) bool {
		return p.Type.IsMeasurement()
	})
}
