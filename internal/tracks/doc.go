// Package tracks owns the trajectory data model used by the evaluation
// engine.
//
// Responsibilities: canonical Point/Track records, validation of raw
// columnar track data, normalisation (invalid point removal and false alarm
// reclassification), domain clipping, measurement filtering, segment
// extraction and the Lagrangian to Eulerian volume transform.
// Key types: Point, Track, RawTrack, Segment, SegmentSet, Volume.
//
// Every exported operation works on copies; caller slices are never
// mutated. No I/O or logging happens in this package.
package tracks
