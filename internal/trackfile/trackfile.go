// Package trackfile reads and writes the on-disk layout of storm-track
// simulations: JSON track files, per-simulation parameter files and the
// parameter file of a multi-simulation scenario.
package trackfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/trackeval/internal/tracks"
)

// File is the JSON document stored in a track file. Each record holds
// parallel arrays of coordinates, frame numbers and point types.
type File struct {
	Tracks  []tracks.RawTrack `json:"tracks"`
	Falarms []tracks.RawTrack `json:"falarms"`
}

// ReadTracks decodes a track file without validating it.
func ReadTracks(path string) ([]tracks.RawTrack, []tracks.RawTrack, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read track file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse track file %s: %w", path, err)
	}
	return f.Tracks, f.Falarms, nil
}

// LoadTracks reads a track file and normalises its contents.
func LoadTracks(path string) ([]tracks.Track, []tracks.Track, error) {
	raw, rawFalarms, err := ReadTracks(path)
	if err != nil {
		return nil, nil, err
	}
	trks, falarms, err := tracks.NormalizeTracks(raw, rawFalarms)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return trks, falarms, nil
}

// WriteTracks stores tracks and false alarms as a track file, creating
// parent directories as needed.
func WriteTracks(path string, trks, falarms []tracks.Track) error {
	f := File{
		Tracks:  make([]tracks.RawTrack, len(trks)),
		Falarms: make([]tracks.RawTrack, len(falarms)),
	}
	for i, t := range trks {
		f.Tracks[i] = t.ToRaw()
	}
	for i, t := range falarms {
		f.Falarms[i] = t.ToRaw()
	}
	return writeJSON(path, f)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
