// Package track reads recorded keypoint-detector output: an ordered
// sequence of per-frame handle target sets.
package track

import (
	"encoding/json"
	"fmt"
	"os"

	"pose-warp/internal/geom"
	"pose-warp/internal/pose"
)

// Frame is one detector result. An empty point list marks a frame
// whose detection failed; the pipeline skips it.
type Frame struct {
	Time   float64      `json:"time"`
	Points []geom.Point `json:"points"`
}

// Targets returns the frame's points as a handle set.
func (f Frame) Targets() pose.HandleSet {
	return pose.HandleSet(f.Points)
}

// Track is a recorded detector session.
type Track struct {
	FPS    float64 `json:"fps"`
	Frames []Frame `json:"frames"`
}

// Load reads a track JSON file.
func Load(path string) (*Track, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("track: read %s: %w", path, err)
	}
	var tr Track
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, fmt.Errorf("track: parse %s: %w", path, err)
	}
	if len(tr.Frames) == 0 {
		return nil, fmt.Errorf("track: %s contains no frames", path)
	}
	return &tr, nil
}

// LoadHandles reads a standalone handle set JSON file: a plain array
// of points. Used for the reference pose and the boundary polygon.
func LoadHandles(path string) (pose.HandleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("track: read %s: %w", path, err)
	}
	var pts []geom.Point
	if err := json.Unmarshal(raw, &pts); err != nil {
		return nil, fmt.Errorf("track: parse %s: %w", path, err)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("track: %s contains no points", path)
	}
	return pose.HandleSet(pts), nil
}
