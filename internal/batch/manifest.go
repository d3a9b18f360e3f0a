package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"pose-warp/internal/track"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame   int     `json:"frame"`
	Time    float64 `json:"time"`
	Image   string  `json:"image,omitempty"`
	Skipped bool    `json:"skipped,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// WriteManifest writes manifest.json for a finished run.
func WriteManifest(path string, frames []track.Frame, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Frame:   r.Frame,
			Skipped: r.Skipped,
			Error:   r.Error,
		}
		if i < len(frames) {
			entries[i].Time = frames[i].Time
		}
		if r.Success {
			entries[i].Image = fmt.Sprintf("frame_%05d.webp", r.Frame)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
