package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/wavecurve/internal/storage"
	"github.com/san-kum/wavecurve/internal/wave"
)

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonSample struct {
	T            float64   `json:"t"`
	Theta        float64   `json:"theta"`
	Base         jsonPoint `json:"base"`
	Normal       jsonPoint `json:"normal"`
	ArcLength    float64   `json:"arc_length"`
	Amplitude    float64   `json:"amplitude"`
	NormalOffset float64   `json:"normal_offset"`
	Point        jsonPoint `json:"point"`
}

type jsonRun struct {
	Run     storage.RunMetadata `json:"run"`
	Samples []jsonSample        `json:"samples"`
}

// JSON writes a run and its samples as one indented document.
func JSON(w io.Writer, meta storage.RunMetadata, samples []wave.Sample) error {
	doc := jsonRun{
		Run:     meta,
		Samples: make([]jsonSample, len(samples)),
	}
	for i, s := range samples {
		doc.Samples[i] = jsonSample{
			T:            s.T,
			Theta:        s.Theta,
			Base:         jsonPoint{s.Base.X, s.Base.Y},
			Normal:       jsonPoint{s.Normal.X, s.Normal.Y},
			ArcLength:    s.ArcLength,
			Amplitude:    s.Amplitude,
			NormalOffset: s.NormalOffset,
			Point:        jsonPoint{s.Point.X, s.Point.Y},
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
