package store

import (
	"encoding/json"
	"io"
)

// Export is the JSON shape of one stored run.
type Export struct {
	Meta   RunMetadata          `json:"meta"`
	Values []float64            `json:"values"`
	Points []map[string]float64 `json:"points"`
}

// ExportJSON writes a stored run as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	values, points, err := s.LoadPoints(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export{Meta: *meta, Values: values, Points: points})
}
