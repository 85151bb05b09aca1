package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Minutes []int   `json:"minutes"`
	Sizes   [][]int `json:"frontier_sizes"`
}

// ExportJSON writes a run's metadata together with its per-minute
// frontier sizes.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	steps, err := s.LoadSteps(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Minutes: steps.Minutes, Sizes: steps.Sizes})
}
