// Package output assembles and persists analysis results.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jsphweid/motifdex/model"
)

const Source = "motifdex"

// NewAnalysis bundles motifs and instances with the score's metadata. Nil
// slices become empty ones so results always serialize as lists.
func NewAnalysis(score *model.Score, motifs []model.Motif, instances []model.MotifInstance, notes string) model.MotifAnalysis {
	if motifs == nil {
		motifs = []model.Motif{}
	}
	if instances == nil {
		instances = []model.MotifInstance{}
	}

	meta := model.AnalysisMeta{Source: Source, Notes: notes}
	if score != nil {
		meta.Work = score.Title
		meta.Composer = score.Composer
	}

	return model.MotifAnalysis{
		Meta:      meta,
		Motifs:    motifs,
		Instances: instances,
	}
}

// FormatJSON renders an analysis as 2-space-indented JSON.
func FormatJSON(analysis model.MotifAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not format analysis: %s", err.Error())
	}
	return string(data), nil
}

// Save writes an analysis to an explicit path.
func Save(analysis model.MotifAnalysis, path string) error {
	jsonStr, err := FormatJSON(analysis)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(jsonStr), 0666); err != nil {
		return fmt.Errorf("write failed for file %v: %s", path, err.Error())
	}
	return nil
}

// SaveToDir writes an analysis as a uuid-named artifact under dir, creating
// the dir when missing, and returns the written path.
func SaveToDir(analysis model.MotifAnalysis, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", fmt.Errorf("could not create output dir %v: %s", dir, err.Error())
	}
	path := filepath.Join(dir, uuid.New().String()+".json")
	if err := Save(analysis, path); err != nil {
		return "", err
	}
	return path, nil
}
