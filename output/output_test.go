package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/motifdex/model"
)

func sampleAnalysis(t *testing.T) model.MotifAnalysis {
	emotion := "tender"
	m, err := model.NewMotif("m1", "quarter-quarter ascending stepwise pattern",
		[]string{"quarter", "quarter"}, []int{2}, 0.8, &emotion)
	assert.NoError(t, err)

	mi, err := model.NewMotifInstance("m1", 2, "Piano", 1.5, 0.95, nil)
	assert.NoError(t, err)

	s := &model.Score{Title: "Test Work", Composer: "A Composer"}
	return NewAnalysis(s, []model.Motif{m}, []model.MotifInstance{mi}, "test run")
}

func TestNewAnalysisMeta(t *testing.T) {
	a := sampleAnalysis(t)

	assert := assert.New(t)
	assert.Equal("motifdex", a.Meta.Source)
	assert.Equal("Test Work", a.Meta.Work)
	assert.Equal("A Composer", a.Meta.Composer)
	assert.Equal("test run", a.Meta.Notes)
}

func TestNewAnalysisEmpty(t *testing.T) {
	a := NewAnalysis(&model.Score{}, nil, nil, "")
	jsonStr, err := FormatJSON(a)

	assert := assert.New(t)
	assert.NoError(err)
	// empty results serialize as lists, never null
	assert.Contains(jsonStr, `"motifs": []`)
	assert.Contains(jsonStr, `"instances": []`)
	assert.NotContains(jsonStr, `"work"`)
	assert.NotContains(jsonStr, `"composer"`)
	assert.NotContains(jsonStr, `"notes"`)
}

func TestFormatJSONShape(t *testing.T) {
	jsonStr, err := FormatJSON(sampleAnalysis(t))
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal([]byte(jsonStr), &decoded))

	assert := assert.New(t)

	meta := decoded["meta"].(map[string]any)
	assert.Equal("motifdex", meta["source"])

	motifs := decoded["motifs"].([]any)
	motif := motifs[0].(map[string]any)
	assert.Equal("m1", motif["id"])
	assert.Equal("tender", motif["emotion"])
	assert.Equal([]any{2.0}, motif["intervals"])
	assert.Equal([]any{"quarter", "quarter"}, motif["rhythm"])

	instances := decoded["instances"].([]any)
	instance := instances[0].(map[string]any)
	assert.Equal("m1", instance["motif_id"])
	assert.Equal(2.0, instance["measure"])
	assert.Equal("Piano", instance["part"])
	// fractional beats are plain numbers
	assert.Equal(1.5, instance["start_beat"])
	_, hasVariations := instance["variations"]
	assert.False(hasVariations)
}

func TestOptionalFieldsOmitted(t *testing.T) {
	m, err := model.NewMotif("m1", "test", []string{"quarter"}, nil, 1.0, nil)
	assert.NoError(t, err)

	a := NewAnalysis(&model.Score{}, []model.Motif{m}, nil, "")
	jsonStr, err := FormatJSON(a)

	assert.NoError(t, err)
	assert.NotContains(t, jsonStr, "emotion")
}

func TestSaveAndSaveToDir(t *testing.T) {
	dir := t.TempDir()
	a := sampleAnalysis(t)

	assert := assert.New(t)

	path := filepath.Join(dir, "analysis.json")
	assert.NoError(Save(a, path))
	data, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Contains(string(data), `"start_beat": 1.5`)

	saved, err := SaveToDir(a, filepath.Join(dir, "out"))
	assert.NoError(err)
	assert.True(strings.HasSuffix(saved, ".json"))
	_, err = os.Stat(saved)
	assert.NoError(err)
}
