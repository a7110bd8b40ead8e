package model

import "fmt"

// Motif is a short recurring melodic+rhythmic pattern, abstracted as pitch
// intervals plus duration labels. Immutable after construction.
type Motif struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Rhythm      []string `json:"rhythm"`
	Intervals   []int    `json:"intervals"`
	Confidence  float64  `json:"confidence"`
	Emotion     *string  `json:"emotion,omitempty"`
}

// NewMotif validates and builds a Motif. The first note of a pattern has no
// interval relative to itself, so intervals must be one shorter than rhythm.
func NewMotif(id string, description string, rhythm []string, intervals []int, confidence float64, emotion *string) (Motif, error) {
	var m Motif
	if confidence < 0.0 || confidence > 1.0 {
		return m, fmt.Errorf("confidence must be between 0.0 and 1.0, got %v", confidence)
	}
	if len(intervals) != len(rhythm)-1 {
		return m, fmt.Errorf("intervals length (%v) should be rhythm length - 1 (%v)", len(intervals), len(rhythm)-1)
	}
	m.ID = id
	m.Description = description
	m.Rhythm = rhythm
	m.Intervals = intervals
	m.Confidence = confidence
	m.Emotion = emotion
	return m, nil
}

// MotifInstance is one occurrence of a motif in the score, created only by
// the matcher.
type MotifInstance struct {
	MotifID    string  `json:"motif_id"`
	Measure    int     `json:"measure"`
	Part       string  `json:"part"`
	StartBeat  float64 `json:"start_beat"`
	Confidence float64 `json:"confidence"`
	Variations *string `json:"variations,omitempty"`
}

// NewMotifInstance validates and builds a MotifInstance.
func NewMotifInstance(motifID string, measure int, part string, startBeat float64, confidence float64, variations *string) (MotifInstance, error) {
	var mi MotifInstance
	if confidence < 0.0 || confidence > 1.0 {
		return mi, fmt.Errorf("confidence must be between 0.0 and 1.0, got %v", confidence)
	}
	if measure < 1 {
		return mi, fmt.Errorf("measure must be >= 1, got %v", measure)
	}
	if startBeat < 1 {
		return mi, fmt.Errorf("start beat must be >= 1, got %v", startBeat)
	}
	mi.MotifID = motifID
	mi.Measure = measure
	mi.Part = part
	mi.StartBeat = startBeat
	mi.Confidence = confidence
	mi.Variations = variations
	return mi, nil
}

// AnalysisMeta describes the analyzed work. Only Source is always present.
type AnalysisMeta struct {
	Source   string `json:"source"`
	Work     string `json:"work,omitempty"`
	Composer string `json:"composer,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// MotifAnalysis is the complete result of one analysis run.
type MotifAnalysis struct {
	Meta      AnalysisMeta    `json:"meta"`
	Motifs    []Motif         `json:"motifs"`
	Instances []MotifInstance `json:"instances"`
}

// ScoreMetadata is externally stored work metadata keyed by filename.
type ScoreMetadata struct {
	Title    string
	Composer string
	Year     uint
}
