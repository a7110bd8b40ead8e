package model

type AnalyzeRequestBody struct {
	File              string  `json:"file"`
	MinLength         int     `json:"min_length"`
	MaxLength         int     `json:"max_length"`
	MinOccurrences    int     `json:"min_occurrences"`
	MinConfidence     float64 `json:"min_confidence"`
	IntervalTolerance int     `json:"interval_tolerance"`
	RhythmTolerance   float64 `json:"rhythm_tolerance"`
}

type MotifPayload struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Rhythm      []string `json:"rhythm"`
	Intervals   []int    `json:"intervals"`
	Confidence  float64  `json:"confidence"`
	Emotion     *string  `json:"emotion,omitempty"`
}

type FindRequestBody struct {
	File              string       `json:"file"`
	Motif             MotifPayload `json:"motif"`
	IntervalTolerance int          `json:"interval_tolerance"`
	RhythmTolerance   float64      `json:"rhythm_tolerance"`
	MinConfidence     float64      `json:"min_confidence"`
}

type FindResponse struct {
	Instances []MotifInstance `json:"instances"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
