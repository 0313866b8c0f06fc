package model

import "time"

// Advisory is the single structured output unit returned per analyzed image.
// Box is a fixed placeholder rectangle since the model only classifies,
// it does not localize.
type Advisory struct {
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
	Box       []int   `json:"box"`
	Nutrition string  `json:"nutrition"`
	Advice    string  `json:"advice"`
}

// Prediction is one classification output from the inference gateway.
// Score is a probability in [0,1].
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalysisEvent is published to the broker after each successful analysis.
type AnalysisEvent struct {
	Label      string    `json:"label"`
	Score      float64   `json:"score"`
	Nutrition  string    `json:"nutrition"`
	ElapsedMs  int64     `json:"elapsed_ms"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}
