package model

import "math"

// PredictionClass is the model's verdict for one patient.
type PredictionClass string

// PredictionClass constants.
const (
	ClassCKD    PredictionClass = "CKD"
	ClassNotCKD PredictionClass = "Not CKD"
)

// IsPositive reports whether the class indicates chronic kidney disease.
func (c PredictionClass) IsPositive() bool {
	return c == ClassCKD
}

// NormalizeClass maps the labels used by the service ("ckd", "notckd", "CKD", "Not CKD") onto a class.
func NormalizeClass(label string) (PredictionClass, bool) {
	switch label {
	case "CKD", "ckd", "Ckd":
		return ClassCKD, true
	case "Not CKD", "notckd", "not ckd", "NotCKD", "Not Ckd":
		return ClassNotCKD, true
	}
	return "", false
}

// ResultKind tags the PredictionResult union.
type ResultKind string

// ResultKind constants.
const (
	ResultSingle ResultKind = "single"
	ResultBatch  ResultKind = "batch"
)

// SingleResult is the outcome of a single-patient prediction.
type SingleResult struct {
	Class      PredictionClass `json:"prediction"`
	Input      PatientRecord   `json:"data"`
	Confidence float64         `json:"confidence"`
}

// RecordResult is one row of a batch prediction.
type RecordResult struct {
	Class      PredictionClass `json:"prediction"`
	ID         int             `json:"id"`
	Confidence float64         `json:"confidence"`
}

// BatchSummary aggregates a batch prediction.
type BatchSummary struct {
	Total    int `json:"total"`
	Positive int `json:"ckd"`
	Negative int `json:"notCkd"`
}

// BatchResult is the outcome of a CSV batch prediction.
type BatchResult struct {
	FileName string         `json:"fileName"`
	Records  []RecordResult `json:"results"`
	Summary  BatchSummary   `json:"summary"`
}

// PredictionResult is the tagged union of single and batch outcomes.
// Exactly one of Single and Batch is set, matching Kind.
type PredictionResult struct {
	Single *SingleResult
	Batch  *BatchResult
	Kind   ResultKind
}

// NewSingleResult wraps a single outcome.
func NewSingleResult(r SingleResult) *PredictionResult {
	return &PredictionResult{Kind: ResultSingle, Single: &r}
}

// NewBatchResult wraps a batch outcome.
func NewBatchResult(r BatchResult) *PredictionResult {
	return &PredictionResult{Kind: ResultBatch, Batch: &r}
}

// BatchUpload is a CSV file submitted for batch prediction.
type BatchUpload struct {
	FileName string
	Content  []byte
	Records  []PatientRecord
}

// RoundConfidence rounds a percentage to two decimals.
func RoundConfidence(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize counts positive and negative records.
func Summarize(records []RecordResult) BatchSummary {
	s := BatchSummary{Total: len(records)}
	for _, r := range records {
		if r.Class.IsPositive() {
			s.Positive++
		} else {
			s.Negative++
		}
	}
	return s
}
