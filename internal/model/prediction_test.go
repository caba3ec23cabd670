package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		label string
		want  PredictionClass
		ok    bool
	}{
		{"CKD", ClassCKD, true},
		{"ckd", ClassCKD, true},
		{"Not CKD", ClassNotCKD, true},
		{"notckd", ClassNotCKD, true},
		{"", "", false},
		{"healthy", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := NormalizeClass(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredictionResultUnion(t *testing.T) {
	single := NewSingleResult(SingleResult{Class: ClassCKD, Confidence: 90})
	assert.Equal(t, ResultSingle, single.Kind)
	assert.NotNil(t, single.Single)
	assert.Nil(t, single.Batch)

	batch := NewBatchResult(BatchResult{FileName: "a.csv"})
	assert.Equal(t, ResultBatch, batch.Kind)
	assert.Nil(t, batch.Single)
	assert.Equal(t, "a.csv", batch.Batch.FileName)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]RecordResult{
		{ID: 1, Class: ClassCKD},
		{ID: 2, Class: ClassNotCKD},
		{ID: 3, Class: ClassCKD},
	})
	assert.Equal(t, BatchSummary{Total: 3, Positive: 2, Negative: 1}, s)
	assert.Equal(t, BatchSummary{}, Summarize(nil))
}

func TestRoundConfidence(t *testing.T) {
	assert.InDelta(t, 87.46, RoundConfidence(87.4567), 1e-9)
	assert.InDelta(t, 70.0, RoundConfidence(70.001), 1e-9)
}
