package prediction

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Veraticus/ckd-predict/internal/model"
)

// RandomProvider fabricates predictions: CKD with probability one half and a
// confidence uniform in [70, 100).
type RandomProvider struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewRandomProvider returns a provider seeded with seed, or with the clock when seed is 0.
func NewRandomProvider(seed int64) *RandomProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomProvider{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // not security sensitive
}

func (p *RandomProvider) draw() (model.PredictionClass, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	class := model.ClassNotCKD
	if p.rng.Float64() > 0.5 {
		class = model.ClassCKD
	}
	return class, model.RoundConfidence(p.rng.Float64()*30 + 70)
}

// PredictSingle implements service.PredictionProvider.
func (p *RandomProvider) PredictSingle(ctx context.Context, record model.PatientRecord) (*model.PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	class, confidence := p.draw()
	return model.NewSingleResult(model.SingleResult{
		Class:      class,
		Confidence: confidence,
		Input:      record,
	}), nil
}

// PredictBatch implements service.PredictionProvider. One record is produced
// per patient row; rows are parsed from Content when Records is empty.
func (p *RandomProvider) PredictBatch(ctx context.Context, upload model.BatchUpload) (*model.PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patients, err := uploadRecords(upload)
	if err != nil {
		return nil, err
	}

	records := make([]model.RecordResult, 0, len(patients))
	for i := range patients {
		class, confidence := p.draw()
		records = append(records, model.RecordResult{
			ID:         i + 1,
			Class:      class,
			Confidence: confidence,
		})
	}

	return model.NewBatchResult(model.BatchResult{
		FileName: upload.FileName,
		Records:  records,
		Summary:  model.Summarize(records),
	}), nil
}

func uploadRecords(upload model.BatchUpload) ([]model.PatientRecord, error) {
	if len(upload.Records) > 0 {
		return upload.Records, nil
	}
	if len(upload.Content) == 0 {
		return nil, fmt.Errorf("%s: %w", upload.FileName, ErrNoRecords)
	}
	records, err := ParseRecords(bytes.NewReader(upload.Content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", upload.FileName, err)
	}
	return records, nil
}
