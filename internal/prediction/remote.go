package prediction

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ckd-predict/internal/model"
)

// RemoteProvider forwards predictions to the prediction service.
type RemoteProvider struct {
	client Predictor
	logger *slog.Logger
}

// NewRemoteProvider wraps client.
func NewRemoteProvider(client Predictor, logger *slog.Logger) *RemoteProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteProvider{client: client, logger: logger}
}

// PredictSingle implements service.PredictionProvider.
func (p *RemoteProvider) PredictSingle(ctx context.Context, record model.PatientRecord) (*model.PredictionResult, error) {
	result, err := p.client.Predict(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}
	p.logger.Debug("single prediction", "class", result.Class, "confidence", result.Confidence)
	return model.NewSingleResult(result), nil
}

// PredictBatch implements service.PredictionProvider. The raw file content is
// uploaded as is; parsed Records are only used when Content is empty.
func (p *RemoteProvider) PredictBatch(ctx context.Context, upload model.BatchUpload) (*model.PredictionResult, error) {
	content := upload.Content
	if len(content) == 0 {
		if len(upload.Records) == 0 {
			return nil, fmt.Errorf("%s: %w", upload.FileName, ErrNoRecords)
		}
		var buf bytes.Buffer
		if err := WriteRecordsCSV(&buf, upload.Records); err != nil {
			return nil, err
		}
		content = buf.Bytes()
	}

	result, err := p.client.PredictBatch(ctx, upload.FileName, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("batch prediction failed: %w", err)
	}
	p.logger.Debug("batch prediction", "file", result.FileName, "total", result.Summary.Total)
	return model.NewBatchResult(result), nil
}
