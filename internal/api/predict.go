package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Veraticus/ckd-predict/internal/model"
)

// confidence accepts both 87.5 and "87.5" on the wire.
type confidence float64

func (c *confidence) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*c = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid confidence %s: %w", data, err)
	}
	*c = confidence(v)
	return nil
}

type predictionPayload struct {
	Prediction string     `json:"prediction"`
	ID         int        `json:"id"`
	Confidence confidence `json:"confidence"`
}

func (p predictionPayload) class() (model.PredictionClass, error) {
	class, ok := model.NormalizeClass(p.Prediction)
	if !ok {
		return "", fmt.Errorf("%w: unknown prediction %q", ErrMalformedResponse, p.Prediction)
	}
	return class, nil
}

// Predict classifies a single patient.
func (c *Client) Predict(ctx context.Context, record model.PatientRecord) (model.SingleResult, error) {
	body, err := withJSONBody(record)
	if err != nil {
		return model.SingleResult{}, err
	}

	var resp predictionPayload
	if err := c.do(ctx, http.MethodPost, "/api/predict", &resp, body); err != nil {
		return model.SingleResult{}, err
	}

	class, err := resp.class()
	if err != nil {
		return model.SingleResult{}, err
	}

	return model.SingleResult{
		Class:      class,
		Confidence: model.RoundConfidence(float64(resp.Confidence)),
		Input:      record,
	}, nil
}

// PredictBatch uploads a CSV file as the multipart field "file".
func (c *Client) PredictBatch(ctx context.Context, fileName string, content io.Reader) (model.BatchResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return model.BatchResult{}, fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	if err := mw.Close(); err != nil {
		return model.BatchResult{}, fmt.Errorf("failed to finish upload: %w", err)
	}

	var resp struct {
		FileName string              `json:"fileName"`
		Results  []predictionPayload `json:"results"`
		Summary  *model.BatchSummary `json:"summary"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/predict-batch", &resp, withRawBody(&buf, mw.FormDataContentType())); err != nil {
		return model.BatchResult{}, err
	}

	result := model.BatchResult{FileName: resp.FileName, Records: make([]model.RecordResult, 0, len(resp.Results))}
	if result.FileName == "" {
		result.FileName = fileName
	}

	for i, r := range resp.Results {
		class, err := r.class()
		if err != nil {
			return model.BatchResult{}, fmt.Errorf("record %d: %w", i+1, err)
		}
		id := r.ID
		if id == 0 {
			id = i + 1
		}
		result.Records = append(result.Records, model.RecordResult{
			ID:         id,
			Class:      class,
			Confidence: model.RoundConfidence(float64(r.Confidence)),
		})
	}

	if resp.Summary != nil {
		result.Summary = *resp.Summary
	} else {
		result.Summary = model.Summarize(result.Records)
	}

	return result, nil
}
