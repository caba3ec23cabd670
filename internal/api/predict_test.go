package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Predict(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantClass model.PredictionClass
		wantConf  float64
		wantErr   bool
	}{
		{name: "numeric confidence", body: `{"prediction":"ckd","confidence":91.236}`, wantClass: model.ClassCKD, wantConf: 91.24},
		{name: "string confidence", body: `{"prediction":"Not CKD","confidence":"77.5"}`, wantClass: model.ClassNotCKD, wantConf: 77.5},
		{name: "unknown class", body: `{"prediction":"maybe","confidence":50}`, wantErr: true},
		{name: "bad confidence", body: `{"prediction":"ckd","confidence":"high"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHTTPMock(t)
			httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/api/predict",
				func(req *http.Request) (*http.Response, error) {
					body := decodeBody(t, req)
					assert.Equal(t, "normal", body["rbc"])
					assert.InDelta(t, 48.0, body["age"], 0.001)
					return httpmock.NewStringResponse(http.StatusOK, tt.body), nil
				})

			record := model.NewPatientRecord()
			record.Age = 48

			result, err := newTestClient(t, 0).Predict(context.Background(), record)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantClass, result.Class)
			assert.InDelta(t, tt.wantConf, result.Confidence, 0.0001)
			assert.Equal(t, record, result.Input)
		})
	}
}

func TestClient_PredictBatch(t *testing.T) {
	setupHTTPMock(t)

	const csvContent = "age,bp\n48,80\n"
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/api/predict-batch",
		func(req *http.Request) (*http.Response, error) {
			assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data"))
			file, header, err := req.FormFile("file")
			require.NoError(t, err)
			defer func() { _ = file.Close() }()
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "patients.csv", header.Filename)
			assert.Equal(t, csvContent, string(data))
			return httpmock.NewStringResponse(http.StatusOK, `{"results":[
				{"id":1,"prediction":"ckd","confidence":88.1},
				{"prediction":"notckd","confidence":"72.456"}
			]}`), nil
		})

	result, err := newTestClient(t, 0).PredictBatch(context.Background(), "patients.csv", strings.NewReader(csvContent))
	require.NoError(t, err)

	assert.Equal(t, "patients.csv", result.FileName)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 2, result.Records[1].ID)
	assert.InDelta(t, 72.46, result.Records[1].Confidence, 0.0001)
	assert.Equal(t, model.BatchSummary{Total: 2, Positive: 1, Negative: 1}, result.Summary)
}

func TestClient_PredictBatchUsesServiceSummary(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/api/predict-batch",
		httpmock.NewStringResponder(http.StatusOK, `{"fileName":"renamed.csv","results":[],"summary":{"total":5,"ckd":3,"notCkd":2}}`))

	result, err := newTestClient(t, 0).PredictBatch(context.Background(), "patients.csv", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "renamed.csv", result.FileName)
	assert.Equal(t, model.BatchSummary{Total: 5, Positive: 3, Negative: 2}, result.Summary)
}
