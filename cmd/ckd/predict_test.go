package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/prediction"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numericArgs = []string{
	"--age", "48", "--bp", "80", "--sg", "1.02", "--al", "1", "--su", "0",
	"--bgr", "121", "--bu", "36", "--sc", "1.2", "--sod", "135", "--pot", "4.5",
	"--hemo", "15.4", "--pcv", "44", "--wc", "7800", "--rc", "5.2",
}

func TestPredictCmd(t *testing.T) {
	setupConfig(t)
	loginUser(t)

	out, err := execute(t, predictCmd(), numericArgs...)
	require.NoError(t, err)
	assert.Contains(t, out, "Confidence:")
	assert.Contains(t, out, "Patient Parameters Summary")
	assert.Contains(t, out, prediction.Disclaimer)
}

func TestPredictCmd_JSON(t *testing.T) {
	setupConfig(t)
	loginUser(t)

	out, err := execute(t, predictCmd(), append(numericArgs, "--htn", "Yes", "--json")...)
	require.NoError(t, err)

	var got model.SingleResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, []model.PredictionClass{model.ClassCKD, model.ClassNotCKD}, got.Class)
	assert.GreaterOrEqual(t, got.Confidence, 70.0)
	assert.LessOrEqual(t, got.Confidence, 100.0)
	assert.Equal(t, "yes", got.Input.HTN)
	assert.InDelta(t, 15.4, got.Input.Hemo, 1e-9)
}

func TestPredictCmd_InputFile(t *testing.T) {
	dir := setupConfig(t)
	loginUser(t)

	input := map[string]any{
		"age": 62, "bp": 70, "sg": 1.015, "al": 2, "su": 0, "rbc": "abnormal",
		"bgr": 140, "bu": 50, "sc": 2.1, "sod": 132, "pot": 5.1, "hemo": 9.8,
		"pcv": 30, "wc": 9000, "rc": 3.9, "htn": "yes", "dm": "yes",
	}
	data, err := json.Marshal(input)
	require.NoError(t, err)
	path := filepath.Join(dir, "patient.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, err := execute(t, predictCmd(), "--input", path, "--age", "63", "--json")
	require.NoError(t, err)

	var got model.SingleResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 63, got.Input.Age, 1e-9, "flags override the input file")
	assert.InDelta(t, 2.1, got.Input.SC, 1e-9)
	assert.Equal(t, "abnormal", got.Input.RBC)
	assert.Equal(t, "yes", got.Input.DM)
	assert.Equal(t, "no", got.Input.CAD, "unset choices keep their defaults")
}

func TestPredictCmd_RequiresUserSession(t *testing.T) {
	dir := setupConfig(t)

	out, err := execute(t, predictCmd(), numericArgs...)
	require.ErrorIs(t, err, errNotLoggedIn)
	assert.Empty(t, out)

	csvPath := filepath.Join(dir, "patients.csv")
	require.NoError(t, prediction.WriteSample(csvPath))
	_, err = execute(t, batchCmd(), csvPath, "--quiet")
	require.ErrorIs(t, err, errNotLoggedIn)

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/api/admin/login",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"token": "adm-1",
			"admin": map[string]string{"name": "Root", "email": "root@example.com"},
		}))
	_, err = execute(t, adminCmd(), "login", "--email", "root@example.com", "--password", "secret1")
	require.NoError(t, err)

	_, err = execute(t, predictCmd(), numericArgs...)
	assert.ErrorIs(t, err, errNotLoggedIn, "an admin session cannot predict")
}

func TestPredictCmd_Validation(t *testing.T) {
	setupConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing numeric", args: numericArgs[2:], want: "age"},
		{name: "not a number", args: append([]string{"--bp", "high"}, numericArgs[2:]...), want: `"high" is not a number`},
		{name: "bad choice", args: append([]string{"--ane", "maybe"}, numericArgs...), want: "must be one of"},
		{name: "missing input file", args: []string{"--input", "/nonexistent/patient.json"}, want: "failed to read input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, predictCmd(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSampleCmd(t *testing.T) {
	dir := setupConfig(t)
	path := filepath.Join(dir, "nested", prediction.SampleFileName)

	out, err := execute(t, sampleCmd(), "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Sample CSV saved to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, prediction.SampleCSV(), data)

	out, err = execute(t, sampleCmd(), "--out", "-")
	require.NoError(t, err)
	assert.Equal(t, string(prediction.SampleCSV()), out)
}

func TestBatchCmd(t *testing.T) {
	dir := setupConfig(t)
	loginUser(t)
	csvPath := filepath.Join(dir, "patients.csv")
	require.NoError(t, prediction.WriteSample(csvPath))
	exportDir := filepath.Join(dir, "results")

	out, err := execute(t, batchCmd(), csvPath, "--quiet", "--out", exportDir)
	require.NoError(t, err)
	assert.Contains(t, out, "patients.csv")
	assert.Contains(t, out, "Total: 3")
	assert.Contains(t, out, "Results exported to")

	files, err := filepath.Glob(filepath.Join(exportDir, "ckd_predictions_*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Join(prediction.ResultsHeader, ","), lines[0])
}

func TestBatchCmd_Rejects(t *testing.T) {
	dir := setupConfig(t)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))
	_, err := execute(t, batchCmd(), txt)
	assert.ErrorIs(t, err, prediction.ErrNotCSV)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("age,bp\n48,80\n"), 0o600))
	_, err = execute(t, batchCmd(), bad, "--quiet")
	assert.ErrorIs(t, err, prediction.ErrMissingColumns)

	_, err = execute(t, batchCmd())
	assert.Error(t, err)
}

func TestReadWithProgress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patients.csv")
	require.NoError(t, prediction.WriteSample(path))

	var progress strings.Builder
	data, err := readWithProgress(path, &progress, false)
	require.NoError(t, err)
	assert.Equal(t, prediction.SampleCSV(), data)

	_, err = readWithProgress(filepath.Join(dir, "missing.csv"), &progress, true)
	assert.Error(t, err)
}
