package prediction

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/ckd-predict/internal/forms"
	"github.com/Veraticus/ckd-predict/internal/model"
)

// SampleFileName is the name the sample CSV is saved under.
const SampleFileName = "sample_ckd_data.csv"

// ResultsHeader is the header row of exported batch results.
var ResultsHeader = []string{"ID", "Prediction", "Confidence (%)"}

var (
	// ErrNotCSV is returned for files without a .csv extension.
	ErrNotCSV = errors.New("please upload a valid CSV file")
	// ErrNoRecords is returned for a batch without patient rows.
	ErrNoRecords = errors.New("no patient records")
	// ErrMissingColumns is returned when the header lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")
)

const sampleCSV = `age,bp,sg,al,su,rbc,pc,pcc,ba,bgr,bu,sc,sod,pot,hemo,pcv,wc,rc,htn,dm,cad,appet,pe,ane
48,80,1.020,1,0,normal,normal,notpresent,notpresent,121,36,1.2,135,4.5,15.4,44,7800,5.2,yes,yes,no,good,no,no
62,80,1.010,2,3,normal,normal,notpresent,notpresent,423,53,1.8,138,3.8,9.6,31,7500,4.2,no,yes,no,poor,no,yes
45,70,1.015,0,0,normal,normal,notpresent,notpresent,117,42,1.1,140,4.2,14.5,40,6700,4.8,no,no,no,good,no,no
`

// SampleCSV returns a three-patient CSV in the expected format.
func SampleCSV() []byte {
	return []byte(sampleCSV)
}

// IsCSV reports whether path names a CSV file.
func IsCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// LoadBatch reads and validates a CSV file for batch prediction.
func LoadBatch(path string) (model.BatchUpload, error) {
	if !IsCSV(path) {
		return model.BatchUpload{}, fmt.Errorf("%s: %w", path, ErrNotCSV)
	}

	content, err := os.ReadFile(path) //nolint:gosec // user-selected file
	if err != nil {
		return model.BatchUpload{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return NewBatch(filepath.Base(path), content)
}

// NewBatch validates content read from fileName.
func NewBatch(fileName string, content []byte) (model.BatchUpload, error) {
	records, err := ParseRecords(bytes.NewReader(content))
	if err != nil {
		return model.BatchUpload{}, fmt.Errorf("%s: %w", fileName, err)
	}
	return model.BatchUpload{FileName: fileName, Content: content, Records: records}, nil
}

// ParseRecords parses a patient CSV. The header must name all 24 columns in
// any order; extra columns are ignored.
func ParseRecords(r io.Reader) ([]model.PatientRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range model.PatientColumns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var records []model.PatientRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		values := make(map[string]string, len(index))
		for col, i := range index {
			if i < len(row) {
				values[col] = row[i]
			}
		}

		record, err := forms.ParsePatient(values)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// WriteRecordsCSV writes patients in the upload format.
func WriteRecordsCSV(w io.Writer, records []model.PatientRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.PatientColumns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsCSV exports batch results as ID,Prediction,Confidence (%).
func WriteResultsCSV(w io.Writer, result model.BatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultsHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range result.Records {
		row := []string{
			strconv.Itoa(r.ID),
			string(r.Class),
			strconv.FormatFloat(r.Confidence, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write result %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ResultsFileName names an export made at now.
func ResultsFileName(now time.Time) string {
	return fmt.Sprintf("ckd_predictions_%d.csv", now.UnixMilli())
}

// ExportResults writes result into dir under ResultsFileName and returns the path.
func ExportResults(dir string, result model.BatchResult, now time.Time) (string, error) {
	path := filepath.Join(dir, ResultsFileName(now))
	f, err := os.Create(path) //nolint:gosec // path built from a fixed pattern
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteResultsCSV(f, result); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// WriteSample saves SampleCSV to path.
func WriteSample(path string) error {
	if err := os.WriteFile(path, SampleCSV(), 0o600); err != nil {
		return fmt.Errorf("failed to write sample csv: %w", err)
	}
	return nil
}
