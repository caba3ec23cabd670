// Package patients provides patient record fixtures for tests. It offers a
// fluent builder over a few clinically plausible profiles and renders them as
// form values or as upload CSV.
//
// Example usage:
//
//	records := patients.NewBuilder(t).
//		WithFixture(patients.FixtureSample).
//		With(patients.FixtureAtRisk, func(p *model.PatientRecord) { p.Age = 70 }).
//		Build()
package patients

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/Veraticus/ckd-predict/internal/model"
)

// Builder accumulates patient records for a test.
type Builder struct {
	t       *testing.T
	records []model.PatientRecord
}

// NewBuilder starts an empty builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithProfile adds one record built from profile.
func (b *Builder) WithProfile(profile Profile) *Builder {
	b.t.Helper()
	b.records = append(b.records, profile.Record())
	return b
}

// With adds a record from profile after applying edit.
func (b *Builder) With(profile Profile, edit func(*model.PatientRecord)) *Builder {
	b.t.Helper()
	record := profile.Record()
	if edit != nil {
		edit(&record)
	}
	b.records = append(b.records, record)
	return b
}

// WithFixture adds every profile of fixture.
func (b *Builder) WithFixture(fixture Fixture) *Builder {
	b.t.Helper()
	for _, p := range fixture {
		b.WithProfile(p)
	}
	return b
}

// Build returns the records.
func (b *Builder) Build() []model.PatientRecord {
	out := make([]model.PatientRecord, len(b.records))
	copy(out, b.records)
	return out
}

// CSV renders the records as an upload file with a header row.
func (b *Builder) CSV() []byte {
	b.t.Helper()
	return CSV(b.t, b.records...)
}

// CSV renders records as an upload file with a header row.
func CSV(t *testing.T, records ...model.PatientRecord) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.PatientColumns()); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			t.Fatalf("failed to write record: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("failed to flush csv: %v", err)
	}
	return buf.Bytes()
}

// Values returns record as raw form values keyed by column name.
func Values(record model.PatientRecord) map[string]string {
	values := make(map[string]string, len(model.PatientFields))
	for _, f := range model.PatientFields {
		values[f.Name] = record.Value(f.Name)
	}
	return values
}
