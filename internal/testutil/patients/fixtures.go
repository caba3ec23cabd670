package patients

import "github.com/Veraticus/ckd-predict/internal/model"

// Profile names a predefined patient.
type Profile string

// Predefined profiles. The sample profiles match the rows of the bundled sample CSV.
const (
	ProfileHealthy Profile = "healthy"
	ProfileAtRisk  Profile = "at-risk"
	ProfileSample1 Profile = "sample-1"
	ProfileSample2 Profile = "sample-2"
	ProfileSample3 Profile = "sample-3"
)

// Fixture is an ordered set of profiles.
type Fixture []Profile

// Common fixtures.
var (
	// FixtureSample reproduces the bundled sample CSV.
	FixtureSample = Fixture{ProfileSample1, ProfileSample2, ProfileSample3}
	// FixtureMixed has one healthy and one at-risk patient.
	FixtureMixed = Fixture{ProfileHealthy, ProfileAtRisk}
)

type profileData struct {
	numeric map[string]float64
	choices map[string]string
}

var profiles = map[Profile]profileData{
	ProfileHealthy: {
		numeric: map[string]float64{
			"age": 35, "bp": 70, "sg": 1.025, "al": 0, "su": 0, "bgr": 95, "bu": 20, "sc": 0.8,
			"sod": 140, "pot": 4.2, "hemo": 15.2, "pcv": 45, "wc": 7000, "rc": 5.1,
		},
	},
	ProfileAtRisk: {
		numeric: map[string]float64{
			"age": 68, "bp": 100, "sg": 1.005, "al": 4, "su": 2, "bgr": 260, "bu": 110, "sc": 6.3,
			"sod": 128, "pot": 5.9, "hemo": 8.1, "pcv": 24, "wc": 11800, "rc": 2.9,
		},
		choices: map[string]string{
			"rbc": "abnormal", "pc": "abnormal", "pcc": "present", "htn": "yes", "dm": "yes",
			"appet": "poor", "pe": "yes", "ane": "yes",
		},
	},
	ProfileSample1: {
		numeric: map[string]float64{
			"age": 48, "bp": 80, "sg": 1.02, "al": 1, "su": 0, "bgr": 121, "bu": 36, "sc": 1.2,
			"sod": 135, "pot": 4.5, "hemo": 15.4, "pcv": 44, "wc": 7800, "rc": 5.2,
		},
		choices: map[string]string{"htn": "yes", "dm": "yes"},
	},
	ProfileSample2: {
		numeric: map[string]float64{
			"age": 62, "bp": 80, "sg": 1.01, "al": 2, "su": 3, "bgr": 423, "bu": 53, "sc": 1.8,
			"sod": 138, "pot": 3.8, "hemo": 9.6, "pcv": 31, "wc": 7500, "rc": 4.2,
		},
		choices: map[string]string{"dm": "yes", "appet": "poor", "ane": "yes"},
	},
	ProfileSample3: {
		numeric: map[string]float64{
			"age": 45, "bp": 70, "sg": 1.015, "al": 0, "su": 0, "bgr": 117, "bu": 42, "sc": 1.1,
			"sod": 140, "pot": 4.2, "hemo": 14.5, "pcv": 40, "wc": 6700, "rc": 4.8,
		},
	},
}

// Record returns the profile as a patient record. Unset choices keep their defaults.
// An unknown profile yields the all-defaults record.
func (p Profile) Record() model.PatientRecord {
	record := model.NewPatientRecord()
	data := profiles[p]
	for name, v := range data.numeric {
		record.SetNumeric(name, v)
	}
	for name, v := range data.choices {
		record.SetChoice(name, v)
	}
	return record
}
