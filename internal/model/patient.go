package model

import "strconv"

// FieldKind distinguishes free numeric inputs from fixed option sets.
type FieldKind int

// FieldKind constants.
const (
	FieldNumeric FieldKind = iota
	FieldChoice
)

// PatientField describes one clinical parameter of the prediction form.
type PatientField struct {
	Name        string
	Label       string
	Section     string
	Placeholder string
	Default     string
	Options     []string
	Kind        FieldKind
}

// Form sections.
const (
	SectionBasic   = "Basic Information"
	SectionUrine   = "Urine Test Results"
	SectionBlood   = "Blood Test Results"
	SectionHistory = "Medical History"
)

var (
	normalOptions  = []string{"normal", "abnormal"}
	presentOptions = []string{"notpresent", "present"}
	yesNoOptions   = []string{"no", "yes"}
	appetiteOption = []string{"good", "poor"}
)

// PatientFields lists the 24 parameters in CSV column order.
var PatientFields = []PatientField{
	{Name: "age", Label: "Age (years)", Section: SectionBasic, Placeholder: "e.g., 48"},
	{Name: "bp", Label: "Blood Pressure (mm/Hg)", Section: SectionBasic, Placeholder: "e.g., 80"},
	{Name: "sg", Label: "Specific Gravity", Section: SectionUrine, Placeholder: "e.g., 1.020"},
	{Name: "al", Label: "Albumin (0-5)", Section: SectionUrine, Placeholder: "e.g., 0"},
	{Name: "su", Label: "Sugar (0-5)", Section: SectionUrine, Placeholder: "e.g., 0"},
	{Name: "rbc", Label: "Red Blood Cells", Section: SectionUrine, Kind: FieldChoice, Options: normalOptions, Default: "normal"},
	{Name: "pc", Label: "Pus Cell", Section: SectionUrine, Kind: FieldChoice, Options: normalOptions, Default: "normal"},
	{Name: "pcc", Label: "Pus Cell Clumps", Section: SectionUrine, Kind: FieldChoice, Options: presentOptions, Default: "notpresent"},
	{Name: "ba", Label: "Bacteria", Section: SectionUrine, Kind: FieldChoice, Options: presentOptions, Default: "notpresent"},
	{Name: "bgr", Label: "Blood Glucose Random (mg/dL)", Section: SectionBlood, Placeholder: "e.g., 121"},
	{Name: "bu", Label: "Blood Urea (mg/dL)", Section: SectionBlood, Placeholder: "e.g., 36"},
	{Name: "sc", Label: "Serum Creatinine (mg/dL)", Section: SectionBlood, Placeholder: "e.g., 1.2"},
	{Name: "sod", Label: "Sodium (mEq/L)", Section: SectionBlood, Placeholder: "e.g., 135"},
	{Name: "pot", Label: "Potassium (mEq/L)", Section: SectionBlood, Placeholder: "e.g., 4.5"},
	{Name: "hemo", Label: "Hemoglobin (gms)", Section: SectionBlood, Placeholder: "e.g., 15.4"},
	{Name: "pcv", Label: "Packed Cell Volume", Section: SectionBlood, Placeholder: "e.g., 44"},
	{Name: "wc", Label: "White Blood Cell Count (cells/cumm)", Section: SectionBlood, Placeholder: "e.g., 7800"},
	{Name: "rc", Label: "Red Blood Cell Count (millions/cmm)", Section: SectionBlood, Placeholder: "e.g., 5.2"},
	{Name: "htn", Label: "Hypertension", Section: SectionHistory, Kind: FieldChoice, Options: yesNoOptions, Default: "no"},
	{Name: "dm", Label: "Diabetes Mellitus", Section: SectionHistory, Kind: FieldChoice, Options: yesNoOptions, Default: "no"},
	{Name: "cad", Label: "Coronary Artery Disease", Section: SectionHistory, Kind: FieldChoice, Options: yesNoOptions, Default: "no"},
	{Name: "appet", Label: "Appetite", Section: SectionHistory, Kind: FieldChoice, Options: appetiteOption, Default: "good"},
	{Name: "pe", Label: "Pedal Edema", Section: SectionHistory, Kind: FieldChoice, Options: yesNoOptions, Default: "no"},
	{Name: "ane", Label: "Anemia", Section: SectionHistory, Kind: FieldChoice, Options: yesNoOptions, Default: "no"},
}

// PatientColumns returns the field names in CSV column order.
func PatientColumns() []string {
	cols := make([]string, len(PatientFields))
	for i, f := range PatientFields {
		cols[i] = f.Name
	}
	return cols
}

// LookupPatientField returns the field definition for name.
func LookupPatientField(name string) (PatientField, bool) {
	for _, f := range PatientFields {
		if f.Name == name {
			return f, true
		}
	}
	return PatientField{}, false
}

// PatientRecord holds one patient's clinical parameters.
type PatientRecord struct {
	RBC   string  `json:"rbc"`
	PC    string  `json:"pc"`
	PCC   string  `json:"pcc"`
	BA    string  `json:"ba"`
	HTN   string  `json:"htn"`
	DM    string  `json:"dm"`
	CAD   string  `json:"cad"`
	Appet string  `json:"appet"`
	PE    string  `json:"pe"`
	ANE   string  `json:"ane"`
	Age   float64 `json:"age"`
	BP    float64 `json:"bp"`
	SG    float64 `json:"sg"`
	AL    float64 `json:"al"`
	SU    float64 `json:"su"`
	BGR   float64 `json:"bgr"`
	BU    float64 `json:"bu"`
	SC    float64 `json:"sc"`
	SOD   float64 `json:"sod"`
	POT   float64 `json:"pot"`
	Hemo  float64 `json:"hemo"`
	PCV   float64 `json:"pcv"`
	WC    float64 `json:"wc"`
	RC    float64 `json:"rc"`
}

// NewPatientRecord returns a record with the categorical defaults applied.
func NewPatientRecord() PatientRecord {
	var p PatientRecord
	for _, f := range PatientFields {
		if f.Kind == FieldChoice {
			p.SetChoice(f.Name, f.Default)
		}
	}
	return p
}

func (p *PatientRecord) numeric() map[string]*float64 {
	return map[string]*float64{
		"age": &p.Age, "bp": &p.BP, "sg": &p.SG, "al": &p.AL, "su": &p.SU,
		"bgr": &p.BGR, "bu": &p.BU, "sc": &p.SC, "sod": &p.SOD, "pot": &p.POT,
		"hemo": &p.Hemo, "pcv": &p.PCV, "wc": &p.WC, "rc": &p.RC,
	}
}

func (p *PatientRecord) choices() map[string]*string {
	return map[string]*string{
		"rbc": &p.RBC, "pc": &p.PC, "pcc": &p.PCC, "ba": &p.BA,
		"htn": &p.HTN, "dm": &p.DM, "cad": &p.CAD, "appet": &p.Appet,
		"pe": &p.PE, "ane": &p.ANE,
	}
}

// SetNumeric assigns a numeric parameter. It reports false for unknown names.
func (p *PatientRecord) SetNumeric(name string, v float64) bool {
	ptr, ok := p.numeric()[name]
	if !ok {
		return false
	}
	*ptr = v
	return true
}

// SetChoice assigns a categorical parameter. It reports false for unknown names.
func (p *PatientRecord) SetChoice(name, v string) bool {
	ptr, ok := p.choices()[name]
	if !ok {
		return false
	}
	*ptr = v
	return true
}

// Value returns the parameter formatted as it appears in a CSV cell.
func (p PatientRecord) Value(name string) string {
	if ptr, ok := p.numeric()[name]; ok {
		return strconv.FormatFloat(*ptr, 'f', -1, 64)
	}
	if ptr, ok := p.choices()[name]; ok {
		return *ptr
	}
	return ""
}

// Row returns the record in CSV column order.
func (p PatientRecord) Row() []string {
	row := make([]string, len(PatientFields))
	for i, f := range PatientFields {
		row[i] = p.Value(f.Name)
	}
	return row
}
