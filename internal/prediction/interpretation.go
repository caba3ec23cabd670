package prediction

import "github.com/Veraticus/ckd-predict/internal/model"

// Disclaimer accompanies every prediction shown to a user.
const Disclaimer = "This prediction is for informational purposes only and should not replace " +
	"professional medical advice, diagnosis, or treatment. Always consult qualified " +
	"healthcare providers for medical decisions."

// Interpretation is the guidance shown with a single prediction.
type Interpretation struct {
	Headline        string
	Summary         string
	Recommendations []string
}

// Interpret returns the guidance for class.
func Interpret(class model.PredictionClass) Interpretation {
	if class.IsPositive() {
		return Interpretation{
			Headline: "Chronic Kidney Disease Detected",
			Summary:  "The model predicts that the patient may have CKD based on the provided medical parameters.",
			Recommendations: []string{
				"Immediate consultation with a nephrologist is recommended",
				"Further diagnostic tests may be required",
				"Early intervention can help slow disease progression",
			},
		}
	}
	return Interpretation{
		Headline: "No Chronic Kidney Disease Detected",
		Summary:  "The model predicts that the patient is unlikely to have CKD based on the provided medical parameters.",
		Recommendations: []string{
			"Maintain regular health check-ups",
			"Continue healthy lifestyle practices",
			"Monitor blood pressure and blood sugar levels",
		},
	}
}

// SummaryParams are the parameters echoed back with a single result, as label/column pairs.
var SummaryParams = []struct {
	Label  string
	Column string
	Unit   string
}{
	{"Age", "age", "years"},
	{"BP", "bp", "mm/Hg"},
	{"Blood Glucose", "bgr", "mgs/dl"},
	{"Hemoglobin", "hemo", "gms"},
	{"Diabetes", "dm", ""},
	{"Hypertension", "htn", ""},
}
