package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/prediction"
	"github.com/Veraticus/ckd-predict/internal/tui/themes"
)

// RenderResults renders a prediction result. maxRows caps the batch table; zero shows all rows.
func RenderResults(result *model.PredictionResult, theme themes.Theme, maxRows int) string {
	if result == nil {
		return ""
	}
	switch result.Kind {
	case model.ResultSingle:
		if result.Single != nil {
			return renderSingle(*result.Single, theme)
		}
	case model.ResultBatch:
		if result.Batch != nil {
			return renderBatch(*result.Batch, theme, maxRows)
		}
	}
	return ""
}

func classBadge(class model.PredictionClass, theme themes.Theme) string {
	if class.IsPositive() {
		return theme.Positive.Render("⚠ " + string(class))
	}
	return theme.Negative.Render("✔ " + string(class))
}

func renderSingle(r model.SingleResult, theme themes.Theme) string {
	var b strings.Builder
	interp := prediction.Interpret(r.Class)

	b.WriteString(theme.Title.Render("Prediction Result") + "\n")
	fmt.Fprintf(&b, "%s   Confidence: %.2f%%\n\n", classBadge(r.Class, theme), r.Confidence)

	b.WriteString(theme.Bold.Render(interp.Headline) + "\n")
	b.WriteString(interp.Summary + "\n")
	for _, rec := range interp.Recommendations {
		b.WriteString("  • " + rec + "\n")
	}

	b.WriteString("\n" + theme.Bold.Render("Patient Parameters Summary") + "\n")
	for _, p := range prediction.SummaryParams {
		value := r.Input.Value(p.Column)
		if p.Unit != "" {
			value += " " + p.Unit
		}
		fmt.Fprintf(&b, "  %-14s %s\n", p.Label+":", value)
	}

	b.WriteString("\n" + theme.Help.Render(prediction.Disclaimer))
	return b.String()
}

func renderBatch(r model.BatchResult, theme themes.Theme, maxRows int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Batch Prediction Results") + "\n")
	fmt.Fprintf(&b, "File: %s\n", r.FileName)
	fmt.Fprintf(&b, "Total: %d   %s %d   %s %d\n\n",
		r.Summary.Total,
		theme.Positive.Render("CKD:"), r.Summary.Positive,
		theme.Negative.Render("Not CKD:"), r.Summary.Negative)

	fmt.Fprintf(&b, "%-6s %-10s %s\n", "ID", "Prediction", "Confidence")
	rows := r.Records
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	for _, rec := range rows {
		fmt.Fprintf(&b, "%-6d %-10s %.2f%%\n", rec.ID, rec.Class, rec.Confidence)
	}
	if len(rows) < len(r.Records) {
		b.WriteString(theme.Help.Render(fmt.Sprintf("… %d more rows, press e to export all", len(r.Records)-len(rows))) + "\n")
	}

	return b.String()
}
