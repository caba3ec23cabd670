package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/prediction"
)

// ClassStyle returns the style for a prediction badge.
func ClassStyle(class model.PredictionClass) string {
	if class.IsPositive() {
		return WarningStyle.Bold(true).Render(WarningIcon + " " + string(class))
	}
	return SuccessStyle.Bold(true).Render(HealthyIcon + " " + string(class))
}

// RenderSingle writes a single prediction with its interpretation.
func RenderSingle(w io.Writer, result model.SingleResult) error {
	interp := prediction.Interpret(result.Class)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nConfidence: %.2f%%\n\n", ClassStyle(result.Class), result.Confidence)
	fmt.Fprintf(&b, "%s\n%s\n", BoldStyle.Render(interp.Headline), interp.Summary)
	for _, rec := range interp.Recommendations {
		fmt.Fprintf(&b, "  • %s\n", rec)
	}

	b.WriteString("\n" + BoldStyle.Render("Patient Parameters Summary:") + "\n")
	for _, p := range prediction.SummaryParams {
		value := result.Input.Value(p.Column)
		if p.Unit != "" {
			value += " " + p.Unit
		}
		fmt.Fprintf(&b, "  %-14s %s\n", p.Label+":", value)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", RenderBox("Prediction Result", strings.TrimRight(b.String(), "\n")),
		SubtleStyle.Render(prediction.Disclaimer))
	return err
}

// RenderBatch writes batch totals followed by one row per record.
func RenderBatch(w io.Writer, result model.BatchResult) error {
	s := result.Summary
	if _, err := fmt.Fprintf(w, "%s\n%s %s   Total: %d   CKD: %d   Not CKD: %d\n\n",
		FormatTitle("Batch Prediction Results"), FileIcon, result.FileName, s.Total, s.Positive, s.Negative); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
		HeaderStyle.Render("ID"), HeaderStyle.Render("Prediction"), HeaderStyle.Render("Confidence")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range result.Records {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%.2f%%\n", r.ID, r.Class, r.Confidence); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.ID, err)
		}
	}
	return tw.Flush()
}

// RenderStats writes the admin dashboard counters.
func RenderStats(w io.Writer, stats model.DashboardStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Total Users", fmt.Sprint(stats.TotalUsers)},
		{"Total Predictions", fmt.Sprint(stats.TotalPredictions)},
		{"Active Sessions", fmt.Sprint(stats.ActiveSessions)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", HeaderStyle.Render(row[0]), row[1]); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}
	}
	return tw.Flush()
}

// RenderUsers writes the registered users table.
func RenderUsers(w io.Writer, users []model.UserRecord) error {
	if len(users) == 0 {
		_, err := fmt.Fprintln(w, InfoStyle.Render("No registered users."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
		HeaderStyle.Render("Name"), HeaderStyle.Render("Email"), HeaderStyle.Render("Joined")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, u := range users {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Name, u.Email, FormatJoined(u)); err != nil {
			return fmt.Errorf("failed to write user %s: %w", u.Email, err)
		}
	}
	return tw.Flush()
}

// FormatJoined renders a user's signup date, or a dash when unknown.
func FormatJoined(u model.UserRecord) string {
	if u.CreatedAt.IsZero() {
		return "-"
	}
	return u.CreatedAt.Format("2006-01-02")
}
