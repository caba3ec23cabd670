package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/Veraticus/ckd-predict/internal/cli"
	"github.com/Veraticus/ckd-predict/internal/forms"
	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict CKD for one patient",
		Long: `Predict chronic kidney disease for a single patient.

Parameters come from --input (a JSON object keyed by column name) and
from the per-parameter flags, which take precedence. Every numeric
parameter is required; categorical ones default to their normal value.

Example:
  ckd predict --age 48 --bp 80 --sg 1.02 --al 1 --su 0 --bgr 121 --bu 36 \
    --sc 1.2 --sod 135 --pot 4.5 --hemo 15.4 --pcv 44 --wc 7800 --rc 5.2 --htn yes`,
		RunE: runPredict,
	}

	for _, f := range model.PatientFields {
		usage := f.Label
		if f.Kind == model.FieldChoice {
			usage = fmt.Sprintf("%s (%v)", f.Label, f.Options)
		}
		cmd.Flags().String(f.Name, f.Default, usage)
	}
	cmd.Flags().String("input", "", "JSON file with the patient parameters")
	cmd.Flags().Bool("json", false, "print the result as JSON")

	return cmd
}

func runPredict(cmd *cobra.Command, _ []string) error {
	values, err := patientValues(cmd)
	if err != nil {
		return err
	}
	record, err := forms.ParsePatient(values)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if !e.ctrl.Identity().IsUser() {
		return errNotLoggedIn
	}

	provider, err := newProvider(e.cfg, e.client)
	if err != nil {
		return err
	}

	result, err := provider.PredictSingle(ctx, record)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Single)
	}
	return cli.RenderSingle(cmd.OutOrStdout(), *result.Single)
}

// patientValues merges --input with the explicitly set per-parameter flags.
func patientValues(cmd *cobra.Command) (map[string]string, error) {
	values := make(map[string]string, len(model.PatientFields))
	for _, f := range model.PatientFields {
		values[f.Name], _ = cmd.Flags().GetString(f.Name)
	}

	input, _ := cmd.Flags().GetString("input")
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse input %s: %w", input, err)
		}
		for _, f := range model.PatientFields {
			v, ok := raw[f.Name]
			if !ok || cmd.Flags().Changed(f.Name) {
				continue
			}
			switch v := v.(type) {
			case float64:
				values[f.Name] = strconv.FormatFloat(v, 'f', -1, 64)
			case string:
				values[f.Name] = v
			case nil:
			default:
				return nil, fmt.Errorf("input field %s: unsupported value %v", f.Name, v)
			}
		}
	}

	return values, nil
}
