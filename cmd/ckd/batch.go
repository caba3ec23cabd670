package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/ckd-predict/internal/cli"
	"github.com/Veraticus/ckd-predict/internal/config"
	"github.com/Veraticus/ckd-predict/internal/prediction"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Predict CKD for every patient in a CSV file",
		Long: `Upload a CSV file with one patient per row and print a prediction for each.

The header row must name all 24 parameter columns; run 'ckd sample-csv'
for a template. With --out the results are also written to
ckd_predictions_<timestamp>.csv in the given directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().String("out", "", "directory to export the results CSV to")
	cmd.Flags().Bool("quiet", false, "do not show the upload progress bar")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !prediction.IsCSV(path) {
		return fmt.Errorf("%s: %w", path, prediction.ErrNotCSV)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	content, err := readWithProgress(path, cmd.ErrOrStderr(), quiet)
	if err != nil {
		return err
	}

	upload, err := prediction.NewBatch(filepath.Base(path), content)
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

	result, err := provider.PredictBatch(ctx, upload)
	if err != nil {
		return fmt.Errorf("batch prediction failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := cli.RenderBatch(out, *result.Batch); err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		return nil
	}
	dir = config.ExpandPath(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	written, err := prediction.ExportResults(dir, *result.Batch, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, cli.FormatSuccess("Results exported to "+written))
	return nil
}

// readWithProgress reads path fully, drawing a byte progress bar on w.
func readWithProgress(path string, w io.Writer, quiet bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	bar := progressbar.NewOptions64(info.Size(),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(!quiet),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Reading "+filepath.Base(path)+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)

	var buf bytes.Buffer
	buf.Grow(int(info.Size()))
	if _, err := io.Copy(io.MultiWriter(&buf, bar), f); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	_ = bar.Finish()

	return buf.Bytes(), nil
}
