package main

import (
	"fmt"

	"github.com/Veraticus/ckd-predict/internal/cli"
	"github.com/Veraticus/ckd-predict/internal/config"
	"github.com/Veraticus/ckd-predict/internal/prediction"
	"github.com/spf13/cobra"
)

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample-csv",
		Short: "Write a sample batch CSV",
		Long:  `Write a three-patient CSV with every required column, ready for 'ckd batch'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(prediction.SampleCSV())
				return err
			}

			out = config.ExpandPath(out)
			if err := config.EnsureDir(out); err != nil {
				return err
			}
			if err := prediction.WriteSample(out); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Sample CSV saved to "+out))
			return nil
		},
	}
	cmd.Flags().String("out", prediction.SampleFileName, "destination path, or - for stdout")
	return cmd
}
