package main

import (
	"fmt"

	"github.com/Veraticus/ckd-predict/internal/cli"
	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the prediction service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			status, err := client.Health(cmd.Context())
			if err != nil && status.Status == "" {
				return fmt.Errorf("service unreachable at %s: %w", client.BaseURL(), err)
			}

			out := cmd.OutOrStdout()
			if !status.Healthy() {
				fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%s is unhealthy: %s", client.BaseURL(), status.Message)))
				return fmt.Errorf("service unhealthy")
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s is healthy", client.BaseURL())))
			return nil
		},
	}
}
