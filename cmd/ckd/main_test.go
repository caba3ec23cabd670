package main

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://ckd.test"

// setupConfig points the global viper at an isolated store and a mocked service.
func setupConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	viper.Reset()
	viper.Set("api.base_url", testBaseURL)
	viper.Set("api.timeout", "2s")
	viper.Set("prediction.provider", "random")
	viper.Set("prediction.seed", 7)
	viper.Set("storage.driver", "sqlite")
	viper.Set("storage.path", filepath.Join(dir, "data", "session.db"))
	viper.Set("logging.file", filepath.Join(dir, "ckd.log"))

	httpmock.Activate()
	t.Cleanup(func() {
		httpmock.DeactivateAndReset()
		viper.Reset()
	})

	return dir
}

// execute runs cmd with args and returns what it printed to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// loginUser stores a user session through the login command.
func loginUser(t *testing.T) {
	t.Helper()

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/api/login",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"token": "tok-1",
			"user":  map[string]string{"name": "Ada", "email": "ada@example.com"},
		}))

	_, err := execute(t, loginCmd(), "--email", "ada@example.com", "--password", "secret1")
	require.NoError(t, err)
}
