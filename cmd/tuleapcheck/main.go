package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retgits/tuleap-settings/common"
	"github.com/retgits/tuleap-settings/tuleap"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(tuleap.NewChecker(nil), os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(checker *tuleap.Checker, out io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "tuleapcheck",
		Short:         "Check Tuleap server URLs the same way the settings page does",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return common.SetupLogging(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "loglevel", "warn", "log level")

	root.AddCommand(&cobra.Command{
		Use:   "check-api-url URL",
		Short: "Validate an API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(out, tuleap.CheckAPIBaseURL(args[0]))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "check-git-url URL",
		Short: "Validate a Git base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(out, tuleap.CheckGitBaseURL(args[0]))
		},
	})

	var apiBaseURL, gitBaseURL string
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Contact the server behind the API base URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return report(out, checker.VerifyURLs(ctx, apiBaseURL, gitBaseURL))
		},
	}
	verify.Flags().StringVar(&apiBaseURL, "api", tuleap.OrangeForgeAPIURL, "API base URL")
	verify.Flags().StringVar(&gitBaseURL, "git", tuleap.OrangeForgeGitHTTPSURL, "Git base URL")
	root.AddCommand(verify)

	return root
}

// report prints the outcome and turns an error outcome into a failed command.
func report(out io.Writer, ans tuleap.FormValidation) error {
	fmt.Fprintf(out, "%s: %s\n", ans.Kind, ans.Message)
	if ans.IsError() {
		log.Debug().Msgf("Check failed: %s", ans.Message)
		return errors.New(ans.Message)
	}
	return nil
}
