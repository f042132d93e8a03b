package cmd

import (
	"io"
	"os"

	"github.com/jrschumacher/ltitoken/internal/config"
	"github.com/jrschumacher/ltitoken/internal/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "ltitoken",
	Short: "LTI 1.3 service token CLI",
	Long: `ltitoken requests OAuth2 service access tokens from LTI 1.3 platforms
using the JWT-bearer client-credentials grant, and prints every step of the
exchange so platform-side misconfiguration can be diagnosed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if cmd.Flags().Changed("log-level") {
			logger.Init(logLevel)
		}
	},
}

// Execute runs the CLI with c and exits non-zero on failure.
func Execute(c *config.Config) {
	if err := run(c, os.Args[1:], os.Stdout); err != nil {
		logger.Error("CLI error", "error", err)
		os.Exit(1)
	}
}

func run(c *config.Config, args []string, out io.Writer) error {
	cfg = c
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
}
