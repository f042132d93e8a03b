package cmd

import (
	"context"
	"io"

	"github.com/jrschumacher/ltitoken/internal/config"
	"github.com/jrschumacher/ltitoken/internal/keys"
	"github.com/jrschumacher/ltitoken/internal/logger"
	"github.com/jrschumacher/ltitoken/internal/report"
	"github.com/jrschumacher/ltitoken/internal/servicetoken"
	"github.com/spf13/cobra"
)

var requestOpts struct {
	timeout       int
	expiration    int
	platformsFile string
	verify        bool
}

var requestCmd = &cobra.Command{
	Use:     "request <platform>",
	Aliases: []string{"token"},
	Short:   "Request a service access token from a configured platform",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		if cmd.Flags().Changed("timeout") {
			c.Timeout = requestOpts.timeout
		}
		if cmd.Flags().Changed("expiration") {
			c.Expiration = requestOpts.expiration
		}
		if cmd.Flags().Changed("platforms") {
			c.PlatformsFile = requestOpts.platformsFile
		}
		if err := config.Validate(&c); err != nil {
			return err
		}
		return runRequest(cmd.Context(), &c, args[0], requestOpts.verify, cmd.OutOrStdout())
	},
}

// runRequest resolves the platform, loads its keys and performs one token
// request. An unknown platform fails before any key is read.
func runRequest(ctx context.Context, c *config.Config, name string, verify bool, out io.Writer) error {
	platforms, err := config.LoadPlatforms(c.PlatformsFile)
	if err != nil {
		return err
	}
	platform, err := platforms.Lookup(name)
	if err != nil {
		logger.Warn("Platform lookup failed", "platform", name, "available", platforms.Names())
		return err
	}

	privatePath, publicPath := c.KeyFiles(platform)
	pair, err := keys.Load(privatePath, publicPath)
	if err != nil {
		return err
	}
	logger.Debug("Loaded key pair", "private_key", privatePath, "public_key", publicPath)

	client, err := servicetoken.NewClient(c.TimeoutDuration())
	if err != nil {
		return err
	}
	svc := servicetoken.NewService(servicetoken.NewBuilder(), client)

	res, err := svc.Request(ctx, servicetoken.Request{
		ClientID:      platform.ClientID,
		TokenURL:      platform.TokenURL,
		PublicKeyPEM:  pair.PublicKeyPEM,
		PrivateKeyPEM: pair.PrivateKeyPEM,
		Scopes:        platform.ScopeList(),
		Expiration:    c.ExpirationDuration(),
		Verify:        verify,
	})
	if err != nil {
		return err
	}

	return report.Write(out, platform.ClientID, platform.TokenURL, res)
}

func init() {
	requestCmd.Flags().IntVar(&requestOpts.timeout, "timeout", 15, "token request timeout in seconds")
	requestCmd.Flags().IntVar(&requestOpts.expiration, "expiration", 60, "assertion lifetime in seconds")
	requestCmd.Flags().StringVar(&requestOpts.platformsFile, "platforms", "platforms.json", "platforms file")
	requestCmd.Flags().BoolVar(&requestOpts.verify, "verify", false, "verify the signed assertion against the public key before sending")
	rootCmd.AddCommand(requestCmd)
}
