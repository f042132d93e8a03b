package cmd

import (
	"fmt"

	"github.com/jrschumacher/ltitoken/internal/jwtutil"
	"github.com/jrschumacher/ltitoken/internal/keys"
	"github.com/jrschumacher/ltitoken/internal/logger"
	"github.com/jrschumacher/ltitoken/internal/report"
	"github.com/jrschumacher/ltitoken/internal/servicetoken"
	"github.com/spf13/cobra"
)

var utilCmd = &cobra.Command{
	Use:     "util",
	Aliases: []string{"utils"},
	Short:   "Key management helpers",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available utility commands:")
		fmt.Fprintln(out, "  generate-key - Generate an RSA key pair and print its JWKS")
		fmt.Fprintln(out, "  jwks         - Print the JWKS of the configured public key")
		fmt.Fprintln(out, "  decode       - Print the header and claims of a JWT without verifying it")
	},
}

var generateKeyOpts struct {
	bits       int
	privateKey string
	publicKey  string
}

var utilGenerateKeyCmd = &cobra.Command{
	Use:   "generate-key",
	Short: "Generate an RSA key pair and print its JWKS",
	RunE: func(cmd *cobra.Command, _ []string) error {
		privatePath, publicPath := cfg.PrivateKeyFile, cfg.PublicKeyFile
		if cmd.Flags().Changed("private-key") {
			privatePath = generateKeyOpts.privateKey
		}
		if cmd.Flags().Changed("public-key") {
			publicPath = generateKeyOpts.publicKey
		}

		pair, err := keys.GenerateRSA(generateKeyOpts.bits)
		if err != nil {
			return err
		}
		if err := keys.WritePair(pair, privatePath, publicPath); err != nil {
			return err
		}
		logger.Info("Wrote key pair", "private_key", privatePath, "public_key", publicPath)

		key, err := servicetoken.PublicJWK(pair.PublicKeyPEM)
		if err != nil {
			return err
		}
		return report.JWKS(cmd.OutOrStdout(), key)
	},
}

var jwksPublicKey string

var utilJWKSCmd = &cobra.Command{
	Use:   "jwks",
	Short: "Print the JWKS of the configured public key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := cfg.PublicKeyFile
		if cmd.Flags().Changed("public-key") {
			path = jwksPublicKey
		}
		pub, err := keys.ReadPublic(path)
		if err != nil {
			return err
		}
		key, err := servicetoken.PublicJWK(pub)
		if err != nil {
			return err
		}
		return report.JWKS(cmd.OutOrStdout(), key)
	},
}

var utilDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Print the header and claims of a JWT without verifying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := jwtutil.Decode(args[0])
		if err != nil {
			return err
		}
		return report.Token(cmd.OutOrStdout(), d)
	},
}

func init() {
	utilGenerateKeyCmd.Flags().IntVar(&generateKeyOpts.bits, "bits", keys.MinBits, "RSA modulus size")
	utilGenerateKeyCmd.Flags().StringVar(&generateKeyOpts.privateKey, "private-key", "id_rsa", "private key output path")
	utilGenerateKeyCmd.Flags().StringVar(&generateKeyOpts.publicKey, "public-key", "id_rsa.pub", "public key output path")
	utilJWKSCmd.Flags().StringVar(&jwksPublicKey, "public-key", "id_rsa.pub", "public key path")

	rootCmd.AddCommand(utilCmd)
	utilCmd.AddCommand(utilGenerateKeyCmd)
	utilCmd.AddCommand(utilJWKSCmd)
	utilCmd.AddCommand(utilDecodeCmd)
}
