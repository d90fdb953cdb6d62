package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/togglepad/winsign"
)

// Verify command flags.
var (
	verifyAll   bool
	verifyExtra []string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [target]",
	Short: "Verify an executable's Authenticode signature",
	Long: `Verify checks the signature against the default Authenticode
verification policy with verbose output. The tool's output passes
through verbatim and its exit status becomes winsign's.

The target falls back to sign.target from the config.

Examples:
  winsign verify ToggleService.exe
  winsign verify --all ToggleService.exe`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runVerify,
	ValidArgsFunction: completeTargetArgs,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyAll, "all", false, "Verify all signatures, not just the primary one")
	verifyCmd.Flags().StringArrayVar(&verifyExtra, "extra", nil, "Extra tool argument, repeatable")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	target := viper.GetString("sign.target")
	if len(args) == 1 {
		target = args[0]
	}

	extra, err := extraToolArgs(cmd, verifyExtra)
	if err != nil {
		return err
	}
	client, err := newClient(winsign.WithExtraArgs(extra...))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var opts []winsign.VerifyOption
	if verifyAll {
		opts = append(opts, winsign.WithAllSignatures())
	}

	finish := startSpinner("Verifying " + filepath.Base(target))
	_, err = client.Verify(ctx, target, opts...)
	finish()
	return err
}
