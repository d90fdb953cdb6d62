// Package cli implements the winsign command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/togglepad/winsign"
	"github.com/togglepad/winsign/cmd/winsign/cli/config"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "winsign",
	Short: "Sign and verify Windows executables with Authenticode",
	Long: `Winsign drives the platform's Authenticode signing tool (signtool.exe)
to sign and verify pre-built Windows executables.

Signing applies a SHA-256 file digest and an RFC 3161 trusted timestamp,
with the certificate selected by store subject name or by PFX file and
password. The tool's output passes through verbatim, and its exit status
alone decides whether an operation succeeded.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/winsign/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	rootCmd.PersistentFlags().String("signtool", "", "Path to the signing tool binary")
	rootCmd.PersistentFlags().String("progress", "auto", "Progress display while the tool runs: auto, tty, or plain")

	//nolint:errcheck // the flags are defined two lines up
	viper.BindPFlag("signtool", rootCmd.PersistentFlags().Lookup("signtool"))
	//nolint:errcheck // the flags are defined two lines up
	viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))

	rootCmd.Version = version
}

// initConfig loads the config file and binds WINSIGN_* environment
// variables. Runs once per execution, before any RunE.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if configDir, err := config.Dir(); err == nil {
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WINSIGN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("progress", "auto")
	viper.SetDefault("sign.digest", "sha256")
	viper.SetDefault("sign.verify", true)

	// A missing config file is fine; a malformed or explicitly named one
	// that cannot be read is worth a warning.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

// ExitCode maps err to the winsign process exit code. When the external
// tool ran and failed, its exit status passes through unchanged; winsign's
// own errors exit 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var toolErr *winsign.ToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode() > 0 {
		return toolErr.ExitCode()
	}
	return 1
}

// newClient creates a winsign client with configured options. Tool output
// streams to stdout so it surfaces verbatim while the tool runs.
func newClient(opts ...winsign.ClientOption) (*winsign.Client, error) {
	base := []winsign.ClientOption{
		winsign.WithOutput(os.Stdout),
	}
	if path := viper.GetString("signtool"); path != "" {
		base = append(base, winsign.WithSigntool(path))
	}
	if verbose {
		base = append(base, winsign.WithLogger(
			slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
		))
	}
	return winsign.NewClient(append(base, opts...)...)
}

// extraToolArgs resolves passthrough tool arguments: a changed --extra
// flag wins, otherwise the extra_args config string is shell-split.
func extraToolArgs(cmd *cobra.Command, flagVals []string) ([]string, error) {
	if cmd.Flags().Changed("extra") {
		return flagVals, nil
	}
	raw := viper.GetString("extra_args")
	if raw == "" {
		return nil, nil
	}
	args, err := shlex.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("parse extra_args: %w", err)
	}
	return args, nil
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// formatError converts winsign errors to user-friendly messages.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, winsign.ErrIdentityConflict):
		return "Error: subject and pfx identities are mutually exclusive (check flags and config)"
	case errors.Is(err, winsign.ErrNoIdentity):
		return "Error: no signing identity: pass --subject or --pfx, or set sign.subject / sign.pfx"
	case errors.Is(err, winsign.ErrNoTarget):
		return "Error: no target file: pass a path or set sign.target"
	case errors.Is(err, winsign.ErrBadPassword):
		return "Error: the PFX password is not correct"
	case errors.Is(err, winsign.ErrNoSignature):
		return "Error: the file carries no signature"
	case errors.Is(err, context.Canceled):
		return "Error: operation canceled"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
