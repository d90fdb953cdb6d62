package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/togglepad/winsign"
)

// Sign command flags.
var (
	signSubject       string
	signPFX           string
	signPassword      string
	signPasswordStdin bool
	signTimestampURL  string
	signNoTimestamp   bool
	signDigest        string
	signDescription   string
	signDescURL       string
	signAppend        bool
	signBackup        bool
	signBackupZstd    bool
	signVerify        bool
	signExtra         []string
)

var signCmd = &cobra.Command{
	Use:   "sign [target]",
	Short: "Sign a Windows executable in place",
	Long: `Sign applies an Authenticode signature to a pre-built executable,
using a SHA-256 file digest and an RFC 3161 trusted timestamp.

The certificate comes from the local store (--subject) or from a PFX
file (--pfx), never both. The tool is not second-guessed: a missing
target, an unreadable PFX, or a wrong password surface through the
tool's own output and exit status, which winsign passes through.

After a successful sign the signature is verified against the default
Authenticode policy; --verify=false skips that. The target falls back
to sign.target from the config, so a bare "winsign sign" works.

Examples:
  winsign sign -n "Toggle Software" ToggleService.exe
  winsign sign -f release.pfx --password-stdin ToggleService.exe < pw.txt
  winsign sign`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runSign,
	ValidArgsFunction: completeTargetArgs,
}

func init() {
	signCmd.Flags().StringVarP(&signSubject, "subject", "n", "", "Certificate subject name in the local store")
	signCmd.Flags().StringVarP(&signPFX, "pfx", "f", "", "PFX (PKCS #12) file holding the certificate")
	signCmd.Flags().StringVarP(&signPassword, "password", "p", "", "PFX password")
	signCmd.Flags().BoolVar(&signPasswordStdin, "password-stdin", false, "Read the PFX password from stdin")
	signCmd.Flags().StringVarP(&signTimestampURL, "timestamp-url", "t", "", "RFC 3161 timestamp authority URL")
	signCmd.Flags().BoolVar(&signNoTimestamp, "no-timestamp", false, "Skip trusted timestamping")
	signCmd.Flags().StringVar(&signDigest, "digest", "", "Digest algorithm for file and timestamp (sha1, sha256, sha384, sha512)")
	signCmd.Flags().StringVarP(&signDescription, "description", "d", "", "Signed content description")
	signCmd.Flags().StringVar(&signDescURL, "description-url", "", "Signed content URL")
	signCmd.Flags().BoolVar(&signAppend, "append", false, "Append the signature instead of replacing the primary one")
	signCmd.Flags().BoolVar(&signBackup, "backup", false, "Copy the target aside before signing")
	signCmd.Flags().BoolVar(&signBackupZstd, "backup-compress", false, "Compress the pre-sign backup with zstd")
	signCmd.Flags().BoolVar(&signVerify, "verify", true, "Verify the signature after signing")
	signCmd.Flags().StringArrayVar(&signExtra, "extra", nil, "Extra tool argument, repeatable")

	signCmd.MarkFlagsMutuallyExclusive("subject", "pfx")
	signCmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	signCmd.MarkFlagsMutuallyExclusive("timestamp-url", "no-timestamp")

	//nolint:errcheck // the digest flag is defined above
	signCmd.RegisterFlagCompletionFunc("digest", completeDigest)

	//nolint:errcheck // the flags are defined above
	viper.BindPFlag("sign.digest", signCmd.Flags().Lookup("digest"))
	//nolint:errcheck // the flags are defined above
	viper.BindPFlag("sign.description", signCmd.Flags().Lookup("description"))
	//nolint:errcheck // the flags are defined above
	viper.BindPFlag("sign.description_url", signCmd.Flags().Lookup("description-url"))
	//nolint:errcheck // the flags are defined above
	viper.BindPFlag("sign.backup", signCmd.Flags().Lookup("backup"))
	//nolint:errcheck // the flags are defined above
	viper.BindPFlag("sign.verify", signCmd.Flags().Lookup("verify"))

	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	target := viper.GetString("sign.target")
	if len(args) == 1 {
		target = args[0]
	}
	if target == "" {
		return winsign.ErrNoTarget
	}

	id, err := resolveIdentity(cmd)
	if err != nil {
		return err
	}
	dgst, err := winsign.ParseDigest(viper.GetString("sign.digest"))
	if err != nil {
		return err
	}
	ts, err := resolveTimestamp(cmd, dgst)
	if err != nil {
		return err
	}
	extra, err := extraToolArgs(cmd, signExtra)
	if err != nil {
		return err
	}

	client, err := newClient(winsign.WithExtraArgs(extra...))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	opts := []winsign.SignOption{winsign.WithFileDigest(dgst)}
	if desc := viper.GetString("sign.description"); desc != "" {
		opts = append(opts, winsign.WithDescription(desc, viper.GetString("sign.description_url")))
	}
	if signAppend {
		opts = append(opts, winsign.WithAppend())
	}
	switch {
	case signBackupZstd:
		opts = append(opts, winsign.WithCompressedBackup())
	case viper.GetBool("sign.backup"):
		opts = append(opts, winsign.WithBackup())
	}

	finish := startSpinner("Signing " + filepath.Base(target))
	res, err := client.Sign(ctx, target, id, ts, opts...)
	finish()
	if err != nil {
		return err
	}
	if res.Backup != "" {
		fmt.Printf("Backup: %s\n", res.Backup)
	}

	if !viper.GetBool("sign.verify") {
		return nil
	}

	finish = startSpinner("Verifying " + filepath.Base(target))
	_, err = client.Verify(ctx, target)
	finish()
	return err
}

// resolveIdentity merges flag and config identity. Changed identity flags
// supersede config as a unit, so a configured PFX does not conflict with
// a --subject given on the command line.
func resolveIdentity(cmd *cobra.Command) (winsign.Identity, error) {
	id := winsign.Identity{
		Subject: viper.GetString("sign.subject"),
		PFXPath: viper.GetString("sign.pfx"),
	}
	if cmd.Flags().Changed("subject") || cmd.Flags().Changed("pfx") {
		id = winsign.Identity{Subject: signSubject, PFXPath: signPFX}
	}
	if id.PFXPath != "" {
		pw, err := resolvePassword(cmd)
		if err != nil {
			return winsign.Identity{}, err
		}
		id.Password = pw
	}
	return id, nil
}

// resolvePassword finds the PFX password: the flag, then stdin under
// --password-stdin, then sign.password from config or environment, then
// an interactive prompt when stdin is a terminal. An empty result is a
// valid blank password.
func resolvePassword(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("password") {
		return signPassword, nil
	}
	if signPasswordStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	if pw := viper.GetString("sign.password"); pw != "" {
		return pw, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "PFX password: ")
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(data), nil
	}
	return "", nil
}

// resolveTimestamp merges flag and config into the timestamp authority.
// A timestamp authority is required unless --no-timestamp is given.
func resolveTimestamp(cmd *cobra.Command, d winsign.Digest) (winsign.Timestamp, error) {
	if signNoTimestamp {
		return winsign.Timestamp{}, nil
	}
	url := viper.GetString("sign.timestamp_url")
	if cmd.Flags().Changed("timestamp-url") {
		url = signTimestampURL
	}
	if url == "" {
		return winsign.Timestamp{}, errors.New("a timestamp authority is required: pass --timestamp-url or --no-timestamp")
	}
	return winsign.Timestamp{URL: url, Digest: d}, nil
}
