package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/togglepad/winsign"
)

// Inspect command flags.
var (
	inspectPFX      bool
	inspectPassword string
	inspectCert     string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <target>",
	Short: "Summarize a PE image or PFX file locally",
	Long: `Inspect reads the file locally, without invoking the tool.

For a PE image it reports machine, bitness, size, digest, and whether a
certificate table is present. A populated certificate table says nothing
about trust; use verify for that. With --cert, the signature is
additionally checked against a pinned signer certificate (PEM).

With --pfx, the target is decoded as a PFX (PKCS #12) file and its
signing certificate is summarized instead.

Examples:
  winsign inspect ToggleService.exe
  winsign inspect --cert release-signer.pem ToggleService.exe
  winsign inspect --pfx -p hunter2 release.pfx`,
	Args:              cobra.ExactArgs(1),
	RunE:              runInspect,
	ValidArgsFunction: completeTargetArgs,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectPFX, "pfx", false, "Treat the target as a PFX file")
	inspectCmd.Flags().StringVarP(&inspectPassword, "password", "p", "", "PFX password")
	inspectCmd.Flags().StringVar(&inspectCert, "cert", "", "Pinned signer certificate (PEM) to check the signature against")

	inspectCmd.MarkFlagsMutuallyExclusive("pfx", "cert")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	target := args[0]

	client, err := newClient()
	if err != nil {
		return err
	}

	if inspectPFX {
		return printPFXInfo(os.Stdout, client, target)
	}
	return printTargetInfo(os.Stdout, client, target)
}

func printTargetInfo(w io.Writer, client *winsign.Client, target string) error {
	info, err := client.Inspect(target)
	if err != nil {
		return err
	}

	format := "PE32"
	if info.Is64Bit {
		format = "PE32+"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Path:\t%s\n", info.Path)
	fmt.Fprintf(tw, "Machine:\t%s\n", info.Machine)
	fmt.Fprintf(tw, "Format:\t%s\n", format)
	//nolint:gosec // G115: sizes from Stat are non-negative
	fmt.Fprintf(tw, "Size:\t%s (%d bytes)\n", humanize.IBytes(uint64(info.Size)), info.Size)
	fmt.Fprintf(tw, "Digest:\t%s\n", info.Digest)
	if info.Signed {
		//nolint:gosec // G115: the certificate table size is a uint32 in the header
		fmt.Fprintf(tw, "Signed:\tyes (%s certificate table)\n", humanize.IBytes(uint64(info.SignatureSize)))
	} else {
		fmt.Fprintf(tw, "Signed:\tno\n")
	}
	tw.Flush()

	if inspectCert == "" {
		return nil
	}

	ok, err := client.VerifyPinned(target, inspectCert)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("invalid signature: %s is not signed by %s", target, inspectCert)
	}
	fmt.Fprintf(w, "Valid signature by %s\n", inspectCert)
	return nil
}

func printPFXInfo(w io.Writer, client *winsign.Client, path string) error {
	info, err := client.InspectPFX(path, inspectPassword)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Path:\t%s\n", info.Path)
	fmt.Fprintf(tw, "Subject:\t%s\n", info.Subject)
	fmt.Fprintf(tw, "Issuer:\t%s\n", info.Issuer)
	fmt.Fprintf(tw, "Serial:\t%s\n", info.Serial)
	fmt.Fprintf(tw, "Valid:\t%s to %s\n",
		info.NotBefore.Format("2006-01-02"),
		info.NotAfter.Format("2006-01-02"))
	fmt.Fprintf(tw, "CA chain:\t%d certificate(s)\n", info.CAChain)
	tw.Flush()
	return nil
}
