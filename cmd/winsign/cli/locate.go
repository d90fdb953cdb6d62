package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the resolved signing tool path",
	Long: `Locate resolves the signing tool the same way sign and verify do:
an explicit --signtool path, then the WINSIGN_SIGNTOOL environment
variable, then PATH, then installed Windows Kits (on Windows).`,
	Args: cobra.NoArgs,
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

func runLocate(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	path, err := client.Locate()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
