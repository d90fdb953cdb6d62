// Command winsign signs and verifies Windows executables with Authenticode.
package main

import (
	"os"

	"github.com/togglepad/winsign/cmd/winsign/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
