package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/togglepad/winsign"
)

// completeDigest suggests digest algorithm names for --digest.
func completeDigest(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, name := range winsign.DigestNames() {
		if strings.HasPrefix(name, toComplete) {
			completions = append(completions, name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeTargetArgs completes the single target argument with the file
// extensions the tool typically signs.
func completeTargetArgs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) >= 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"exe", "dll", "msi", "sys", "cab", "ps1"}, cobra.ShellCompDirectiveFilterFileExt
}
