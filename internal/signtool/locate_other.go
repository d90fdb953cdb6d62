//go:build !windows

package signtool

const installedRootsHint = "Windows Kits installed roots (windows only)"

// findInstalled has no install locations to probe off Windows; discovery
// relies on the environment override and PATH.
func findInstalled() string { return "" }
