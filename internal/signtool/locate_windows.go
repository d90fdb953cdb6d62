//go:build windows

package signtool

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sys/windows/registry"
)

const installedRootsHint = "Windows Kits installed roots"

// windowsKitsKey is where the Windows SDK records its installation root.
const windowsKitsKey = `SOFTWARE\Microsoft\Windows Kits\Installed Roots`

// findInstalled looks for signtool.exe under the newest installed Windows
// Kits SDK, preferring the native architecture.
func findInstalled() string {
	root := kitsRoot()
	if root == "" {
		return ""
	}

	versions, err := filepath.Glob(filepath.Join(root, "bin", "10.*"))
	if err != nil || len(versions) == 0 {
		return ""
	}
	sort.Strings(versions)

	var arches []string
	switch runtime.GOARCH {
	case "arm64":
		arches = []string{"arm64", "x64", "x86"}
	case "386":
		arches = []string{"x86"}
	default:
		arches = []string{"x64", "x86"}
	}

	for i := len(versions) - 1; i >= 0; i-- {
		for _, arch := range arches {
			p := filepath.Join(versions[i], arch, "signtool.exe")
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func kitsRoot() string {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, windowsKitsKey, registry.QUERY_VALUE|registry.WOW64_32KEY)
	if err != nil {
		return ""
	}
	defer key.Close()

	root, _, err := key.GetStringValue("KitsRoot10")
	if err != nil {
		return ""
	}
	return root
}
