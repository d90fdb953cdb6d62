package signtool

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/togglepad/winsign/core"
)

// ToolName is the binary name of the external signing tool.
const ToolName = "signtool"

// EnvPath names the environment variable that overrides tool discovery.
const EnvPath = "WINSIGN_SIGNTOOL"

// Locator resolves the signing tool binary. Discovery runs once per
// Locator and is cached; an Explicit path short-circuits discovery.
type Locator struct {
	// Explicit is an operator-supplied tool path (flag or config).
	Explicit string

	once sync.Once
	path string
	err  error
}

var _ core.Locator = (*Locator)(nil)

// Locate implements core.Locator. Resolution order: explicit path,
// EnvPath, PATH lookup, then the platform install locations.
func (l *Locator) Locate() (string, error) {
	if l.Explicit != "" {
		return l.Explicit, nil
	}
	l.once.Do(func() {
		l.path, l.err = discover()
	})
	return l.path, l.err
}

func discover() (string, error) {
	if env := os.Getenv(EnvPath); env != "" {
		return env, nil
	}
	if p, err := exec.LookPath(ToolName); err == nil {
		return p, nil
	}
	if p := findInstalled(); p != "" {
		return p, nil
	}

	searched := []string{"$" + EnvPath, "PATH", installedRootsHint}
	return "", fmt.Errorf("%w: searched %s", core.ErrToolNotFound, strings.Join(searched, ", "))
}
