package cli

import (
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// spinnerInterval paces spinner redraws while the tool runs.
const spinnerInterval = 120 * time.Millisecond

// progressMode returns the configured progress mode: "auto", "tty", or "plain".
func progressMode() string {
	mode := viper.GetString("progress")
	switch mode {
	case "auto", "tty", "plain":
		return mode
	default:
		return "auto"
	}
}

// shouldShowProgress returns true if a spinner should be displayed.
func shouldShowProgress() bool {
	mode := progressMode()

	// Plain mode disables progress
	if mode == "plain" {
		return false
	}

	// TTY mode forces progress regardless of terminal detection
	if mode == "tty" {
		return true
	}

	// Auto mode: show progress only if connected to a TTY
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// startSpinner renders an indeterminate spinner on stderr while the tool
// runs, keeping stdout clear for the tool's own output. The returned
// finish function stops and erases it.
func startSpinner(description string) (finish func()) {
	if !shouldShowProgress() {
		return func() {}
	}

	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				//nolint:errcheck // progress bar errors are not critical
				bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
		//nolint:errcheck // progress bar errors are not critical
		bar.Finish()
	}
}
