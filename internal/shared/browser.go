package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// openerCommand builds the platform command that hands url to the desktop.
func openerCommand(rt, url string) (*exec.Cmd, error) {
	switch rt {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

// OpenURL opens url (typically a review's cover art) with the system browser.
func OpenURL(url string) error {
	if url == "" {
		return fmt.Errorf("%w: empty URL", ErrInvalidInput)
	}

	cmd, err := openerCommand(getRuntime(), url)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
