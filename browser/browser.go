package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrUnsupportedPlatform is returned when no opener is known for the
// current operating system.
var ErrUnsupportedPlatform = errors.New("browser: unsupported platform")

// OpenURL opens a URL in the user's default browser session. The launch is
// fire-and-forget: the opener process is started, not waited on.
func OpenURL(url string) error {
	if url == "" {
		return errors.New("browser: url is required")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
	}
}
