package power_util

import (
	"fmt"
	"os/exec"
)

// Shutdown powers the machine off. Needs an admin user; osascript prompts
// instead of requiring root the way shutdown(8) would.
func Shutdown() error {
	if err := exec.Command("osascript", "-e", `tell app "System Events" to shut down`).Run(); err != nil {
		return fmt.Errorf("couldn't run shutdown: %w", err)
	}
	return nil
}
