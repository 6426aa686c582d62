package power_util

import (
	"fmt"
	"os/exec"
)

// Shutdown powers the machine off immediately.
func Shutdown() error {
	if err := exec.Command("shutdown", "/s", "/t", "0").Run(); err != nil {
		return fmt.Errorf("couldn't run shutdown: %w", err)
	}
	return nil
}
