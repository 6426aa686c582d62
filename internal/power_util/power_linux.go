package power_util

import (
	"fmt"
	"os/exec"
)

// Shutdown powers the machine off. systemctl first; shutdown(8) as the
// fallback for non-systemd boxes.
func Shutdown() error {
	if err := exec.Command("systemctl", "poweroff").Run(); err == nil {
		return nil
	}
	if err := exec.Command("shutdown", "-h", "now").Run(); err != nil {
		return fmt.Errorf("couldn't run shutdown: %w", err)
	}
	return nil
}
