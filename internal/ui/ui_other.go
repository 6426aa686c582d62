//go:build !windows

package ui

// AttachToConsole is a no-op outside Windows; stdout and stderr already go
// to the launching terminal.
func AttachToConsole() {}
