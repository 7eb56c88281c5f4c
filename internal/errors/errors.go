// Package errors renders fatal command failures for the terminal.
package errors

import (
	"fmt"
	"os"

	"github.com/SumukhPhulari10/apptbot/internal/logger"
)

// Format renders err with the prefix every command failure carries.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, prints it to stderr, and exits with code 1. A nil err is
// a no-op so callers can pass through command results unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
