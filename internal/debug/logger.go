// Package debug provides a lightweight diagnostic logger. Output is
// discarded unless a destination is set (typically a log file from the
// app config), so hot paths can log freely.
package debug

import (
	"fmt"
	"io"
	"time"
)

var writer io.Writer = io.Discard

// SetOutput sets the debug output destination.
func SetOutput(w io.Writer) {
	writer = w
}

// Log writes a timestamped debug message.
func Log(format string, args ...interface{}) {
	if writer == io.Discard {
		return
	}
	fmt.Fprintf(writer, time.Now().Format("15:04:05.000 ")+format+"\n", args...)
}

// Enabled returns true if debug logging is enabled.
func Enabled() bool {
	return writer != io.Discard
}
