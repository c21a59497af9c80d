// Package debug provides opt-in diagnostic logging for modelscore.
//
// Logging is off unless MODELSCORE_DEBUG is set or Enable is called (the
// --debug flag). Output goes to stderr, or to a rotated log file when
// SetLogFile is used.
package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.Mutex
	enabled = os.Getenv("MODELSCORE_DEBUG") != ""
	out     io.Writer = os.Stderr
	logFile *lumberjack.Logger
)

// Enabled reports whether debug output is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Enable turns debug output on or off.
func Enable(on bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
}

// SetOutput redirects debug output. Mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetLogFile sends debug output to path, rotating it at 10 MB and keeping
// three old files. An empty path restores stderr. Setting a log file also
// enables debug output.
func SetLogFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			return fmt.Errorf("closing debug log: %w", err)
		}
		logFile = nil
	}
	if path == "" {
		out = os.Stderr
		return nil
	}

	logFile = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	out = logFile
	enabled = true
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	return SetLogFile("")
}

// Logf writes a timestamped line when debugging is enabled.
func Logf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(out, "%s debug: %s", time.Now().Format("15:04:05.000"), msg)
}
