package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/untoldecay/modelscore/internal/report"
	"github.com/untoldecay/modelscore/internal/ui"
)

// errOverwriteDeclined stops a command when the user keeps an existing file.
var errOverwriteDeclined = errors.New("output file not overwritten")

// FatalError prints an error in the usual form and exits with status 1.
func FatalError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// outputJSON prints v as indented JSON on stdout.
func outputJSON(v interface{}) {
	if err := report.WriteJSON(os.Stdout, v); err != nil {
		FatalError("%v", err)
	}
}

// saveJSON writes v to path as indented JSON. Unless force is set, an
// existing file is only replaced after confirmation on an interactive
// terminal.
func saveJSON(path string, v interface{}, force bool) error {
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, v); err != nil {
		return err
	}
	return saveFile(path, buf.Bytes(), force)
}

func saveFile(path string, data []byte, force bool) error {
	if !force {
		ok, err := ui.ConfirmOverwrite(path)
		if err != nil {
			return err
		}
		if !ok {
			return errOverwriteDeclined
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// checkExists reports the first missing path as "<label> file not found".
func checkExists(label string, paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%s file not found: %s", label, p)
		}
	}
	return nil
}
