package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// ConfirmOverwrite asks whether path may be replaced. In non-interactive
// mode (CI, pipes) it answers yes so scripted runs keep working.
func ConfirmOverwrite(path string) (bool, error) {
	if !IsInteractive() {
		return true, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	}

	ok := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
		Affirmative("Overwrite").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("overwrite prompt: %w", err)
	}
	return ok, nil
}
