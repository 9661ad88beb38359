package reinvite

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// askConfirm presents an interactive yes/no prompt. Ctrl-C inside the
// prompt surfaces as ErrInterrupted, not as a decline.
func askConfirm(prompt string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrInterrupted
		}
		return false, err
	}
	return ok, nil
}
