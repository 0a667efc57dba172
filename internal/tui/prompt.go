package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// PromptForSecret asks for a value without echoing it.
func PromptForSecret(title string) (string, error) {
	var value string

	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("value is required")
			}
			return nil
		})

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	return value, nil
}
