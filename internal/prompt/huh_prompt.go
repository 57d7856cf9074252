package prompt

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct{}

// NewHuhPrompter creates a new huh-based prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	var result string
	err := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&result).
		Run()
	return result, err
}

func (p *HuhPrompter) Input(title, defaultValue string, required bool) (string, error) {
	result := defaultValue
	input := huh.NewInput().
		Title(title).
		Value(&result)
	if required {
		input = input.Validate(requireValue)
	}
	err := input.Run()
	return strings.TrimSpace(result), err
}

func (p *HuhPrompter) Text(title, defaultValue string) (string, error) {
	result := defaultValue
	err := huh.NewText().
		Title(title).
		Description("Markdown is supported").
		Value(&result).
		Run()
	return strings.TrimSpace(result), err
}

func (p *HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	result := defaultValue
	err := huh.NewConfirm().
		Title(title).
		Value(&result).
		Run()
	return result, err
}

func requireValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}
