// Package prompt asks the user for missing CLI input.
package prompt

import "errors"

// ErrNonInteractive is returned when prompting in non-interactive mode.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// Prompter asks for values the user left off the command line.
type Prompter interface {
	// Select presents options and returns the chosen one.
	Select(title string, options []string) (string, error)

	// Input prompts for a single line. Empty answers are rejected when required.
	Input(title, defaultValue string, required bool) (string, error)

	// Text prompts for multi-line text such as a job description.
	Text(title, defaultValue string) (string, error)

	// Confirm prompts for yes/no.
	Confirm(title string, defaultValue bool) (bool, error)
}

// NoopPrompter fails every prompt. Used with --non-interactive.
type NoopPrompter struct{}

func (p *NoopPrompter) Select(title string, options []string) (string, error) {
	return "", ErrNonInteractive
}

func (p *NoopPrompter) Input(title, defaultValue string, required bool) (string, error) {
	return "", ErrNonInteractive
}

func (p *NoopPrompter) Text(title, defaultValue string) (string, error) {
	return "", ErrNonInteractive
}

func (p *NoopPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	return false, ErrNonInteractive
}
