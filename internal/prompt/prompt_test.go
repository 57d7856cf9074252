package prompt

import (
	"errors"
	"testing"
)

func TestNoopPrompter_AlwaysFails(t *testing.T) {
	var p Prompter = &NoopPrompter{}

	if _, err := p.Select("stage", []string{"applied"}); !errors.Is(err, ErrNonInteractive) {
		t.Errorf("Select: expected ErrNonInteractive, got %v", err)
	}
	if _, err := p.Input("title", "x", true); !errors.Is(err, ErrNonInteractive) {
		t.Errorf("Input: expected ErrNonInteractive, got %v", err)
	}
	if _, err := p.Text("description", ""); !errors.Is(err, ErrNonInteractive) {
		t.Errorf("Text: expected ErrNonInteractive, got %v", err)
	}
	if ok, err := p.Confirm("delete?", true); ok || !errors.Is(err, ErrNonInteractive) {
		t.Errorf("Confirm: expected false/ErrNonInteractive, got %v/%v", ok, err)
	}
}

func TestRequireValue(t *testing.T) {
	if err := requireValue("  "); err == nil {
		t.Error("expected blank value to be rejected")
	}
	if err := requireValue("Backend Engineer"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
