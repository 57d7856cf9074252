package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"job not found", JobNotFound("j1"), IsNotFound},
		{"candidate not found", CandidateNotFound("c1"), IsNotFound},
		{"already exists", JobAlreadyExists("go-engineer"), IsAlreadyExists},
		{"invalid field", InvalidField("title", "required"), IsValidationError},
		{"order conflict", OrderConflict("j1", 2), IsConflict},
		{"precondition", &PreconditionError{Op: "move", Index: 5, Length: 3}, IsPrecondition},
		{"not initialized", &NotInitializedError{Path: "/tmp/x"}, IsNotInitialized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("%v did not match its sentinel", tt.err)
			}
			wrapped := fmt.Errorf("handler: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("wrapped %v did not match its sentinel", tt.err)
			}
		})
	}
}

func TestPersistError_MatchesCause(t *testing.T) {
	err := error(&PersistError{ItemID: "j1", Err: OrderConflict("j1", 0)})

	if !IsPersist(err) {
		t.Error("expected IsPersist")
	}
	if !IsConflict(err) {
		t.Error("expected the cause to match via Unwrap")
	}
	if IsNotFound(err) {
		t.Error("unexpected not-found match")
	}
}

func TestPersistError_Message(t *testing.T) {
	err := &PersistError{ItemID: "j1", Err: errors.New("boom")}
	if got, want := err.Error(), "failed to persist move of j1: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.ReloadErr = errors.New("offline")
	if got, want := err.Error(), "failed to persist move of j1: boom (reload also failed: offline)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{JobNotFound("j1"), "job not found: j1"},
		{InvalidField("title", "required"), "invalid title: required"},
		{&ValidationError{Message: "bad"}, "bad"},
		{OrderConflict("j1", 2), "job j1: no longer at position 2"},
		{&PreconditionError{Op: "move", Index: 5, Length: 3}, "move: index 5 out of range [0,3)"},
		{&NotInitializedError{}, "talentflow not initialized (run 'talentflow init')"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
