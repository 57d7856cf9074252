package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotInitialized = errors.New("not initialized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrPrecondition   = errors.New("precondition violated")
	ErrPersist        = errors.New("persist failed")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "job", "candidate"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AlreadyExistsError indicates a resource already exists.
type AlreadyExistsError struct {
	Resource string
	ID       string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.ID)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ConflictError indicates the request was made against state that has since
// changed, e.g. a reorder whose source position no longer holds the job.
type ConflictError struct {
	Resource string
	ID       string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Resource, e.ID, e.Message)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NotInitializedError indicates TalentFlow data hasn't been set up in the directory.
type NotInitializedError struct {
	Path string
}

func (e *NotInitializedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("talentflow not initialized in %s (run 'talentflow init')", e.Path)
	}
	return "talentflow not initialized (run 'talentflow init')"
}

func (e *NotInitializedError) Unwrap() error {
	return ErrNotInitialized
}

// PreconditionError is a caller bug: an index outside the collection it was
// derived from. It is never recovered at runtime.
type PreconditionError struct {
	Op     string
	Index  int
	Length int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Length)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// PersistError wraps any failure to durably commit a move: transport errors,
// server rejections, conflicts. Reload is the recovery.
type PersistError struct {
	ItemID string
	Err    error
	// ReloadErr is set when the rollback refetch failed too.
	ReloadErr error
}

func (e *PersistError) Error() string {
	msg := fmt.Sprintf("failed to persist move of %s: %v", e.ItemID, e.Err)
	if e.ReloadErr != nil {
		msg += fmt.Sprintf(" (reload also failed: %v)", e.ReloadErr)
	}
	return msg
}

// Is reports ErrPersist in addition to whatever the cause matches via Unwrap.
func (e *PersistError) Is(target error) bool {
	return target == ErrPersist
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Helper constructors for common cases

func JobNotFound(id string) error {
	return &NotFoundError{Resource: "job", ID: id}
}

func CandidateNotFound(id string) error {
	return &NotFoundError{Resource: "candidate", ID: id}
}

func JobAlreadyExists(slug string) error {
	return &AlreadyExistsError{Resource: "job", ID: slug}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func OrderConflict(jobID string, fromOrder int) error {
	return &ConflictError{
		Resource: "job",
		ID:       jobID,
		Message:  fmt.Sprintf("no longer at position %d", fromOrder),
	}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already-exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsPrecondition checks if an error is a precondition violation.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

// IsPersist checks if an error is a failed move commit.
func IsPersist(err error) bool {
	return errors.Is(err, ErrPersist)
}

// IsNotInitialized checks if an error means the data directory is missing.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}
