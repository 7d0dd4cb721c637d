package assessment

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for user input problems. They are wrapped in an InputError
// carrying the question the caller was on.
var (
	ErrUnanswered       = errors.New("please select an answer before continuing")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrUnknownOption    = errors.New("unknown option")
	ErrSessionComplete  = errors.New("assessment already complete")
	ErrNotComplete      = errors.New("assessment not complete")
)

// InputError reports a rejected user action. The session state is left
// exactly as it was before the call, so the caller can simply re-prompt.
type InputError struct {
	QuestionID int    // Question the caller was on (0 when not applicable)
	Err        error  // One of the sentinel errors above
	Detail     string // Extra context, e.g. the rejected value (optional)
}

// Error implements the error interface for InputError.
func (e *InputError) Error() string {
	var sb strings.Builder
	if e.QuestionID > 0 {
		sb.WriteString(fmt.Sprintf("question %d: ", e.QuestionID))
	}
	sb.WriteString(e.Err.Error())
	if e.Detail != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Detail))
	}
	return sb.String()
}

// Unwrap returns the sentinel so errors.Is works against it.
func (e *InputError) Unwrap() error {
	return e.Err
}

// StorageError reports a failure of the persistence collaborator.
// In-memory assessment state is unaffected; the failed step can be retried.
type StorageError struct {
	Op  string // get, put, delete, decode, encode, open
	Key string // Storage key involved (optional)
	Err error
}

// Error implements the error interface for StorageError.
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// BankError reports an invalid question bank detected at construction.
type BankError struct {
	QuestionID int
	Message    string
}

// Error implements the error interface for BankError.
func (e *BankError) Error() string {
	if e.QuestionID > 0 {
		return fmt.Sprintf("invalid question bank: question %d: %s", e.QuestionID, e.Message)
	}
	return fmt.Sprintf("invalid question bank: %s", e.Message)
}

// IsInputError checks if the error is or wraps an InputError.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	var ie *InputError
	return errors.As(err, &ie)
}

// IsStorageError checks if the error is or wraps a StorageError.
func IsStorageError(err error) bool {
	if err == nil {
		return false
	}
	var se *StorageError
	return errors.As(err, &se)
}
