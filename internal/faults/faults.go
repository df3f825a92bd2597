package faults

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested document is absent.
	ErrNotFound = errors.New("not found")
	// ErrAuth indicates bad credentials, an unknown identity or a registration conflict.
	ErrAuth = errors.New("auth")
	// ErrWrite indicates the remote store rejected a write.
	ErrWrite = errors.New("remote write")
	// ErrUpload indicates the blob store rejected an upload.
	ErrUpload = errors.New("upload")
	// ErrValidation indicates the input failed a local check before any remote call.
	ErrValidation = errors.New("validation")
	// ErrIndeterminate indicates a validation check itself could not be completed.
	ErrIndeterminate = errors.New("validation indeterminate")
	// ErrConflict indicates a concurrent write won a check-then-write race.
	ErrConflict = errors.New("conflict")
)

func NotFoundError(msg string) error {
	return errors.Join(ErrNotFound, errors.New(strings.TrimSpace(msg)))
}

func AuthError(msg string, err error) error {
	if err != nil {
		return errors.Join(ErrAuth, errors.New(strings.TrimSpace(msg)), err)
	}
	return errors.Join(ErrAuth, errors.New(strings.TrimSpace(msg)))
}

func WriteError(msg string, err error) error {
	if err != nil {
		return errors.Join(ErrWrite, errors.New(strings.TrimSpace(msg)), err)
	}
	return errors.Join(ErrWrite, errors.New(strings.TrimSpace(msg)))
}

func UploadError(msg string, err error) error {
	if err != nil {
		return errors.Join(ErrUpload, errors.New(strings.TrimSpace(msg)), err)
	}
	return errors.Join(ErrUpload, errors.New(strings.TrimSpace(msg)))
}

func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// IndeterminateError wraps the failure that prevented a uniqueness check from
// completing. Callers must fail closed on it instead of treating the value as
// unique or duplicate.
func IndeterminateError(msg string, err error) error {
	if err != nil {
		return errors.Join(ErrIndeterminate, errors.New(strings.TrimSpace(msg)), err)
	}
	return errors.Join(ErrIndeterminate, errors.New(strings.TrimSpace(msg)))
}

func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsAuth(err error) bool          { return errors.Is(err, ErrAuth) }
func IsWrite(err error) bool         { return errors.Is(err, ErrWrite) }
func IsUpload(err error) bool        { return errors.Is(err, ErrUpload) }
func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsIndeterminate(err error) bool { return errors.Is(err, ErrIndeterminate) }
func IsConflict(err error) bool      { return errors.Is(err, ErrConflict) }
