package errs

import (
	"errors"
	"fmt"
)

// ErrVersionIsInvalid is the sentinel for optimistic locking failures.
// A caller receiving it lost a race against a concurrent writer and should retry.
var ErrVersionIsInvalid = errors.New("version is invalid")

// VersionIsInvalidError reports that an aggregate changed since it was loaded.
type VersionIsInvalidError struct {
	ParamName string
	ID        any
	Version   int64
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError for the aggregate identified by id
// that was expected to be at version.
func NewVersionIsInvalidError(paramName string, id any, version int64) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		ID:        id,
		Version:   version,
	}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping a driver error,
// e.g. a serialization failure reported by the database.
func NewVersionIsInvalidErrorWithCause(paramName string, id any, version int64, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		ID:        id,
		Version:   version,
		Cause:     cause,
	}
}

func (e *VersionIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s %v was modified concurrently (expected version %d)",
		ErrVersionIsInvalid, e.ParamName, e.ID, e.Version)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}
