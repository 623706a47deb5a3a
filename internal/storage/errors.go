package storage

import "fmt"

// StorageError wraps any failure initializing, reading, or writing the
// durable relation. Callers that need to distinguish persistence failures
// from domain errors match it with errors.As.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
