package session

import "fmt"

// PersistenceError reports that the durable token slot could not be written
// or removed. The in-memory session has already been updated when it is
// returned.
type PersistenceError struct {
	Op  string // "set" or "delete"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("session: %s persisted token: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
