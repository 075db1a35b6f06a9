package medium

import "errors"

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("medium: key not found")

// Medium is the durable key-value storage a session snapshot is mirrored into.
type Medium interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	// Delete removes the key. Deleting a key that does not exist is not an error.
	Delete(key string) error
}

// Unavailable represents an execution context with no durable storage at all.
var Unavailable Medium
