package domain

import "errors"

var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrStoreRead indicates malformed persisted data. It is recovered locally
	// by substituting an empty collection and is never surfaced to callers.
	ErrStoreRead = errors.New("malformed store data")
	// ErrKeyNotFound indicates an absent store key. Callers treat it as an
	// empty collection.
	ErrKeyNotFound = errors.New("store key not found")
)
