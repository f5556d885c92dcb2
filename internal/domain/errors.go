package domain

import "errors"

var (
	// ErrIndexFetch signals that the index payload could not be retrieved.
	ErrIndexFetch = errors.New("index fetch failed")
	// ErrInvalidIndex signals an index payload that is not a JSON array of documents.
	ErrInvalidIndex = errors.New("invalid index")
	// ErrEmptyIndex signals a successful load that produced zero documents.
	ErrEmptyIndex = errors.New("index is empty")
	// ErrQueryTooShort signals a query below the minimum searchable length.
	ErrQueryTooShort = errors.New("query too short")
)
