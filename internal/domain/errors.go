package domain

import "errors"

var (
	// ErrTranslationFailed is returned when the model call or its response shape fails
	ErrTranslationFailed = errors.New("query translation failed")

	// ErrMalformedResponse is returned when the expected structure cannot be located or parsed in model text
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrNoResults is returned when a catalog lookup succeeds but matches nothing
	ErrNoResults = errors.New("no products found")

	// ErrStoreFailure is returned when the catalog store cannot be reached or the query fails
	ErrStoreFailure = errors.New("catalog store failure")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrFileNotFound is returned when a bulk-insert source file does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidPayload is returned when bulk-insert data is not a non-empty JSON list
	ErrInvalidPayload = errors.New("invalid product payload")
)
