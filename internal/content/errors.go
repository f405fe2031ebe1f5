package content

import "errors"

var (
	// ErrCollectionNotFound is returned when the collection has no backing location.
	ErrCollectionNotFound = errors.New("content: collection not found")
	// ErrDocumentReadFailure is returned by Get when the matched entry cannot be read.
	ErrDocumentReadFailure = errors.New("content: document read failure")
	// ErrDuplicateIdentifier is returned when two entries derive the same identifier.
	ErrDuplicateIdentifier = errors.New("content: duplicate identifier")
	// ErrInvalidLimit is returned for negative limits or offsets.
	ErrInvalidLimit = errors.New("content: limit must be a non-negative integer")
	// ErrInvalidPage is returned when page or perPage is below one.
	ErrInvalidPage = errors.New("content: page and per_page must be positive")
)
