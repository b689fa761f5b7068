package services

import "errors"

var (
	// ErrInvalidBatchInput is returned by RunBatch for malformed input.
	ErrInvalidBatchInput = errors.New("invalid batch input")

	ErrUnsupportedDocument = errors.New("unsupported document kind")
	ErrEmptyDocument       = errors.New("no text content found in document")
	ErrEmptyResponse       = errors.New("no text content in model response")
)
