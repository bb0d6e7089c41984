package store

import "errors"

var (
	// ErrStorageUnavailable wraps any read or write failure of the backing blob store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidLocation    = errors.New("invalid location")
	ErrDuplicateLocation  = errors.New("location already saved")
	// ErrUnsupportedSchema is returned for blobs written by a newer schema version.
	ErrUnsupportedSchema = errors.New("unsupported schema version")

	errCorrupt = errors.New("corrupt stored data")
)
