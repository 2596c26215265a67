package storage

import "errors"

var (
	// ErrInvalidConfig is returned when a backend is constructed with missing or invalid settings
	ErrInvalidConfig = errors.New("invalid storage configuration")

	// ErrInvalidName is returned when an object name is not a bare filename
	ErrInvalidName = errors.New("invalid object name")

	// ErrAlreadyExists is returned when creating an object whose name is taken
	ErrAlreadyExists = errors.New("object already exists")

	// ErrNotFound is returned when an object does not exist
	ErrNotFound = errors.New("object not found")

	// ErrFailedToWrite is returned when an object cannot be written
	ErrFailedToWrite = errors.New("failed to write object")

	// ErrFailedToCreateDirectory is returned when the storage root cannot be created
	ErrFailedToCreateDirectory = errors.New("failed to create storage directory")

	// ErrDirectoryUnwritable is returned when the storage root rejects writes
	ErrDirectoryUnwritable = errors.New("storage directory is not writable")
)
