// Package storage abstracts the flat namespace stored assets live in.
//
// Two backends implement the Storage interface: LocalStorage over a
// single directory on disk (the default) and S3Storage over an S3 or
// S3-compatible bucket. Both provide exclusive object creation, so the
// name allocator's existence probe followed by the final write is race
// free without any locking: the second writer of the same name fails
// with ErrAlreadyExists instead of overwriting.
package storage
