package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage implements Storage over a single flat directory on the
// local filesystem. It is safe for concurrent use: exclusive-create
// semantics on the final file close the window between an existence
// check and the write, so two concurrent requests can never claim the
// same name.
type LocalStorage struct {
	baseDir string // root directory holding all stored objects
	baseURL string // public URL prefix, always with trailing slash
}

// NewLocalStorage creates a local filesystem storage rooted at baseDir,
// creating the directory if it does not exist. baseURL is the public
// prefix for serving stored objects (e.g. "https://files.example.com").
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrInvalidConfig, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &LocalStorage{
		baseDir: absBaseDir,
		baseURL: baseURL,
	}, nil
}

// Create writes a new object with O_EXCL semantics. If the write fails
// partway the file is removed, so a failed request leaves no trace.
func (s *LocalStorage) Create(ctx context.Context, name string, r io.Reader) (int64, error) {
	absPath, err := s.resolveName(name)
	if err != nil {
		return 0, err
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrAlreadyExists, name)
		}
		return 0, fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}

	written := int64(0)
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			_ = dst.Close()
			_ = os.Remove(absPath)
			return 0, ctx.Err()
		default:
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			nw, writeErr := dst.Write(buf[:n])
			if writeErr != nil {
				_ = dst.Close()
				_ = os.Remove(absPath)
				return 0, fmt.Errorf("%w: %v", ErrFailedToWrite, writeErr)
			}
			written += int64(nw)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = dst.Close()
			_ = os.Remove(absPath)
			return 0, fmt.Errorf("%w: %v", ErrFailedToWrite, readErr)
		}
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return 0, fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}

	return written, nil
}

// ExistsWithPrefix reports whether any file in the storage directory
// starts with prefix. The prefix is matched as a literal glob against
// the flat namespace, mirroring the allocator's "<baseId>." probe.
func (s *LocalStorage) ExistsWithPrefix(ctx context.Context, prefix string) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	if strings.ContainsAny(prefix, `/\*?[`) {
		// Glob metacharacters or separators never appear in allocator
		// prefixes; treat them as taken rather than risk a miss.
		return true
	}

	matches, err := filepath.Glob(filepath.Join(s.baseDir, prefix+"*"))
	if err != nil {
		return true
	}
	return len(matches) > 0
}

// Remove deletes a single object.
func (s *LocalStorage) Remove(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := s.resolveName(name)
	if err != nil {
		return err
	}

	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}
	return nil
}

// URL returns the public URL for a stored object.
func (s *LocalStorage) URL(name string) string {
	return s.baseURL + name
}

// Healthcheck probes the storage directory with a throwaway exclusive
// create, surfacing read-only mounts and permission problems early.
func (s *LocalStorage) Healthcheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	probe := filepath.Join(s.baseDir, ".probe-"+uuid.NewString())
	f, err := os.OpenFile(probe, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDirectoryUnwritable, err)
	}
	_ = f.Close()
	_ = os.Remove(probe)
	return nil
}

// Dir returns the absolute path of the storage directory.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// resolveName validates that name addresses a file directly inside the
// storage directory, rejecting separators and traversal attempts.
func (s *LocalStorage) resolveName(name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.baseDir, name), nil
}
