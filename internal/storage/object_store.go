package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"tripdeck/internal/config"
)

var ErrInvalidObjectName = errors.New("invalid object name")

// ObjectStore is a flat bucket of public objects.
type ObjectStore interface {
	// Put writes the object, replacing any existing one with the same name.
	Put(ctx context.Context, name string, r io.Reader) error
	Remove(ctx context.Context, name string) error
	PublicURL(name string) string
	// Name maps a public URL back to its object name.
	Name(publicURL string) string
}

// FileStore keeps a bucket as a directory under the storage root.
type FileStore struct {
	dir     string
	baseURL string
}

const PublicPrefix = "/images"

func NewFileStore(cfg *config.Config) (*FileStore, error) {
	dir := filepath.Join(cfg.StorageDir, cfg.StorageBucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bucket dir: %w", err)
	}
	return &FileStore{
		dir:     dir,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/") + PublicPrefix,
	}, nil
}

// Dir is the directory served under PublicPrefix.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Put(ctx context.Context, name string, r io.Reader) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (s *FileStore) Remove(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (s *FileStore) PublicURL(name string) string {
	return s.baseURL + "/" + name
}

func (s *FileStore) Name(publicURL string) string {
	u := strings.SplitN(publicURL, "?", 2)[0]
	return path.Base(u)
}

func (s *FileStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectName, name)
	}
	return filepath.Join(s.dir, name), nil
}
