package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
	apperrors "github.com/target/usermgmt-ui/internal/errors"
)

// FileStore persists the raw token string in a single file so it survives restarts.
// The file is written atomically (temp file + rename) with 0600 permissions.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store. The parent directory is created on first Set.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, apperrors.ValidationField("TOKEN_STORE_FILE", "token file path is required")
	}
	return &FileStore{path: filepath.Clean(path)}, nil
}

// Path returns the file the token is stored in.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", apperrors.Wrapf(err, apperrors.ErrCodeInternal, "read token file %s", f.path)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return domainauth.ErrEmptyToken
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "create token dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "create temp token file")
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, token); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "write token file")
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "replace token file")
	}
	return nil
}

func (f *FileStore) Remove(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "remove token file %s", f.path)
	}
	return nil
}

func writeAndClose(file *os.File, token string) error {
	if err := file.Chmod(0o600); err != nil {
		return errors.Join(err, file.Close())
	}
	if _, err := file.WriteString(token); err != nil {
		return errors.Join(err, file.Close())
	}
	if err := file.Sync(); err != nil {
		return errors.Join(err, file.Close())
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
