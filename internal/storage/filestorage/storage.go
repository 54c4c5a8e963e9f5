package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inmobiliaria/internal/lib/slug"
	"inmobiliaria/internal/storage"
)

// FileStorage keeps uploaded import files so a run can be audited later.
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, fileSize int64, err error)
	Open(relativePath string) (*os.File, error)
	Delete(ctx context.Context, filePath string) error
	GetFullPath(relativePath string) string
}

var allowedExt = map[string]bool{
	".csv":  true,
	".json": true,
}

type LocalFileStorage struct {
	baseDir string
	baseURL string
	maxSize int64
	now     func() time.Time
}

func NewLocalFileStorage(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: baseURL,
		maxSize: maxSize,
		now:     time.Now,
	}, nil
}

// Save writes the upload under subPath with a timestamped, slugged name and
// returns the path relative to the base directory.
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExt[ext] {
		return "", 0, fmt.Errorf("%w: %q", storage.ErrInvalidFileType, ext)
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", 0, storage.ErrFileTooLarge
	}

	name := slug.Make(strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)))
	if name == "" {
		name = "upload"
	}
	relPath := filepath.Join(subPath, s.now().UTC().Format("20060102T150405")+"-"+name+ext)
	fullPath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	var reader io.Reader = src
	if s.maxSize > 0 {
		reader = io.LimitReader(src, s.maxSize+1)
	}

	size, err := io.Copy(dst, reader)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to copy file: %w", err)
	}
	if s.maxSize > 0 && size > s.maxSize {
		_ = os.Remove(fullPath)
		return "", 0, storage.ErrFileTooLarge
	}

	return relPath, size, nil
}

func (s *LocalFileStorage) Open(relativePath string) (*os.File, error) {
	f, err := os.Open(s.GetFullPath(relativePath))
	if errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrFileNotFound
	}
	return f, err
}

func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	err := os.Remove(s.GetFullPath(filePath))
	if errors.Is(err, os.ErrNotExist) {
		return storage.ErrFileNotFound
	}
	return err
}

func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, filepath.Clean("/"+relativePath))
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}
