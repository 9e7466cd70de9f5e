package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var attachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

type FileService interface {
	// UploadJustificationAttachment stores a justification attachment under
	// justifications/{employeeID}/{date}/ and returns its storage path
	UploadJustificationAttachment(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (string, error)

	// OpenFile streams a stored file; the caller closes it
	OpenFile(ctx context.Context, path string) (io.ReadCloser, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadJustificationAttachment implements FileService.
func (s *fileServiceImpl) UploadJustificationAttachment(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(attachmentExts, ext) {
		return "", fmt.Errorf("invalid file type: only pdf, jpg, jpeg, png allowed")
	}

	newFilename := fmt.Sprintf("%s-%d%s", uuid.New().String(), time.Now().Unix(), ext)
	path := filepath.Join("justifications", employeeID, date.Format("2006-01-02"), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload justification attachment: %w", err)
	}

	return uploadedPath, nil
}

// OpenFile implements FileService.
func (s *fileServiceImpl) OpenFile(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

// DeleteFile deletes a file; a missing file is not an error
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	exists, err := s.storage.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to check file: %w", err)
	}
	if !exists {
		return nil
	}
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
