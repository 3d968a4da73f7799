package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/authz"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorage abstracts the S3-compatible backend the file service
// issues presigned URLs against
type ObjectStorage interface {
	// GenerateUploadURL generates a presigned URL for uploading a file.
	// Returns the upload URL and expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file.
	// Returns the download URL and expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// FileServiceConfig holds URL lifetime configuration
type FileServiceConfig struct {
	UploadURLTTL   time.Duration
	DownloadURLTTL time.Duration
}

// DefaultFileServiceConfig returns the default configuration
func DefaultFileServiceConfig() FileServiceConfig {
	return FileServiceConfig{
		UploadURLTTL:   5 * time.Minute,
		DownloadURLTTL: time.Hour,
	}
}

// PresignedURLResponse is a presigned URL with its storage key and expiry
type PresignedURLResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileService issues presigned URLs for entity-scoped documents. Object
// keys have the form entityID/year/month/filename and every operation
// checks the key against the caller before touching storage.
type FileService struct {
	storage ObjectStorage
	config  FileServiceConfig
	logger  *zap.Logger
}

// NewFileService creates a new FileService
func NewFileService(storage ObjectStorage, config FileServiceConfig, logger *zap.Logger) *FileService {
	if config.UploadURLTTL == 0 {
		config.UploadURLTTL = DefaultFileServiceConfig().UploadURLTTL
	}
	if config.DownloadURLTTL == 0 {
		config.DownloadURLTTL = DefaultFileServiceConfig().DownloadURLTTL
	}
	return &FileService{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// BuildKey composes the object key for a new document uploaded now
func BuildKey(entityID uuid.UUID, now time.Time, filename string) (string, error) {
	filename = sanitizeFilename(filename)
	if filename == "" {
		return "", shared.NewValidationError("filename cannot be empty")
	}
	return fmt.Sprintf("%s/%04d/%02d/%s", entityID, now.Year(), int(now.Month()), filename), nil
}

// RequestUpload issues a presigned upload URL for a new document in the
// caller's entity
func (s *FileService) RequestUpload(ctx context.Context, p *identity.Principal, filename, contentType string) (*PresignedURLResponse, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}

	key, err := BuildKey(p.EntityID, time.Now(), filename)
	if err != nil {
		return nil, err
	}
	if _, d, err := authz.AuthorizeFileKey(p, key); err != nil {
		return nil, err
	} else if !d.Allowed {
		return nil, d.Err()
	}

	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.config.UploadURLTTL)
	if err != nil {
		s.logger.Error("failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate upload URL")
	}

	return &PresignedURLResponse{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

// RequestDownload issues a presigned download URL for an existing document
func (s *FileService) RequestDownload(ctx context.Context, p *identity.Principal, key string) (*PresignedURLResponse, error) {
	if _, d, err := authz.AuthorizeFileKey(p, key); err != nil {
		return nil, err
	} else if !d.Allowed {
		return nil, d.Err()
	}

	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		s.logger.Error("failed to check object", zap.String("key", key), zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to check document")
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Document not found")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.config.DownloadURLTTL)
	if err != nil {
		s.logger.Error("failed to presign download", zap.String("key", key), zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download URL")
	}

	return &PresignedURLResponse{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

// Delete removes a document from storage
func (s *FileService) Delete(ctx context.Context, p *identity.Principal, key string) error {
	if _, d, err := authz.AuthorizeFileKey(p, key); err != nil {
		return err
	} else if !d.Allowed {
		return d.Err()
	}

	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Error("failed to delete object", zap.String("key", key), zap.Error(err))
		return shared.NewDomainError("STORAGE_ERROR", "Failed to delete document")
	}

	s.logger.Info("document deleted", zap.String("key", key))
	return nil
}

// sanitizeFilename strips path separators and leading dots so a
// filename can never escape its entity/year/month folder
func sanitizeFilename(filename string) string {
	filename = strings.TrimSpace(filename)
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.TrimLeft(filename, ".")
	return filename
}
