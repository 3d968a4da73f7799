package document

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubStorage records calls and returns canned URLs
type stubStorage struct {
	objects     map[string]bool
	deletedKeys []string
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string]bool)}
}

func (s *stubStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.test/upload/" + storageKey, time.Now().Add(expiresIn), nil
}

func (s *stubStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.test/download/" + storageKey, time.Now().Add(expiresIn), nil
}

func (s *stubStorage) DeleteObject(_ context.Context, storageKey string) error {
	s.deletedKeys = append(s.deletedKeys, storageKey)
	delete(s.objects, storageKey)
	return nil
}

func (s *stubStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	return s.objects[storageKey], nil
}

func newTestFileService(storage *stubStorage) *FileService {
	return NewFileService(storage, FileServiceConfig{
		UploadURLTTL:   5 * time.Minute,
		DownloadURLTTL: time.Hour,
	}, zap.NewNop())
}

func testPrincipal(entityID uuid.UUID) *identity.Principal {
	return identity.NewPrincipal(uuid.New(), entityID, nil, identity.RoleEntityUser, "tester")
}

func TestBuildKey(t *testing.T) {
	entityID := uuid.New()
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	key, err := BuildKey(entityID, now, "invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/2026/08/invoice.pdf", entityID), key)

	// Path separators cannot add segments to the key.
	key, err = BuildKey(entityID, now, "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/2026/08/_.._etc_passwd", entityID), key)

	_, err = BuildKey(entityID, now, "   ")
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestRequestUpload(t *testing.T) {
	entityID := uuid.New()
	svc := newTestFileService(newStubStorage())

	resp, err := svc.RequestUpload(context.Background(), testPrincipal(entityID), "invoice.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Contains(t, resp.Key, entityID.String()+"/")
	assert.Contains(t, resp.URL, resp.Key)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	_, err = svc.RequestUpload(context.Background(), nil, "invoice.pdf", "application/pdf")
	assert.True(t, shared.IsCode(err, shared.CodeUnauthorized))
}

func TestRequestDownload(t *testing.T) {
	entityID := uuid.New()
	storage := newStubStorage()
	svc := newTestFileService(storage)
	key := entityID.String() + "/2026/08/invoice.pdf"
	storage.objects[key] = true

	t.Run("own entity", func(t *testing.T) {
		resp, err := svc.RequestDownload(context.Background(), testPrincipal(entityID), key)
		require.NoError(t, err)
		assert.Contains(t, resp.URL, key)
	})

	t.Run("foreign entity key denied", func(t *testing.T) {
		_, err := svc.RequestDownload(context.Background(), testPrincipal(uuid.New()), key)
		require.True(t, shared.IsCode(err, shared.CodeForbidden))
	})

	t.Run("platform admin gets no bypass", func(t *testing.T) {
		admin := identity.NewPrincipal(uuid.New(), uuid.New(), nil, identity.RolePlatformAdmin, "root")
		_, err := svc.RequestDownload(context.Background(), admin, key)
		assert.True(t, shared.IsCode(err, shared.CodeForbidden))
	})

	t.Run("missing object", func(t *testing.T) {
		missing := entityID.String() + "/2026/08/missing.pdf"
		_, err := svc.RequestDownload(context.Background(), testPrincipal(entityID), missing)
		assert.True(t, shared.IsCode(err, shared.CodeNotFound))
	})

	t.Run("malformed key", func(t *testing.T) {
		_, err := svc.RequestDownload(context.Background(), testPrincipal(entityID), "garbage")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestDelete(t *testing.T) {
	entityID := uuid.New()
	storage := newStubStorage()
	svc := newTestFileService(storage)
	key := entityID.String() + "/2026/08/invoice.pdf"
	storage.objects[key] = true

	err := svc.Delete(context.Background(), testPrincipal(uuid.New()), key)
	require.True(t, shared.IsCode(err, shared.CodeForbidden))
	assert.Empty(t, storage.deletedKeys)

	err = svc.Delete(context.Background(), testPrincipal(entityID), key)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, storage.deletedKeys)
}
