package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dondoffy/contract-copilot-canvas/config"
	"github.com/dondoffy/contract-copilot-canvas/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string]string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]string)}
}

func (s *fakeStorage) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = string(data)
	return nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

func (s *fakeStorage) GetPresignedURL(ctx context.Context, objectName string) (string, error) {
	return "https://storage.test/" + objectName, nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func newTestUploads(t *testing.T, storage FileStorage, uploadMs, analysisMs int) *UploadService {
	t.Helper()
	svc := NewUploadService(storage, &config.StoreConfig{MaxFiles: 50}, &config.AssistantConfig{
		UploadDelayMs:   uploadMs,
		AnalysisDelayMs: analysisMs,
	})
	t.Cleanup(svc.Close)
	return svc
}

func waitForStatus(t *testing.T, svc *UploadService, tenant, id, status string) *model.UploadedFile {
	t.Helper()
	require.Eventually(t, func() bool {
		f, err := svc.Get(tenant, id)
		return err == nil && f.Status == status
	}, 2*time.Second, 5*time.Millisecond)
	f, _ := svc.Get(tenant, id)
	return f
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		declared string
		want     string
		wantErr  bool
	}{
		{"pdf default", "a.pdf", "", "application/pdf", false},
		{"upper case ext", "A.PDF", "application/octet-stream", "application/pdf", false},
		{"doc", "a.doc", "", "application/msword", false},
		{"docx declared", "a.docx", "application/custom", "application/custom", false},
		{"txt", "notes.txt", "", "text/plain", false},
		{"unsupported", "image.png", "image/png", "", true},
		{"no extension", "README", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContentType(tt.file, tt.declared)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUploadPipeline(t *testing.T) {
	svc := newTestUploads(t, nil, 20, 200)

	files, err := svc.Upload(context.Background(), "tenant1", []FileUpload{
		{Name: "service_agreement.pdf", Size: 2048, Type: "application/pdf"},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, model.FileUploading, files[0].Status)
	assert.Nil(t, files[0].Analysis)

	waitForStatus(t, svc, "tenant1", files[0].ID, model.FileAnalyzing)
	f := waitForStatus(t, svc, "tenant1", files[0].ID, model.FileComplete)

	require.NotNil(t, f.Analysis)
	assert.Len(t, f.Analysis.DetectedSections, 4)
	assert.Equal(t, "Service Agreement", f.Analysis.ContractType)
}

func TestUploadAnalysisByExactName(t *testing.T) {
	svc := newTestUploads(t, nil, 1, 1)

	files, err := svc.Upload(context.Background(), "tenant1", []FileUpload{
		{Name: "nda_template.docx"},
		{Name: "Service_Agreement.pdf"},
		{Name: "lease.txt"},
	})
	require.NoError(t, err)
	require.Len(t, files, 3)

	nda := waitForStatus(t, svc, "tenant1", files[0].ID, model.FileComplete)
	assert.Equal(t, "Non-Disclosure Agreement", nda.Analysis.ContractType)

	// matching is exact, so a different case falls back to the default
	other := waitForStatus(t, svc, "tenant1", files[1].ID, model.FileComplete)
	assert.Equal(t, "General Contract", other.Analysis.ContractType)

	lease := waitForStatus(t, svc, "tenant1", files[2].ID, model.FileComplete)
	assert.Equal(t, "General Contract", lease.Analysis.ContractType)
	assert.Equal(t, "text/plain", lease.Type)
}

func TestUploadRejectsBatchWithUnsupportedFile(t *testing.T) {
	svc := newTestUploads(t, nil, 1, 1)

	_, err := svc.Upload(context.Background(), "tenant1", []FileUpload{
		{Name: "ok.pdf"},
		{Name: "photo.jpg"},
	})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Empty(t, svc.List("tenant1"))

	_, err = svc.Upload(context.Background(), "tenant1", nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestUploadListKeepsOrder(t *testing.T) {
	svc := newTestUploads(t, nil, 10000, 10000)

	_, err := svc.Upload(context.Background(), "tenant1", []FileUpload{
		{Name: "b.pdf"}, {Name: "a.pdf"}, {Name: "c.pdf"},
	})
	require.NoError(t, err)

	var names []string
	for _, f := range svc.List("tenant1") {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"b.pdf", "a.pdf", "c.pdf"}, names)
}

func TestUploadRemove(t *testing.T) {
	storage := newFakeStorage()
	svc := newTestUploads(t, storage, 10000, 10000)

	files, err := svc.Upload(context.Background(), "tenant1", []FileUpload{
		{Name: "a.pdf", Size: 5, Body: strings.NewReader("hello")},
		{Name: "b.pdf", Size: 5, Body: strings.NewReader("world")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, storage.count())
	assert.Equal(t, "tenant1/"+files[0].ID+"/a.pdf", files[0].ObjectName)

	// unknown and foreign ids leave the list alone
	assert.ErrorIs(t, svc.Remove(context.Background(), "tenant1", "missing"), ErrNotFound)
	assert.ErrorIs(t, svc.Remove(context.Background(), "tenant2", files[0].ID), ErrNotFound)
	assert.Len(t, svc.List("tenant1"), 2)

	require.NoError(t, svc.Remove(context.Background(), "tenant1", files[0].ID))
	assert.Len(t, svc.List("tenant1"), 1)
	assert.Equal(t, 1, storage.count())
}

func TestUploadRemoveStopsPipeline(t *testing.T) {
	svc := newTestUploads(t, nil, 30, 30)

	files, err := svc.Upload(context.Background(), "tenant1", []FileUpload{{Name: "a.pdf"}})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(context.Background(), "tenant1", files[0].ID))

	time.Sleep(100 * time.Millisecond)
	_, err = svc.Get("tenant1", files[0].ID)
	assert.ErrorIs(t, err, ErrNotFound, "a removed file must not come back")
}

func TestUploadStorageFailure(t *testing.T) {
	storage := newFakeStorage()
	storage.uploadErr = errors.New("bucket unavailable")
	svc := newTestUploads(t, storage, 1, 1)

	files, err := svc.Upload(context.Background(), "tenant1", []FileUpload{
		{Name: "a.pdf", Size: 5, Body: strings.NewReader("hello")},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, model.FileError, files[0].Status)
	assert.Contains(t, files[0].ErrorMsg, "bucket unavailable")

	time.Sleep(30 * time.Millisecond)
	f, _ := svc.Get("tenant1", files[0].ID)
	assert.Equal(t, model.FileError, f.Status, "failed files are not analyzed")
}

func TestUploadDownloadURL(t *testing.T) {
	storage := newFakeStorage()
	svc := newTestUploads(t, storage, 10000, 10000)

	files, err := svc.Upload(context.Background(), "tenant1", []FileUpload{
		{Name: "a.pdf", Size: 5, Body: strings.NewReader("hello")},
		{Name: "b.pdf"},
	})
	require.NoError(t, err)

	url, err := svc.DownloadURL(context.Background(), "tenant1", files[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/tenant1/"+files[0].ID+"/a.pdf", url)

	_, err = svc.DownloadURL(context.Background(), "tenant1", files[1].ID)
	assert.ErrorIs(t, err, ErrNotStored)
}
