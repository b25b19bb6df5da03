package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dondoffy/contract-copilot-canvas/config"
	"github.com/dondoffy/contract-copilot-canvas/model"
	"github.com/dondoffy/contract-copilot-canvas/pkg/logger"
	"github.com/google/uuid"
)

// allowedTypes maps accepted extensions to their content type
var allowedTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// FileUpload is one file of an upload batch. Body may be nil.
type FileUpload struct {
	Name string
	Size int64
	Type string
	Body io.Reader
}

// UploadService tracks uploaded files through uploading, analyzing and complete
type UploadService struct {
	store         *Store[*model.UploadedFile]
	storage       FileStorage // nil keeps metadata only
	uploadDelay   time.Duration
	analysisDelay time.Duration

	mu     sync.Mutex // guards tasks
	tasks  *taskGroup
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewUploadService(storage FileStorage, storeCfg *config.StoreConfig, assistantCfg *config.AssistantConfig) *UploadService {
	root, cancel := context.WithCancel(context.Background())
	s := &UploadService{
		store:         NewStore[*model.UploadedFile]("files", storeCfg.MaxFiles),
		storage:       storage,
		uploadDelay:   millis(assistantCfg.UploadDelayMs),
		analysisDelay: millis(assistantCfg.AnalysisDelayMs),
		tasks:         newTaskGroup(root),
		cancel:        cancel,
	}
	s.store.OnEvict(s.cancelPipeline)
	return s
}

// ContentType validates a file name and resolves its content type
func ContentType(name, declared string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	expected, ok := allowedTypes[ext]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrUnsupportedFileType)
	}
	if declared == "" || declared == "application/octet-stream" {
		return expected, nil
	}
	return declared, nil
}

// Upload records every file of the batch and starts its analysis pipeline.
// A batch with any unsupported file is rejected as a whole.
func (s *UploadService) Upload(ctx context.Context, tenant string, files []FileUpload) ([]*model.UploadedFile, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	types := make([]string, len(files))
	for i, f := range files {
		ct, err := ContentType(f.Name, f.Type)
		if err != nil {
			return nil, err
		}
		types[i] = ct
	}

	result := make([]*model.UploadedFile, 0, len(files))
	for i, f := range files {
		now := time.Now()
		record := &model.UploadedFile{
			ID:        uuid.New().String(),
			Tenant:    tenant,
			Name:      f.Name,
			Size:      f.Size,
			Type:      types[i],
			Status:    model.FileUploading,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if s.storage != nil && f.Body != nil {
			objectName := fmt.Sprintf("%s/%s/%s", tenant, record.ID, f.Name)
			if err := s.storage.UploadFile(ctx, objectName, f.Body, f.Size, record.Type); err != nil {
				logger.Error(ctx, "failed to store file", "file_id", record.ID, "name", f.Name, "error", err)
				record.Status = model.FileError
				record.ErrorMsg = err.Error()
				s.store.Save(record)
				result = append(result, record.Clone())
				continue
			}
			record.ObjectName = objectName
		}

		s.store.Save(record)
		s.startPipeline(tenant, record.ID, record.Name)
		logger.Info(ctx, "file uploaded", "file_id", record.ID, "name", f.Name, "size", f.Size)
		result = append(result, record.Clone())
	}
	return result, nil
}

func (s *UploadService) startPipeline(tenant, id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, done := s.tasks.start(id)
	s.wg.Add(1)
	go s.process(ctx, done, tenant, id, name)
}

// process walks a file through analyzing to complete
func (s *UploadService) process(ctx context.Context, done func(), tenant, id, name string) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		done()
		s.mu.Unlock()
	}()

	if !s.advance(ctx, tenant, id, s.uploadDelay, func(f *model.UploadedFile) {
		f.Status = model.FileAnalyzing
	}) {
		return
	}
	s.advance(ctx, tenant, id, s.analysisDelay, func(f *model.UploadedFile) {
		f.Status = model.FileComplete
		f.Analysis = AnalyzeFile(name)
	})
}

// advance waits for d, then applies fn unless the pipeline was cancelled
func (s *UploadService) advance(ctx context.Context, tenant, id string, d time.Duration, fn func(f *model.UploadedFile)) bool {
	if err := sleep(ctx, d); err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	_, err := s.store.Update(tenant, id, func(f *model.UploadedFile) error {
		fn(f)
		f.UpdatedAt = time.Now()
		return nil
	})
	return err == nil
}

func (s *UploadService) Get(tenant, id string) (*model.UploadedFile, error) {
	f, ok := s.store.Get(tenant, id)
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	return f, nil
}

// List returns the tenant's files in upload order
func (s *UploadService) List(tenant string) []*model.UploadedFile {
	return s.store.GetByTenant(tenant)
}

// DownloadURL returns a presigned URL for the stored bytes of a file
func (s *UploadService) DownloadURL(ctx context.Context, tenant, id string) (string, error) {
	f, err := s.Get(tenant, id)
	if err != nil {
		return "", err
	}
	if s.storage == nil || f.ObjectName == "" {
		return "", fmt.Errorf("file %s: %w", id, ErrNotStored)
	}
	return s.storage.GetPresignedURL(ctx, f.ObjectName)
}

// Remove deletes a file record whatever its status and stops its pipeline
func (s *UploadService) Remove(ctx context.Context, tenant, id string) error {
	f, ok := s.store.Get(tenant, id)
	if !ok || !s.store.Delete(tenant, id) {
		return fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	s.cancelPipeline(id)

	if s.storage != nil && f.ObjectName != "" {
		if err := s.storage.DeleteFile(ctx, f.ObjectName); err != nil {
			logger.Warn(ctx, "failed to delete stored file", "file_id", id, "error", err)
		}
	}

	logger.Info(ctx, "file removed", "file_id", id)
	return nil
}

func (s *UploadService) cancelPipeline(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.cancel(id)
}

// Close cancels every pipeline and waits for them to exit
func (s *UploadService) Close() {
	s.cancel()
	s.wg.Wait()
}
