package services

import (
	"context"
	"fmt"
	"time"

	"github.com/quickprint-campus/quickprint-api/utils"
	"go.uber.org/zap"
)

// defaultPageCount is used when a document's pages cannot be counted
const defaultPageCount = 1

// UploadResult describes a stored print file
type UploadResult struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	FileName  string `json:"file_name"`
	PageCount int    `json:"page_count"`
}

// UploadService stores print files and counts their pages
type UploadService struct {
	store   FileStore
	counter PageCounter
	logger  *zap.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewUploadService creates an upload service
func NewUploadService(store FileStore, counter PageCounter, logger *zap.Logger) *UploadService {
	return &UploadService{
		store:   store,
		counter: counter,
		logger:  logger,
		metrics: GetMetrics(),
		now:     time.Now,
	}
}

var uploadServiceInstance *UploadService

// InitUploadService initializes the shared upload service
func InitUploadService(store FileStore, counter PageCounter, logger *zap.Logger) *UploadService {
	uploadServiceInstance = NewUploadService(store, counter, logger)
	return uploadServiceInstance
}

// GetUploadService returns the initialized upload service instance
func GetUploadService() *UploadService {
	return uploadServiceInstance
}

// SetUploadService sets the upload service instance (primarily for testing)
func SetUploadService(s *UploadService) {
	uploadServiceInstance = s
}

// Store validates and saves a print file. A page count failure never fails
// the upload; the count falls back to 1.
func (s *UploadService) Store(ctx context.Context, content []byte, filename string) (*UploadResult, error) {
	if err := utils.ValidatePrintFileName(filename, int64(len(content))); err != nil {
		return nil, err
	}

	key := utils.UniqueFileName(filename, s.now())
	if err := s.store.Put(ctx, key, content, utils.PDFContentType); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to build file URL: %w", err)
	}

	pages, err := s.counter.CountPages(content)
	if err != nil || pages <= 0 {
		s.metrics.PageCountFallbacks.Inc()
		s.logger.Warn("page count failed, defaulting",
			zap.String("key", key),
			zap.Int("page_count", defaultPageCount),
			zap.Error(err),
		)
		pages = defaultPageCount
	}

	s.logger.Info("file uploaded", zap.String("key", key), zap.Int("page_count", pages))
	return &UploadResult{
		URL:       url,
		Key:       key,
		FileName:  utils.SanitizeFileName(filename),
		PageCount: pages,
	}, nil
}
