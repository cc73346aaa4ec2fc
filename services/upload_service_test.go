package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/quickprint-campus/quickprint-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUploadService(store FileStore, counter PageCounter) (*UploadService, *Metrics) {
	svc := NewUploadService(store, counter, zap.NewNop())
	svc.metrics = NewMetrics(nil)
	svc.now = func() time.Time { return time.Unix(0, 1700000000000000000) }
	return svc, svc.metrics
}

func TestUploadService_Store(t *testing.T) {
	store := NewMockFileStore()
	svc, metrics := newTestUploadService(store, StaticPageCounter{Pages: 12})

	result, err := svc.Store(context.Background(), []byte("%PDF-1.4 fake"), "Lab Report.pdf")
	require.NoError(t, err)

	assert.Equal(t, 12, result.PageCount)
	assert.Equal(t, "1700000000000000000_Lab_Report.pdf", result.Key)
	assert.Equal(t, "Lab_Report.pdf", result.FileName)
	assert.Contains(t, result.URL, result.Key)
	assert.True(t, store.FileExists(result.Key))
	assert.Equal(t, []byte("%PDF-1.4 fake"), store.Files()[result.Key])
	assert.Zero(t, testutil.ToFloat64(metrics.PageCountFallbacks))
}

func TestUploadService_PageCountFallback(t *testing.T) {
	tests := []struct {
		name    string
		counter PageCounter
	}{
		{"counter error", StaticPageCounter{Err: errors.New("malformed xref")}},
		{"zero pages", StaticPageCounter{Pages: 0}},
		{"unparseable pdf", NewPDFPageCounter()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, metrics := newTestUploadService(NewMockFileStore(), tt.counter)

			result, err := svc.Store(context.Background(), []byte("not really a pdf"), "notes.pdf")
			require.NoError(t, err)
			assert.Equal(t, 1, result.PageCount)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PageCountFallbacks))
		})
	}
}

func TestUploadService_RejectsInvalidFiles(t *testing.T) {
	store := NewMockFileStore()
	svc, _ := newTestUploadService(store, StaticPageCounter{Pages: 1})

	_, err := svc.Store(context.Background(), []byte("hello"), "notes.docx")
	var uploadErr *utils.FileUploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "INVALID_FILE_FORMAT", uploadErr.Code)

	_, err = svc.Store(context.Background(), nil, "empty.pdf")
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "EMPTY_FILE", uploadErr.Code)

	assert.Empty(t, store.Files())
}

func TestUploadService_StoreFailure(t *testing.T) {
	store := NewMockFileStore()
	store.PutErr = errors.New("bucket unavailable")
	svc, _ := newTestUploadService(store, StaticPageCounter{Pages: 1})

	_, err := svc.Store(context.Background(), []byte("%PDF"), "notes.pdf")
	assert.ErrorIs(t, err, store.PutErr)
}

func TestLocalFileStore(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalFileStore(dir, "http://localhost:8080")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "123_notes.pdf", []byte("%PDF"), utils.PDFContentType))
	content, err := os.ReadFile(filepath.Join(dir, "123_notes.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), content)

	url, err := store.URL(ctx, "123_notes.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/uploads/123_notes.pdf", url)

	require.NoError(t, store.Delete(ctx, "123_notes.pdf"))
	_, err = os.Stat(filepath.Join(dir, "123_notes.pdf"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Delete(ctx, "123_notes.pdf"), "deleting a missing file is not an error")

	assert.Error(t, store.Put(ctx, "../escape.pdf", []byte("x"), utils.PDFContentType))
}
