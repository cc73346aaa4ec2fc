package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// MaxFileSize is 20MB in bytes
	MaxFileSize = 20 * 1024 * 1024
	// AllowedPrintFormat is PDF, the only format shops print from
	AllowedPrintFormat = ".pdf"
	// PDFContentType is the content type stored with uploaded files
	PDFContentType = "application/pdf"
)

var (
	// UploadDir is the directory where uploaded files are stored
	// Can be overridden for testing
	UploadDir = "./uploads"

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidatePrintFile validates the uploaded file format and size
func ValidatePrintFile(fileHeader *multipart.FileHeader) error {
	return ValidatePrintFileName(fileHeader.Filename, fileHeader.Size)
}

// ValidatePrintFileName validates a file name and size without a multipart header
func ValidatePrintFileName(filename string, size int64) error {
	if size <= 0 {
		return &FileUploadError{
			Code:    "EMPTY_FILE",
			Message: "Uploaded file is empty",
		}
	}

	// Check file size
	if size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != AllowedPrintFormat {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", AllowedPrintFormat),
		}
	}

	return nil
}

// SanitizeFileName strips directories and characters that are unsafe in paths and URLs
func SanitizeFileName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "document.pdf"
	}
	return base
}

// UniqueFileName prefixes a sanitized name with a timestamp to prevent collisions
func UniqueFileName(filename string, now time.Time) string {
	return fmt.Sprintf("%d_%s", now.UnixNano(), SanitizeFileName(filename))
}

// SaveFile writes content to uploadDir/filename, creating the directory if needed
func SaveFile(uploadDir, filename string, content []byte) error {
	// Create uploads directory if it doesn't exist
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	fullPath := filepath.Join(uploadDir, filepath.Base(filename))
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}

// ValidStoredFileName rejects names that could escape the upload directory
func ValidStoredFileName(filename string) bool {
	return filename != "" &&
		!strings.Contains(filename, "..") &&
		!strings.Contains(filename, "/") &&
		!strings.Contains(filename, "\\")
}

// GetFileURL returns the URL path for accessing a locally stored file
func GetFileURL(baseURL, filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/v1/uploads/%s", strings.TrimRight(baseURL, "/"), filename)
}
