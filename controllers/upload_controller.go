package controllers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quickprint-campus/quickprint-api/services"
	"github.com/quickprint-campus/quickprint-api/utils"
)

// UploadFile handles POST /api/v1/upload - stores a PDF and reports its page count
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "MISSING_FILE", "A file is required in the 'file' form field")
		return
	}

	// Reject before reading the body into memory
	if err := utils.ValidatePrintFile(fileHeader); err != nil {
		respondError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_FILE", "Could not read uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, utils.MaxFileSize+1))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_FILE", "Could not read uploaded file")
		return
	}

	result, err := services.GetUploadService().Store(c.Request.Context(), content, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetUploadedFile handles GET /api/v1/uploads/:filename - serves locally stored PDFs
func GetUploadedFile(c *gin.Context) {
	filename := c.Param("filename")

	// Validate filename is not empty
	if filename == "" {
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
		return
	}

	// Prevent directory traversal
	if !utils.ValidStoredFileName(filename) {
		errorResponse(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	if strings.ToLower(filepath.Ext(filename)) != utils.AllowedPrintFormat {
		errorResponse(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only PDF files are supported")
		return
	}

	filePath := filepath.Join(utils.UploadDir, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		errorResponse(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
		return
	}

	c.Header("Content-Type", utils.PDFContentType)
	c.Header("Cache-Control", "private, max-age=3600")
	c.File(filePath)
}
