package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxDesignFileSize is 25MB in bytes
	MaxDesignFileSize = 25 * 1024 * 1024
)

// allowedDesignFormats maps accepted design file extensions to their content types
var allowedDesignFormats = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
	".ai":   "application/postscript",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateDesignFile validates the uploaded design file format and size
func ValidateDesignFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxDesignFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxDesignFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedDesignFormats[ext]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only PNG, JPG, SVG, PDF and AI files are allowed",
		}
	}

	return nil
}

// ContentTypeForFile returns the content type for an accepted design file,
// falling back to a generic binary type
func ContentTypeForFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if contentType, ok := allowedDesignFormats[ext]; ok {
		return contentType
	}
	return "application/octet-stream"
}
