package utils

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDesignFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantCode string
	}{
		{"png is accepted", "logo.png", 1024, ""},
		{"uppercase extension is accepted", "LOGO.PNG", 1024, ""},
		{"pdf is accepted", "pattern.pdf", 1024, ""},
		{"illustrator file is accepted", "artwork.ai", 1024, ""},
		{"svg is accepted", "logo.svg", 1024, ""},
		{"executable is rejected", "malware.exe", 1024, "INVALID_FILE_FORMAT"},
		{"no extension is rejected", "mystery", 1024, "INVALID_FILE_FORMAT"},
		{"oversized file is rejected", "huge.png", MaxDesignFileSize + 1, "FILE_TOO_LARGE"},
		{"file at the limit is accepted", "big.png", MaxDesignFileSize, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := ValidateDesignFile(header)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var uploadErr *FileUploadError
			assert.True(t, errors.As(err, &uploadErr))
			assert.Equal(t, tt.wantCode, uploadErr.Code)
		})
	}
}

func TestContentTypeForFile(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeForFile("logo.png"))
	assert.Equal(t, "image/jpeg", ContentTypeForFile("photo.JPG"))
	assert.Equal(t, "application/pdf", ContentTypeForFile("pattern.pdf"))
	assert.Equal(t, "application/octet-stream", ContentTypeForFile("unknown.bin"))
}
