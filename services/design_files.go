package services

import (
	"log"

	"github.com/darshanik-apparels/b2b-api/models"
)

// AttachDesignFileURLs fills in presigned URLs for a design's stored S3 keys.
// URL generation failures are logged and the key is skipped; a broken link is
// not worth failing the whole response.
func AttachDesignFileURLs(design *models.Design) {
	s3Service := GetS3Service()
	if s3Service == nil || len(design.FileKeys) == 0 {
		return
	}

	urls := make([]string, 0, len(design.FileKeys))
	for _, key := range design.FileKeys {
		url, err := s3Service.GetPresignedURL(key)
		if err != nil {
			log.Printf("Failed to generate presigned URL for design %d key %s: %v", design.ID, key, err)
			continue
		}
		urls = append(urls, url)
	}
	design.FileURLs = urls
}
