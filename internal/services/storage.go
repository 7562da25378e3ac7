package services

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UploadedFile describes a file stored in the gallery bucket
type UploadedFile struct {
	Filename    string
	S3Key       string
	URL         string
	ContentType string
	Size        int64
}

// StorageService provides S3-backed file storage for gallery media
type StorageService struct {
	s3Client *s3.S3
	bucket   string
	baseURL  string
}

// NewStorageService creates a new storage service from S3_* environment variables
func NewStorageService() (*StorageService, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")

	if accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("S3 configuration missing")
	}

	config := &aws.Config{
		Region: aws.String("us-east-1"),
		Credentials: credentials.NewStaticCredentials(
			accessKey,
			secretKey,
			"",
		),
	}
	if endpoint != "" {
		config.Endpoint = aws.String(endpoint)
		config.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		bucket:   bucket,
		baseURL:  fmt.Sprintf("https://%s", bucket),
	}, nil
}

// UploadGalleryFile uploads an image or video into the gallery folder.
// Only image/* and video/* content types are accepted.
func (s *StorageService) UploadGalleryFile(fileHeader *multipart.FileHeader) (*UploadedFile, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Detect content type from the first 512 bytes
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil {
		return nil, fmt.Errorf("failed to read file for content type detection: %w", err)
	}
	file.Seek(0, 0)

	contentType := http.DetectContentType(buffer)
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return nil, fmt.Errorf("only images and videos are allowed, got %s", contentType)
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	s3Key := fmt.Sprintf("gallery/%s", filename)

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s3Key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s", s.baseURL, s3Key)
	log.Info().Str("s3_key", s3Key).Str("content_type", contentType).Msg("Gallery file uploaded to S3")

	return &UploadedFile{
		Filename:    filename,
		S3Key:       s3Key,
		URL:         publicURL,
		ContentType: contentType,
		Size:        fileHeader.Size,
	}, nil
}

// DeleteFile removes an object from the bucket
func (s *StorageService) DeleteFile(s3Key string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	log.Info().Str("s3_key", s3Key).Msg("File deleted from S3")
	return nil
}
