package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/willowgate/school-api/config"
)

// Client stores gallery images on an S3-compatible object host
type Client struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
	cdnURL   string
}

// UploadResult describes the stored asset
type UploadResult struct {
	AssetID   string
	URL       string
	SecureURL string
	Width     int
	Height    int
	Format    string
	Bytes     int64
}

// NewClient creates a media host client from the media configuration
func NewClient(cfg *config.Config) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			cfg.MediaAccessKey,
			cfg.MediaSecretKey,
			"",
		),
		Endpoint:         aws.String(cfg.MediaEndpoint),
		Region:           aws.String(cfg.MediaRegion),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media host session: %w", err)
	}

	return &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.MediaBucket,
		endpoint: cfg.MediaEndpoint,
		cdnURL:   cfg.MediaCDNURL,
	}, nil
}

// Upload stores image bytes under a fresh object key and returns the
// asset identity, delivery URLs and pixel dimensions.
func (c *Client) Upload(ctx context.Context, data []byte, contentType string) (*UploadResult, error) {
	conf, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image data: %w", err)
	}

	key := fmt.Sprintf("gallery/%s.%s", uuid.New().String(), format)

	_, err = c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset: %w", err)
	}

	host := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "https://"), "http://")
	secureURL := fmt.Sprintf("https://%s.%s/%s", c.bucket, host, key)
	url := secureURL
	if c.cdnURL != "" {
		url = fmt.Sprintf("%s/%s", strings.TrimSuffix(c.cdnURL, "/"), key)
	}

	return &UploadResult{
		AssetID:   key,
		URL:       url,
		SecureURL: secureURL,
		Width:     conf.Width,
		Height:    conf.Height,
		Format:    format,
		Bytes:     int64(len(data)),
	}, nil
}

// Delete removes the remote asset by its id
func (c *Client) Delete(ctx context.Context, assetID string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}
	return nil
}
