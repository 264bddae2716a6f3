package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxImageSize is the upload cap for vehicle photos.
	MaxImageSize = 5 * 1024 * 1024
)

var (
	ErrUnsupportedType = errors.New("unsupported image type, use JPG, PNG or WEBP")
	ErrImageTooLarge   = errors.New("image exceeds the 5MB limit")
	ErrInvalidImageURL = errors.New("URL does not point into the vehicle bucket")
)

var allowedContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ObjectStore is the keyed binary store holding vehicle photos.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, publicURL string) error
}

// BucketClient talks to an object-store REST endpoint: objects are written to
// POST {base}/object/{bucket}/{key}, removed with DELETE on the same path and
// publicly readable under {base}/object/public/{bucket}/{key}.
type BucketClient struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewBucketClient(baseURL, bucket, serviceKey string) *BucketClient {
	return &BucketClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ValidateImage gates content type and size before any bytes leave the
// process.
func ValidateImage(contentType string, size int64) error {
	if _, ok := allowedContentTypes[contentType]; !ok {
		return ErrUnsupportedType
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// ObjectKey builds the bucket key for a new vehicle photo:
// {vehicleID}/{unix-nano}-{rand}.{ext}.
func ObjectKey(vehicleID, contentType string) string {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%d-%s.%s", vehicleID, time.Now().UnixNano(), uuid.NewString()[:8], ext)
}

// Upload writes data under key and returns the public URL of the object.
func (c *BucketClient) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := ValidateImage(contentType, int64(len(data))); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image upload rejected (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return c.PublicURL(key), nil
}

// Remove deletes the object a public URL points at.
func (c *BucketClient) Remove(ctx context.Context, publicURL string) error {
	key, err := c.KeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("image removal failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("image removal rejected (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// PublicURL resolves a bucket key to its publicly retrievable URL.
func (c *BucketClient) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, key)
}

// KeyFromPublicURL extracts the bucket key from a public object URL.
func (c *BucketClient) KeyFromPublicURL(publicURL string) (string, error) {
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", ErrInvalidImageURL
	}
	marker := path.Join("/object/public", c.bucket) + "/"
	idx := strings.Index(parsed.Path, marker)
	if idx < 0 {
		return "", ErrInvalidImageURL
	}
	key := parsed.Path[idx+len(marker):]
	if key == "" {
		return "", ErrInvalidImageURL
	}
	return key, nil
}
