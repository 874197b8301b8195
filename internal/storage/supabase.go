package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client uploads objects to a Supabase Storage bucket and resolves their
// public URLs.
type Client struct {
	BaseURL    string
	ServiceKey string
	Bucket     string
	HTTPClient *http.Client
}

func NewClient(baseURL, serviceKey, bucket string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		ServiceKey: serviceKey,
		Bucket:     bucket,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewKey returns a fresh storage key for an upload. Client-supplied
// filenames are never reused, so uploads cannot overwrite each other or
// smuggle path segments.
func NewKey(contentType string) string {
	return uuid.NewString() + ExtensionFor(contentType)
}

// Upload stores data under key and returns the public URL. The bucket is
// written without upsert: keys are fresh UUIDs, so a conflict means a bug,
// not something to paper over.
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.BaseURL, c.Bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", &uploadError{Status: res.StatusCode, Body: string(body)}
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.BaseURL, c.Bucket, key), nil
}

type uploadError struct {
	Status int
	Body   string
}

func (e *uploadError) Error() string {
	return fmt.Sprintf("storage upload failed: status %d", e.Status)
}
