package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/wonny/buyside/pkg/config"
	"github.com/wonny/buyside/pkg/httputil"
	"github.com/wonny/buyside/pkg/logger"
)

// Client uploads artifacts to the durable object store. Objects are
// addressed by name under one fixed container; uploads are PUTs, so a
// same-day re-run overwrites the same object instead of accumulating
// duplicates.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	container  string
	token      string
}

// NewClient creates a new object storage client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.StorageConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("storage base URL is not configured")
	}

	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		container:  cfg.Container,
		token:      cfg.Token,
	}, nil
}

// UploadFile uploads the local file at path as objectName in the configured
// container
func (c *Client) UploadFile(ctx context.Context, path, objectName string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", path, err)
	}

	fullURL := fmt.Sprintf("%s/%s/%s",
		c.baseURL, url.PathEscape(c.container), url.PathEscape(objectName))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, fullURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", objectName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload %s: unexpected status code %d", objectName, resp.StatusCode)
	}

	c.logger.WithFields(map[string]interface{}{
		"object":    objectName,
		"container": c.container,
		"bytes":     len(data),
	}).Info("Artifact uploaded")

	return nil
}
