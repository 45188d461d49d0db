package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/Brownie44l1/facerec/internal/logger"
)

const pngContentType = "image/png"

type Client struct {
	http     *resty.Client
	endpoint string
}

func NewClient(baseURL string, endpoint string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}

	return &Client{
		http:     httpClient,
		endpoint: "/" + strings.TrimLeft(endpoint, "/"),
	}
}

// Predict uploads the PNG at path as the "image" form field and returns
// the decoded prediction.
func (c *Client) Predict(ctx context.Context, path string) (*PredictionResponse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	requestID := uuid.NewString()
	logger.Debug.Printf("Uploading %s to %s (request %s)", filepath.Base(path), c.endpoint, requestID)

	var result PredictionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetMultipartField(FormFieldImage, filepath.Base(path), pngContentType, file).
		SetResult(&result).
		// Undecodable 2xx bodies, such as tunnel interstitial pages, are errors.
		ForceContentType("application/json").
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}

	logger.Debug.Printf("Request %s answered in %s", requestID, resp.Time())
	return &result, nil
}

func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if !resp.IsSuccess() {
		return &StatusError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}
	return nil
}
