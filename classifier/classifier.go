// Package classifier calls the external bird classification model.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/birdquest/birdquest/models"
)

// ErrTimeout is returned when the model does not answer within the configured
// deadline. The model has no latency bound of its own, so the client enforces
// one.
var ErrTimeout = errors.New("classification timed out")

// StatusError reports a non-success response from the model, carrying the
// upstream status and body for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model API returned %d: %s", e.StatusCode, e.Body)
}

// Classifier labels an uploaded image
type Classifier interface {
	Classify(ctx context.Context, data []byte, contentType, filename string) (*models.Classification, error)
}

// Config holds classifier endpoint configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// httpClassifier implements Classifier against the model's HTTP endpoint
type httpClassifier struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a Classifier for the configured model endpoint
func New(cfg Config) Classifier {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &httpClassifier{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify POSTs the image as multipart form data to <base>/classify and
// decodes the {label, probability, classId} verdict. No retries: failures
// surface immediately.
func (c *httpClassifier) Classify(ctx context.Context, data []byte, contentType, filename string) (*models.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	if filename == "" {
		filename = "bird_image"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("no response within %s: %w", c.timeout, ErrTimeout)
		}
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Cap the diagnostic body; the model is not trusted to be brief.
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(bodyBytes)),
		}
	}

	var result models.Classification
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	return &result, nil
}

// isTimeout reports whether the request failed on a deadline rather than a
// transport error
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
