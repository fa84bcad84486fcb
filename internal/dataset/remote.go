package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/citypairs/flight-explorer/internal/flights"
)

const (
	downloadRetries         = 3
	downloadInitialInterval = 500 * time.Millisecond
	downloadMaxInterval     = 5 * time.Second
)

var (
	errRateLimited = errors.New("dataset host rate limited the request")
	errServerError = errors.New("dataset host returned a server error")
)

// HTTPSource downloads the dataset export over HTTP. Transient failures
// (429, 5xx) are retried with capped exponential backoff behind a circuit
// breaker so scheduled refreshes cannot pile up against a failing mirror.
type HTTPSource struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPSource builds a Source downloading from url.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "dataset-download",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// Name returns the download URL.
func (s *HTTPSource) Name() string { return s.url }

// Load downloads and parses the export.
func (s *HTTPSource) Load(ctx context.Context) ([]flights.Record, flights.LoadStats, error) {
	body, err := s.download(ctx)
	if err != nil {
		return nil, flights.LoadStats{}, err
	}
	defer body.Close()
	return Load(body)
}

func (s *HTTPSource) download(ctx context.Context) (io.ReadCloser, error) {
	var lastErr error
	for attempt := 0; attempt <= downloadRetries; attempt++ {
		if attempt > 0 {
			backoff := downloadInitialInterval << (attempt - 1)
			if backoff > downloadMaxInterval {
				backoff = downloadMaxInterval
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		res, err := s.breaker.Execute(func() (interface{}, error) {
			return s.get(ctx)
		})
		if err == nil {
			return res.(io.ReadCloser), nil
		}
		lastErr = err

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("dataset download suspended: %w", err)
		}
		if !errors.Is(err, errRateLimited) && !errors.Is(err, errServerError) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("dataset download failed after %d attempts: %w", downloadRetries+1, lastErr)
}

func (s *HTTPSource) get(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request dataset: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, errRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", errServerError, resp.StatusCode)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d downloading dataset", resp.StatusCode)
	}
}
