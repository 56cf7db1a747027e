package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/graphwalk/pkg/buildinfo"
	"github.com/matzehuels/graphwalk/pkg/errors"
)

const (
	// MaxBodySize bounds a fetched document.
	MaxBodySize = 8 << 20

	fetchAttempts = 3
)

// retryDelay is the first backoff delay. Tests shorten it.
var retryDelay = time.Second

// IsURL reports whether loc names an http or https resource.
func IsURL(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}

// Fetch GETs url and returns the body. A nil client uses
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var body []byte
	err := Retry(ctx, fetchAttempts, retryDelay, func() error {
		var err error
		body, err = fetchOnce(ctx, client, url)
		return err
	})
	if err != nil {
		var re *RetryableError
		if stderrors.As(err, &re) {
			err = re.Err
		}
		return nil, err
	}
	return body, nil
}

func fetchOnce(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad url %q", url)
	}
	req.Header.Set("User-Agent", "graphwalk/"+buildinfo.Get().Version)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s: 404 not found", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, Retryable(errors.New(errors.ErrCodeNetwork, "%s: %s", url, resp.Status))
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "%s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url))
	}
	if len(data) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: body exceeds %d bytes", url, MaxBodySize)
	}
	return data, nil
}
