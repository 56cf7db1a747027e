// Package httputil fetches remote graph documents.
//
// # Fetching
//
// [Fetch] downloads a URL with a bounded body size and retries transient
// failures: network errors, 5xx responses and 429 rate limits.
//
//	data, err := httputil.Fetch(ctx, http.DefaultClient, "https://example.com/graph.json")
//
// Other 4xx responses fail immediately: 404 as FILE_NOT_FOUND, the rest as
// NETWORK_ERROR.
//
// # Retry
//
// [Retry] is the backoff loop behind [Fetch]. Only errors wrapped with
// [RetryableError] are retried; the delay doubles after each attempt.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//		return httputil.Retryable(doSomething())
//	})
package httputil
