package types

import "net/http"

// Response is the envelope returned by the detailed calling styles.
// Parsed is nil when the status code is not one the endpoint documents.
type Response[T any] struct {
	StatusCode int
	Content    []byte
	Headers    http.Header
	Parsed     *T
}
