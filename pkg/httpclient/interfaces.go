package httpclient

import (
	"context"
	"net/http"
	"net/url"
)

// Request describes a single outgoing call.
type Request struct {
	Method  string
	URL     string
	Query   url.Values
	Headers map[string]string
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Implementations must be safe for concurrent use.
type Client interface {
	Do(ctx context.Context, req *Request) (Response, error)
}

// Logger is the printf-style surface resty reports through.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Errorf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}
