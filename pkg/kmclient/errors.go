package kmclient

import (
	"fmt"
	"strings"
)

// UnexpectedStatusError is returned when the service answers with a status code
// the endpoint does not document and the client is configured to raise on it.
type UnexpectedStatusError struct {
	StatusCode int
	Content    []byte
}

// NewUnexpectedStatusError builds an UnexpectedStatusError for the given response.
func NewUnexpectedStatusError(statusCode int, content []byte) *UnexpectedStatusError {
	return &UnexpectedStatusError{StatusCode: statusCode, Content: content}
}

func (e *UnexpectedStatusError) Error() string {
	snippet := readBodySnippet(e.Content)
	if snippet == "" {
		return fmt.Sprintf("unexpected status code %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, snippet)
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
