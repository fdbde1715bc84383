// Package indexes binds the service's index endpoints.
package indexes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/samvad-hq/kernel-memory-client/pkg/httpclient"
	"github.com/samvad-hq/kernel-memory-client/pkg/kmclient"
	"github.com/samvad-hq/kernel-memory-client/pkg/models"
	"github.com/samvad-hq/kernel-memory-client/pkg/types"
)

const deleteIndexByNamePath = "/indexes"

// DeleteIndexByNameParams are the inputs of DeleteIndexByName.
type DeleteIndexByNameParams struct {
	// Index names the index to delete. When unset the service applies its default index.
	Index types.Optional[string]
}

// DeleteIndexByNameResult holds the decoded body of a documented response.
// Exactly one field is non-nil.
type DeleteIndexByNameResult struct {
	Accepted *models.DeleteAccepted // 202
	Problem  *models.ProblemDetails // 401, 403
}

// IsAccepted reports whether the delete was accepted by the service.
func (r *DeleteIndexByNameResult) IsAccepted() bool { return r != nil && r.Accepted != nil }

func buildDeleteIndexByNameRequest(params DeleteIndexByNameParams) *httpclient.Request {
	query := url.Values{}
	if index, ok := params.Index.Get(); ok {
		query.Set("index", index)
	}
	return &httpclient.Request{
		Method: http.MethodDelete,
		URL:    deleteIndexByNamePath,
		Query:  query,
	}
}

func parseDeleteIndexByNameResponse(c *kmclient.Client, resp httpclient.Response) (*DeleteIndexByNameResult, error) {
	status := resp.StatusCode()
	switch status {
	case http.StatusAccepted:
		accepted, err := models.ParseDeleteAccepted(resp.Body())
		if err != nil {
			return nil, fmt.Errorf("decode %d response: %w", status, err)
		}
		return &DeleteIndexByNameResult{Accepted: accepted}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		problem, err := models.ParseProblemDetails(resp.Body())
		if err != nil {
			return nil, fmt.Errorf("decode %d response: %w", status, err)
		}
		return &DeleteIndexByNameResult{Problem: problem}, nil
	}

	if c.RaiseOnUnexpectedStatus() {
		return nil, kmclient.NewUnexpectedStatusError(status, resp.Body())
	}
	return nil, nil
}

func buildDeleteIndexByNameResponse(c *kmclient.Client, resp httpclient.Response) (*types.Response[DeleteIndexByNameResult], error) {
	parsed, err := parseDeleteIndexByNameResponse(c, resp)
	return &types.Response[DeleteIndexByNameResult]{
		StatusCode: resp.StatusCode(),
		Content:    resp.Body(),
		Headers:    resp.Header(),
		Parsed:     parsed,
	}, err
}

// DeleteIndexByNameDetailed deletes a container of documents (an index) from the knowledge base
// and returns the full response envelope.
//
// 401 and 403 responses are not errors; they decode into Problem. Any other undocumented
// status yields a nil Parsed value, or an *kmclient.UnexpectedStatusError when the client
// raises on unexpected status; the envelope is returned in both cases. Transport errors are
// returned unmodified with a nil envelope.
func DeleteIndexByNameDetailed(ctx context.Context, c *kmclient.Client, params DeleteIndexByNameParams) (*types.Response[DeleteIndexByNameResult], error) {
	if c == nil {
		return nil, fmt.Errorf("client must not be nil")
	}
	log := c.Logger()

	req := buildDeleteIndexByNameRequest(params)
	log.DebugObj("delete index request", "km_request", map[string]any{
		"method": req.Method,
		"path":   req.URL,
		"query":  req.Query.Encode(),
	})

	resp, err := c.Do(ctx, req)
	if err != nil {
		log.ErrorObj("delete index transport failed", "km_error", map[string]any{
			"path":  req.URL,
			"error": err.Error(),
		})
		return nil, err
	}

	out, err := buildDeleteIndexByNameResponse(c, resp)
	switch {
	case err != nil:
		log.WarnObj("delete index response rejected", "km_response", map[string]any{
			"status": out.StatusCode,
			"error":  err.Error(),
		})
	case out.Parsed == nil:
		log.WarnObj("delete index returned undocumented status", "km_response", map[string]any{
			"status": out.StatusCode,
			"bytes":  len(out.Content),
		})
	default:
		log.DebugObj("delete index response", "km_response", map[string]any{
			"status":   out.StatusCode,
			"accepted": out.Parsed.IsAccepted(),
		})
	}
	return out, err
}

// DeleteIndexByName deletes an index and returns only the decoded result, which is nil
// for an undocumented status when the client does not raise on it.
func DeleteIndexByName(ctx context.Context, c *kmclient.Client, params DeleteIndexByNameParams) (*DeleteIndexByNameResult, error) {
	resp, err := DeleteIndexByNameDetailed(ctx, c, params)
	if resp == nil {
		return nil, err
	}
	return resp.Parsed, err
}

// DeleteIndexByNameDetailedAsync runs DeleteIndexByNameDetailed on its own goroutine.
func DeleteIndexByNameDetailedAsync(ctx context.Context, c *kmclient.Client, params DeleteIndexByNameParams) *types.Future[*types.Response[DeleteIndexByNameResult]] {
	return types.Go(func() (*types.Response[DeleteIndexByNameResult], error) {
		return DeleteIndexByNameDetailed(ctx, c, params)
	})
}

// DeleteIndexByNameAsync runs DeleteIndexByName on its own goroutine.
func DeleteIndexByNameAsync(ctx context.Context, c *kmclient.Client, params DeleteIndexByNameParams) *types.Future[*DeleteIndexByNameResult] {
	return types.Go(func() (*DeleteIndexByNameResult, error) {
		return DeleteIndexByName(ctx, c, params)
	})
}
