package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/kernel-memory-client/pkg/api/indexes"
	"github.com/samvad-hq/kernel-memory-client/pkg/types"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Summary is the printable form of a delete-index response.
func Summary(resp *types.Response[indexes.DeleteIndexByNameResult]) map[string]any {
	out := map[string]any{"status": resp.StatusCode}
	switch {
	case resp.Parsed == nil:
		out["result"] = "absent"
		out["content"] = string(resp.Content)
	case resp.Parsed.Accepted != nil:
		out["result"] = "accepted"
		out["body"] = resp.Parsed.Accepted.ToMap()
	case resp.Parsed.Problem != nil:
		out["result"] = "problem"
		out["body"] = resp.Parsed.Problem.ToMap()
	}
	return out
}

// Render writes the response summary to w as JSON or YAML.
func Render(w io.Writer, format string, resp *types.Response[indexes.DeleteIndexByNameResult]) error {
	if resp == nil {
		return fmt.Errorf("nothing to render")
	}
	summary := Summary(resp)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q (expected json or yaml)", format)
	}
	return nil
}
