package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/kernel-memory-client/internal/config"
	"github.com/samvad-hq/kernel-memory-client/pkg/api/indexes"
	"github.com/samvad-hq/kernel-memory-client/pkg/kmclient"
	"github.com/samvad-hq/kernel-memory-client/pkg/models"
	"github.com/samvad-hq/kernel-memory-client/pkg/types"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:        baseURL,
		APIKey:         "k1",
		AuthHeaderName: "Authorization",
		AuthPrefix:     "Bearer",
		Timeout:        2 * time.Second,
		VerifySSL:      true,
		Headers:        map[string]string{"x-team": "search"},
	}
}

func TestIndexDeleterDeletesNamedIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer k1" {
			t.Fatalf("missing auth header")
		}
		if r.Header.Get("X-Team") != "search" {
			t.Fatalf("missing configured header")
		}
		if got := r.URL.Query().Get("index"); got != "docs1" {
			t.Fatalf("index = %q", got)
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"index":"docs1"}`))
	}))
	defer srv.Close()

	d, err := NewIndexDeleter(testConfig(srv.URL), nil, nil)
	if err != nil {
		t.Fatalf("NewIndexDeleter: %v", err)
	}
	resp, err := d.Delete(context.Background(), types.Set("docs1"))
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !resp.Parsed.IsAccepted() {
		t.Fatalf("expected accepted result, got %#v", resp.Parsed)
	}
}

func TestIndexDeleterHonorsRaisePolicy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RaiseOnUnexpectedStatus = true
	d, err := NewIndexDeleter(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewIndexDeleter: %v", err)
	}
	if !d.Client().RaiseOnUnexpectedStatus() {
		t.Fatalf("raise policy not applied")
	}
	resp, err := d.Delete(context.Background(), types.Unset[string]())
	if _, ok := err.(*kmclient.UnexpectedStatusError); !ok {
		t.Fatalf("expected UnexpectedStatusError, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("envelope not preserved: %#v", resp)
	}
}

func TestNewIndexDeleterRejectsBadConfig(t *testing.T) {
	if _, err := NewIndexDeleter(nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := NewIndexDeleter(testConfig("not-a-url"), nil, nil); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}

func TestRenderJSONAndYAML(t *testing.T) {
	accepted, err := models.ParseDeleteAccepted([]byte(`{"index":"docs1","message":"queued"}`))
	if err != nil {
		t.Fatalf("ParseDeleteAccepted: %v", err)
	}
	resp := &types.Response[indexes.DeleteIndexByNameResult]{
		StatusCode: http.StatusAccepted,
		Content:    []byte(`{"index":"docs1","message":"queued"}`),
		Parsed:     &indexes.DeleteIndexByNameResult{Accepted: accepted},
	}

	var jsonOut bytes.Buffer
	if err := Render(&jsonOut, FormatJSON, resp); err != nil {
		t.Fatalf("Render json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(jsonOut.Bytes(), &decoded); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if decoded["result"] != "accepted" || decoded["status"] != float64(202) {
		t.Fatalf("json summary = %#v", decoded)
	}

	var yamlOut bytes.Buffer
	if err := Render(&yamlOut, FormatYAML, resp); err != nil {
		t.Fatalf("Render yaml: %v", err)
	}
	var fromYAML map[string]any
	if err := yaml.Unmarshal(yamlOut.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml output invalid: %v", err)
	}
	body, ok := fromYAML["body"].(map[string]any)
	if !ok || body["index"] != "docs1" {
		t.Fatalf("yaml body = %#v", fromYAML["body"])
	}
}

func TestRenderAbsentShowsRawContent(t *testing.T) {
	resp := &types.Response[indexes.DeleteIndexByNameResult]{StatusCode: http.StatusBadGateway, Content: []byte("upstream down")}
	var out bytes.Buffer
	if err := Render(&out, "yaml", resp); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out.String(), "result: absent") || !strings.Contains(out.String(), "upstream down") {
		t.Fatalf("unexpected output: %s", out.String())
	}
	if err := Render(&out, "xml", resp); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
