package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mermend/mermend/pkg/cache"
	"github.com/mermend/mermend/pkg/history"
	"github.com/mermend/mermend/pkg/pipeline"
)

// stubEngine renders fixed markup for any input.
type stubEngine struct{}

func (stubEngine) Render(ctx context.Context, text string) ([]byte, error) {
	return []byte("<svg>stub</svg>"), nil
}

func newTestServer(t *testing.T) *previewServer {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return &previewServer{
		runner: pipeline.NewRunner(cache.NewNullCache(), nil, logger, stubEngine{}),
		store:  history.NewMemoryStore(10),
		latest: &pipeline.Latest{},
		logger: logger,
		limit:  10,
	}
}

func postRender(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/render", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	return resp
}

func TestServeRender(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	resp := postRender(t, ts, `{"text":"graph TD\n    A --> B","title":"Flow"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var rec history.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.ID == "" {
		t.Error("record id is empty")
	}
	if rec.Tier != string(pipeline.TierPrimary) {
		t.Errorf("tier = %q, want primary", rec.Tier)
	}
	if rec.Title != "Flow" {
		t.Errorf("title = %q, want Flow", rec.Title)
	}
	if len(rec.Markup) == 0 {
		t.Error("markup is empty")
	}
}

func TestServeRenderInvalidBody(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	resp := postRender(t, ts, `{not json`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServeLatest(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	// Nothing rendered yet.
	resp, err := http.Get(ts.URL + "/latest")
	if err != nil {
		t.Fatalf("GET /latest: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status before render = %d, want 404", resp.StatusCode)
	}

	postRender(t, ts, `{"text":"graph TD\n    A --> B"}`).Body.Close()

	resp, err = http.Get(ts.URL + "/latest")
	if err != nil {
		t.Fatalf("GET /latest: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status after render = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("<svg")) {
		t.Errorf("body %q does not look like svg", body)
	}
}

func TestServeHistory(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	postRender(t, ts, `{"text":"graph TD\n    A --> B"}`).Body.Close()
	postRender(t, ts, `{"text":"graph TD\n    C --> D"}`).Body.Close()

	resp, err := http.Get(ts.URL + "/history")
	if err != nil {
		t.Fatalf("GET /history: %v", err)
	}
	defer resp.Body.Close()
	var records []history.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	// Individual lookup round-trips.
	resp, err = http.Get(ts.URL + "/history/" + records[0].ID)
	if err != nil {
		t.Fatalf("GET /history/{id}: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("record status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/history/does-not-exist")
	if err != nil {
		t.Fatalf("GET /history/{id}: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing record status = %d, want 404", resp.StatusCode)
	}
}

func TestServeHealthz(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
