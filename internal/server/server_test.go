package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapescatter/pkg/buildinfo"
	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/observability"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
	"github.com/matzehuels/shapescatter/pkg/render/sink"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := New(runner, pipeline.DefaultOptions(), cfg, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ok" || got.Build.Version != buildinfo.Version {
		t.Errorf("health = %+v", got)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("missing request id header")
	}
}

func TestRenderQuery(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, body := get(t, ts, "/render?count=4&kinds=circle&show_grid=false&seed=42&format=json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if seed := resp.Header.Get(HeaderSeed); seed != "42" {
		t.Errorf("X-Seed = %q, want 42", seed)
	}

	d, err := sink.ReadJSON(body)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if d.Seed != 42 {
		t.Errorf("Seed = %d", d.Seed)
	}
	if n := d.Recorder.Count(draw.OpOval); n != 4 {
		t.Errorf("ovals = %d, want 4", n)
	}
	if n := d.Recorder.Count(draw.OpLine); n != 0 {
		t.Errorf("lines = %d, want 0 with grid off", n)
	}
}

func TestRenderDeterministic(t *testing.T) {
	ts := newTestServer(t, Config{})

	_, first := get(t, ts, "/render?seed=7&format=svg")
	resp, second := get(t, ts, "/render?seed=7&format=svg")
	if resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if !bytes.Equal(first, second) {
		t.Error("same seed produced different drawings")
	}
	if !bytes.Contains(first, []byte("<svg")) {
		t.Errorf("not an svg document: %.60s", first)
	}
}

func TestRenderDefaultFormat(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, body := get(t, ts, "/render?count=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
	if resp.Header.Get(HeaderSeed) == "0" || resp.Header.Get(HeaderSeed) == "" {
		t.Errorf("X-Seed = %q, want a resolved seed", resp.Header.Get(HeaderSeed))
	}
}

func TestRenderJSONBody(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, body := post(t, ts, "/render", `{"count": 3, "kinds": ["rectangle"], "show_grid": false, "seed": 9, "format": "json"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	d, err := sink.ReadJSON(body)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if n := d.Recorder.Count(draw.OpRect); n != 3 {
		t.Errorf("rects = %d, want 3", n)
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t, Config{MaxCount: 100, MaxPixels: 1000 * 1000})

	tests := []struct {
		name   string
		method string
		target string
		body   string
		code   errors.Code
	}{
		{"density out of range", "GET", "/render?density=1.5", "", errors.ErrCodeOutOfRangeDensity},
		{"inverted viewport", "GET", "/render?x_min=10&x_max=-10", "", errors.ErrCodeInvalidViewport},
		{"count not a number", "GET", "/render?count=abc", "", errors.ErrCodeInvalidCount},
		{"negative count", "GET", "/render?count=-1", "", errors.ErrCodeInvalidCount},
		{"count over limit", "GET", "/render?count=101", "", errors.ErrCodeInvalidCount},
		{"unknown kind", "GET", "/render?kinds=hexagon", "", errors.ErrCodeInvalidFigureType},
		{"unknown format", "GET", "/render?format=gif", "", errors.ErrCodeInvalidFormat},
		{"bad seed", "GET", "/render?seed=-3", "", errors.ErrCodeInvalidInput},
		{"bad bool", "GET", "/render?show_grid=maybe", "", errors.ErrCodeInvalidInput},
		{"empty kinds", "POST", "/render", `{"kinds": []}`, errors.ErrCodeEmptyTypeSelection},
		{"unknown field", "POST", "/render", `{"colour": "red"}`, errors.ErrCodeInvalidInput},
		{"malformed body", "POST", "/render", `{`, errors.ErrCodeInvalidInput},
		{"huge surface", "GET", "/render?count=0&show_grid=false&width=1e12&height=1e12&format=png", "", errors.ErrCodeInvalidSurface},
		{"surface over pixel limit", "GET", "/render?width=2000&height=1000", "", errors.ErrCodeInvalidSurface},
		{"surface over pixel limit in body", "POST", "/render", `{"width": 1001, "height": 1000}`, errors.ErrCodeInvalidSurface},
		{"negative width", "GET", "/render?width=-5", "", errors.ErrCodeInvalidSurface},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *http.Response
			var body []byte
			if tt.method == "POST" {
				resp, body = post(t, ts, tt.target, tt.body)
			} else {
				resp, body = get(t, ts, tt.target)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var got errorResponse
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode error body %q: %v", body, err)
			}
			if got.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", got.Code, tt.code, got.Error)
			}
		})
	}
}

func TestWriteErrorInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.Wrap(errors.ErrCodeInternal, io.ErrUnexpectedEOF, "encode png"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var got errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Error != "internal error" || got.Code != errors.ErrCodeInternal {
		t.Errorf("response = %+v", got)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t, Config{})

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestDownloadDisposition(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, _ := get(t, ts, "/render?count=1&format=svg&download=true")
	want := `attachment; filename="random_drawing.svg"`
	if got := resp.Header.Get("Content-Disposition"); got != want {
		t.Errorf("Content-Disposition = %q, want %q", got, want)
	}
}

func TestRoutingErrors(t *testing.T) {
	ts := newTestServer(t, Config{})

	if resp, _ := get(t, ts, "/nope"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", resp.StatusCode)
	}
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/render", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("PUT /render status = %d, want 405", resp.StatusCode)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	requests []string
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path, requestID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	logger := log.New(io.Discard)
	h := New(pipeline.NewRunner(nil, nil, logger), pipeline.DefaultOptions(), Config{}, logger).Handler()
	for _, target := range []string{"/healthz", "/render?density=2"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.requests) != 2 || hooks.requests[0] != "GET /healthz" {
		t.Errorf("requests = %v", hooks.requests)
	}
	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("statuses = %v", hooks.statuses)
	}
}

func TestRunShutsDown(t *testing.T) {
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(nil, nil, logger), pipeline.DefaultOptions(), Config{Addr: "127.0.0.1:0"}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
