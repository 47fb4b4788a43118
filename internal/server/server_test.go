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

	"github.com/chartkit/chartkit/pkg/cache"
	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/observability"
	"github.com/chartkit/chartkit/pkg/store"
)

func testDefinition() *chart.Definition {
	return &chart.Definition{
		ID:     "revenue",
		Title:  "Quarterly Revenue",
		Bounds: chart.Bounds{Left: 40, Top: 20, Width: 700, Height: 400},
		Axes: map[string]chart.AxisSettings{
			"y": {Scale: chart.ScaleSettings{Min: 0, Max: 100}, Label: "Revenue"},
		},
		Series: []chart.Series{
			{Name: "q3", AxisID: "y", Points: []chart.Point{{X: 0, Y: 10}, {X: 1, Y: 40}}},
		},
	}
}

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	ts := httptest.NewServer(New(st, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode error envelope %q: %v", body, err)
	}
	return envelope.Error.Code
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("body = %s", body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestPutAndGetChart(t *testing.T) {
	ts, _ := newTestServer(t)

	payload, _ := json.Marshal(testDefinition())
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/charts/revenue", bytes.NewReader(payload))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}

	resp, body := get(t, ts.URL+"/v1/charts/revenue")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", resp.StatusCode)
	}
	var def chart.Definition
	if err := json.Unmarshal(body, &def); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.ID != "revenue" || def.Bounds.Width != 700 {
		t.Errorf("definition = %+v", def)
	}
}

func TestPutInvalidDefinition(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/charts/bad", strings.NewReader(`{"bounds":{"width":0}}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
}

func TestChartSVG(t *testing.T) {
	ts, st := newTestServer(t)
	if err := st.Put(context.Background(), testDefinition()); err != nil {
		t.Fatal(err)
	}

	resp, body := get(t, ts.URL+"/v1/charts/revenue.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	doc := string(body)
	if !strings.Contains(doc, "<svg") || !strings.Contains(doc, "translate(40, 0)") {
		t.Errorf("unexpected document:\n%s", doc)
	}
}

func TestChartSVGNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/v1/charts/nope.svg")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "CHART_NOT_FOUND" {
		t.Errorf("error code = %q", code)
	}
}

func TestAxisSVGWithProps(t *testing.T) {
	ts, st := newTestServer(t)
	if err := st.Put(context.Background(), testDefinition()); err != nil {
		t.Fatal(err)
	}

	// Default position is left.
	resp, body := get(t, ts.URL+"/v1/charts/revenue/axes/y.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "translate(40, 0)") {
		t.Errorf("left axis missing:\n%s", body)
	}

	// Query params override stored settings.
	_, body = get(t, ts.URL+"/v1/charts/revenue/axes/y.svg?position=right&disable_ticks=true")
	if !strings.Contains(string(body), "translate(740, 0)") {
		t.Errorf("right axis missing:\n%s", body)
	}
	// Forced tick size 4 when ticks are disabled.
	if !strings.Contains(string(body), `x="6"`) {
		t.Errorf("labels should sit at the forced tick size:\n%s", body)
	}
}

func TestAxisSVGUnknownAxis(t *testing.T) {
	ts, st := newTestServer(t)
	if err := st.Put(context.Background(), testDefinition()); err != nil {
		t.Fatal(err)
	}

	resp, body := get(t, ts.URL+"/v1/charts/revenue/axes/z.svg")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "AXIS_NOT_FOUND" {
		t.Errorf("error code = %q", code)
	}
}

func TestInvalidQueryParam(t *testing.T) {
	ts, st := newTestServer(t)
	if err := st.Put(context.Background(), testDefinition()); err != nil {
		t.Fatal(err)
	}

	for _, q := range []string{"position=top", "tick_size=huge", "disable_line=maybe", "tick_number=1.5"} {
		resp, body := get(t, ts.URL+"/v1/charts/revenue.svg?"+q)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, body = %s", q, resp.StatusCode, body)
		}
	}
}

func TestDeleteChart(t *testing.T) {
	ts, st := newTestServer(t)
	if err := st.Put(context.Background(), testDefinition()); err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/charts/revenue", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	resp, _ = get(t, ts.URL+"/v1/charts/revenue.svg")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("render after delete: status = %d", resp.StatusCode)
	}
}

func TestListCharts(t *testing.T) {
	ts, st := newTestServer(t)
	ctx := context.Background()
	for _, id := range []string{"b", "a"} {
		def := testDefinition()
		def.ID = id
		if err := st.Put(ctx, def); err != nil {
			t.Fatal(err)
		}
	}

	resp, body := get(t, ts.URL+"/v1/charts/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Charts []string `json:"charts"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Charts) != 2 || out.Charts[0] != "a" || out.Charts[1] != "b" {
		t.Errorf("charts = %v", out.Charts)
	}
}

// countingCacheHooks counts hit and miss events per key type.
type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu           sync.Mutex
	hits, misses map[string]int
}

func (h *countingCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hits == nil {
		h.hits = make(map[string]int)
	}
	h.hits[keyType]++
}

func (h *countingCacheHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.misses == nil {
		h.misses = make(map[string]int)
	}
	h.misses[keyType]++
}

func (h *countingCacheHooks) hit(keyType string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[keyType]
}

func (h *countingCacheHooks) miss(keyType string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.misses[keyType]
}

func put(t *testing.T, url string, def *chart.Definition) {
	t.Helper()
	payload, err := json.Marshal(def)
	if err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(payload))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT %s: %v", url, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT %s: status = %d", url, resp.StatusCode)
	}
}

func TestRenderCaching(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ts, _ := newTestServer(t, WithCache(fc), WithArtifactTTL(time.Hour))
	put(t, ts.URL+"/v1/charts/revenue", testDefinition())

	_, first := get(t, ts.URL+"/v1/charts/revenue.svg")
	_, second := get(t, ts.URL+"/v1/charts/revenue.svg")

	if !bytes.Equal(first, second) {
		t.Error("cached render differs from fresh render")
	}
	if hooks.miss("render") != 1 || hooks.hit("render") != 1 {
		t.Errorf("render cache events: misses=%d hits=%d, want 1 and 1",
			hooks.miss("render"), hooks.hit("render"))
	}
	// The second render reuses the cached definition.
	if hooks.miss("definition") != 1 || hooks.hit("definition") != 1 {
		t.Errorf("definition cache events: misses=%d hits=%d, want 1 and 1",
			hooks.miss("definition"), hooks.hit("definition"))
	}

	// Updating the chart invalidates the cached definition and changes the
	// definition hash, so the next render misses both caches.
	def := testDefinition()
	def.Title = "Updated"
	put(t, ts.URL+"/v1/charts/revenue", def)

	_, third := get(t, ts.URL+"/v1/charts/revenue.svg")
	if bytes.Equal(first, third) {
		t.Error("render should reflect the updated definition")
	}
	if hooks.miss("render") != 2 {
		t.Errorf("render misses = %d, want 2", hooks.miss("render"))
	}
	if hooks.miss("definition") != 2 {
		t.Errorf("definition misses = %d, want 2", hooks.miss("definition"))
	}
}

func TestDeleteInvalidatesDefinitionCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ts, _ := newTestServer(t, WithCache(fc))
	put(t, ts.URL+"/v1/charts/revenue", testDefinition())

	// Prime the definition cache.
	resp, _ := get(t, ts.URL+"/v1/charts/revenue.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/charts/revenue", nil)
	dresp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	dresp.Body.Close()

	// The cached definition must not resurrect the deleted chart.
	resp, body := get(t, ts.URL+"/v1/charts/revenue.svg")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("render after delete: status = %d, body = %s", resp.StatusCode, body)
	}
	if code := errorCode(t, body); code != "CHART_NOT_FOUND" {
		t.Errorf("error code = %q", code)
	}
}

func TestScopedKeyerCaching(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ts, _ := newTestServer(t,
		WithCache(fc),
		WithKeyer(cache.NewScopedKeyer(nil, "tenant-a:")),
	)
	put(t, ts.URL+"/v1/charts/revenue", testDefinition())

	_, first := get(t, ts.URL+"/v1/charts/revenue.svg")
	_, second := get(t, ts.URL+"/v1/charts/revenue.svg")
	if !bytes.Equal(first, second) {
		t.Error("cached render differs from fresh render")
	}
	if hooks.hit("render") != 1 {
		t.Errorf("render hits = %d, want 1", hooks.hit("render"))
	}
}
