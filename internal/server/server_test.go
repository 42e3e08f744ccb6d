package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treeoflife/pkg/cache"
	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/observability/prom"
	"github.com/matzehuels/treeoflife/pkg/pipeline"
)

const sample = "((Homo_sapiens:1,Pan:2)Eukaryota:1,E_coli:3)Root;"

func newTestServer(t *testing.T, c cache.Cache, metrics *prom.Metrics, load bool) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, logger)
	s := New(Config{Logger: logger, Metrics: metrics}, runner, pipeline.Options{})

	if load {
		path := filepath.Join(t.TempDir(), "life.txt")
		require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
		require.NoError(t, s.Load(context.Background(), path))
	}
	return s
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, nil, false)

	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTreeSVG(t *testing.T) {
	s := newTestServer(t, nil, nil, true)

	rec := do(t, s.Handler(), http.MethodGet, "/tree.svg", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	renderID := rec.Header().Get(headerRenderID)
	assert.True(t, strings.HasPrefix(renderID, "tree-"), "render id %q", renderID)
	assert.Equal(t, "MISS", rec.Header().Get(headerCache))

	body := rec.Body.String()
	assert.Contains(t, body, `id="`+renderID+`"`)
	assert.Contains(t, body, `data-mode="constant"`)
	assert.Equal(t, 3, strings.Count(body, `class="label"`))
}

func TestTreeSVGModes(t *testing.T) {
	s := newTestServer(t, nil, nil, true)

	tests := []struct {
		query    string
		status   int
		wantBody string
	}{
		{"", http.StatusOK, `data-mode="constant"`},
		{"?mode=constant", http.StatusOK, `data-mode="constant"`},
		{"?mode=variable", http.StatusOK, `data-mode="variable"`},
		{"?mode=variable&legend=true", http.StatusOK, `class="legend"`},
		{"?mode=spiral", http.StatusBadRequest, string(errors.ErrCodeInvalidMode)},
		{"?legend=maybe", http.StatusBadRequest, string(errors.ErrCodeInvalidInput)},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, s.Handler(), http.MethodGet, "/tree.svg"+tt.query, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestTreeJSON(t *testing.T) {
	s := newTestServer(t, nil, nil, true)

	rec := do(t, s.Handler(), http.MethodGet, "/tree.json?mode=variable", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc struct {
		RenderID string            `json:"render_id"`
		Mode     string            `json:"mode"`
		Nodes    []json.RawMessage `json:"nodes"`
		Edges    []json.RawMessage `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "variable", doc.Mode)
	assert.Equal(t, rec.Header().Get(headerRenderID), doc.RenderID)
	assert.Len(t, doc.Nodes, 5)
	assert.Len(t, doc.Edges, 4)
}

func TestTreeNotLoaded(t *testing.T) {
	s := newTestServer(t, nil, nil, false)

	rec := do(t, s.Handler(), http.MethodGet, "/tree.svg", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestTreeCached(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	s := newTestServer(t, c, nil, true)

	first := do(t, s.Handler(), http.MethodGet, "/tree.svg", "")
	second := do(t, s.Handler(), http.MethodGet, "/tree.svg", "")
	variable := do(t, s.Handler(), http.MethodGet, "/tree.svg?mode=variable", "")

	assert.Equal(t, "MISS", first.Header().Get(headerCache))
	assert.Equal(t, "HIT", second.Header().Get(headerCache))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "MISS", variable.Header().Get(headerCache))
}

func TestRender(t *testing.T) {
	s := newTestServer(t, nil, nil, false)

	tests := []struct {
		name        string
		query       string
		body        string
		status      int
		contentType string
		code        errors.Code
	}{
		{"svg default", "", sample, http.StatusOK, "image/svg+xml", ""},
		{"json", "?format=json&mode=variable", sample, http.StatusOK, "application/json", ""},
		{"dot", "?format=dot", sample, http.StatusOK, "text/vnd.graphviz; charset=utf-8", ""},
		{"parse error", "", "((A,B);", http.StatusUnprocessableEntity, "application/json", errors.ErrCodeParse},
		{"empty body", "", "", http.StatusBadRequest, "application/json", errors.ErrCodeInvalidInput},
		{"bad format", "?format=gif", sample, http.StatusBadRequest, "application/json", errors.ErrCodeInvalidFormat},
		{"bad mode", "?mode=fan", sample, http.StatusBadRequest, "application/json", errors.ErrCodeInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s.Handler(), http.MethodPost, "/render"+tt.query, tt.body)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			if tt.code != "" {
				resp := decodeError(t, rec)
				assert.Equal(t, tt.code, resp.Code)
				assert.NotEmpty(t, resp.Message)
			} else {
				assert.NotEmpty(t, rec.Header().Get(headerRenderID))
			}
		})
	}
}

func TestRenderParseErrorMessage(t *testing.T) {
	s := newTestServer(t, nil, nil, false)

	rec := do(t, s.Handler(), http.MethodPost, "/render", "(A,B));")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "offset")
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, nil, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/tree.svg", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	m := prom.New(prometheus.NewRegistry())
	s := newTestServer(t, nil, m, true)

	do(t, s.Handler(), http.MethodGet, "/tree.svg", "")
	rec := do(t, s.Handler(), http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `treeoflife_http_requests_total{method="GET",route="/tree.svg",status="200"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	s := newTestServer(t, nil, nil, false)

	rec := do(t, s.Handler(), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
