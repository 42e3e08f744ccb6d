package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/pipeline"
)

const (
	headerRenderID = "X-Render-ID"
	headerCache    = "X-Cache"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatPDF:      "application/pdf",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatNodelink: "image/svg+xml",
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTree renders the preloaded tree. Layout is mode independent, so
// only rendering runs per request.
func (s *Server) handleTree(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, textHash, err := s.current()
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		opts, err := s.requestOptions(r, format)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		renderID := "tree-" + uuid.NewString()
		artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, textHash, renderID, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeArtifact(w, format, artifacts[format], renderID, hit)
	}
}

// handleRender renders the Newick text posted in the body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts, err := s.requestOptions(r, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, errors.MaxTreeBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	opts.Text = string(body)

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, format, result.Artifacts[format], result.RenderID, result.CacheInfo.RenderHit)
}

// requestOptions applies the query parameters of r to the server defaults.
func (s *Server) requestOptions(r *http.Request, format string) (pipeline.Options, error) {
	opts := s.defaults
	opts.Source = ""
	opts.Formats = []string{format}

	q := r.URL.Query()
	if mode := q.Get("mode"); mode != "" {
		opts.Mode = mode
	}
	if v := q.Get("legend"); v != "" {
		legend, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid legend: %q", v)
		}
		opts.Legend = legend
	}
	if err := opts.ValidateForRender(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeArtifact(w http.ResponseWriter, format string, data []byte, renderID string, cached bool) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(headerRenderID, renderID)
	if cached {
		w.Header().Set(headerCache, "HIT")
	} else {
		w.Header().Set(headerCache, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
