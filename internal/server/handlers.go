package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wikigraph/pkg/buildinfo"
	"github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/pipeline"
	"github.com/matzehuels/wikigraph/pkg/render"
)

// defaultFormat is served when the request names none.
const defaultFormat = render.FormatSVG

// errorResponse is the JSON body of failed requests.
type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleGraph handles GET /graph/{category}.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts, err := graphOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	opts.Logger = s.cfg.Logger.With("request_id", RequestID(r.Context()))
	result, err := s.cfg.Runner.Execute(ctx, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", render.ContentTypes[format])
	w.Header().Set("X-Graph-Nodes", strconv.Itoa(result.Stats.NodeCount))
	w.Header().Set("X-Graph-Edges", strconv.Itoa(result.Stats.EdgeCount))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// graphOptions reads pipeline options from the route and query string.
func graphOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()

	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidCategory, err, "bad category in path")
	}

	format := q.Get("format")
	if format == "" {
		format = defaultFormat
	}
	if err := render.ValidateFormat(format); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unsupported output")
	}

	opts := pipeline.Options{
		Category: category,
		Lang:     q.Get("lang"),
		Depth:    pipeline.DefaultDepth,
		Style:    q.Get("style"),
		Formats:  []string{format},
	}
	if v := q.Get("depth"); v != "" {
		if opts.Depth, err = strconv.Atoi(v); err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "depth must be an integer, got %q", v)
		}
	}
	if v := q.Get("downsize"); v != "" {
		if opts.Downsize, err = strconv.ParseFloat(v, 64); err != nil || opts.Downsize <= 0 {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "downsize must be a positive number, got %q", v)
		}
	}
	return opts, nil
}

// fail writes err as a JSON error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	switch {
	case code != "":
	case status == http.StatusGatewayTimeout:
		code = "TIMEOUT"
	default:
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("graph request failed", "err", err, "request_id", RequestID(r.Context()))
	}
	writeError(w, r, status, code, errors.UserMessage(err))
}

// statusFor maps pipeline errors to HTTP statuses: invalid input 400,
// missing categories 404, MediaWiki failures 502, timeouts 504, rest 500.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCategory, errors.ErrCodeInvalidLanguage,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeAPI:
		return http.StatusBadGateway
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: code, Message: message},
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
