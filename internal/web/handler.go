// Package web serves challenge reports over HTTP.
package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/huangsam/commitstreak/core"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
)

// ProviderFactory builds the commit count provider for a request-scoped config.
type ProviderFactory func(cfg *contract.Config) (contract.CommitCountProvider, error)

// Handler is the HTTP handler for the streak service.
// The base config is swapped atomically; every request works on its own clone.
type Handler struct {
	base    atomic.Pointer[contract.Config]
	factory ProviderFactory
	now     func() time.Time
	page    *template.Template
	mux     *http.ServeMux
}

// NewHandler creates a Handler and registers all routes.
func NewHandler(base *contract.Config, factory ProviderFactory, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	h := &Handler{
		factory: factory,
		now:     now,
		page:    pageTemplate,
		mux:     http.NewServeMux(),
	}
	h.base.Store(base.Clone())

	h.mux.HandleFunc("/", h.index)
	h.mux.HandleFunc("/api/v1/stats", h.stats)
	h.mux.HandleFunc("/metrics", h.metrics)
	h.mux.HandleFunc("/healthz", h.healthz)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// SetConfig replaces the base config for subsequent requests.
func (h *Handler) SetConfig(cfg *contract.Config) {
	h.base.Store(cfg.Clone())
}

// Config returns a copy of the current base config.
func (h *Handler) Config() *contract.Config {
	return h.base.Load().Clone()
}

// index returns GET / as HTML, or the JSON report when the json parameter is present.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		jsonErr(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, status, err := h.report(r)
	if err != nil {
		jsonErr(w, status, err.Error())
		return
	}
	if r.URL.Query().Has("json") {
		jsonResp(w, http.StatusOK, report)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, newPageData(report)); err != nil {
		slog.Error("render page", "err", err)
	}
}

// stats returns GET /api/v1/stats.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	report, status, err := h.report(r)
	if err != nil {
		jsonErr(w, status, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, report)
}

// metrics returns GET /metrics in the Prometheus text format.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	report, status, err := h.report(r)
	if err != nil {
		jsonErr(w, status, err.Error())
		return
	}
	w.Header().Set("Content-Type", metricsContentType)
	if err := writeMetrics(w, report); err != nil {
		slog.Error("write metrics", "err", err)
	}
}

// healthz returns GET /healthz.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, map[string]string{"status": "ok"})
}

// report evaluates the challenge for one request. On failure it also returns
// the HTTP status the error maps to.
func (h *Handler) report(r *http.Request) (*schema.ChallengeReport, int, error) {
	now := h.now()
	cfg := h.base.Load().Clone()

	overrides, err := parseOverrides(r.URL.Query(), cfg.Debug)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if err := contract.ApplyChallengeOverrides(cfg, overrides, now); err != nil {
		return nil, http.StatusBadRequest, err
	}

	provider, err := h.factory(cfg)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	report, err := core.BuildReport(r.Context(), cfg, provider, now)
	if err != nil {
		return nil, statusFor(err), err
	}
	return report, http.StatusOK, nil
}

// parseOverrides reads the challenge query parameters.
// Demo parameters are ignored unless debug is enabled.
func parseOverrides(q url.Values, debug bool) (contract.ChallengeOverrides, error) {
	o := contract.ChallengeOverrides{
		Start: q.Get("start"),
		End:   q.Get("end"),
	}
	if q.Has("required") {
		n, err := strconv.Atoi(q.Get("required"))
		if err != nil {
			return o, errors.New("required must be an integer")
		}
		o.RequiredCommits = &n
	}
	if debug {
		o.Demo = q.Get("demo")
		o.DemoResult = q.Get("demo_result")
	}
	return o, nil
}

// statusFor maps a report error to an HTTP status.
func statusFor(err error) int {
	switch {
	case core.IsChallengeError(err):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, map[string]string{"error": msg})
}
