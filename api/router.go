package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/filedrop/pkg/httpserver"
	"github.com/dmitrymomot/filedrop/storage"
	"github.com/dmitrymomot/filedrop/upload"
)

// RouterOptions wires the HTTP surface's collaborators.
type RouterOptions struct {
	Pipeline *upload.Pipeline
	Storage  storage.Storage
	MaxSize  int64
	Logger   *slog.Logger
	Registry *prometheus.Registry // optional; metrics are skipped when nil
}

// Router assembles the service's HTTP surface:
//
//	POST /upload   multipart upload, field "file"
//	GET  /healthz  readiness probe with degraded-mode advisories
//	GET  /metrics  prometheus metrics (when a registry is provided)
func Router(opts RouterOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var metrics *Metrics
	if opts.Registry != nil {
		metrics = NewMetrics(opts.Registry)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/upload", UploadHandler(opts.Pipeline, opts.MaxSize, log, metrics))

	r.Get("/healthz", httpserver.HealthCheckHandler(
		log,
		opts.Pipeline.Capabilities().Advisories(),
		func(req *http.Request) error {
			return opts.Storage.Healthcheck(req.Context())
		},
	))

	if opts.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
