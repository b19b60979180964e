package uploadhttp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sir_venger/upload_lite/internal/config"
	"github.com/sir_venger/upload_lite/internal/metrics"
	"github.com/sir_venger/upload_lite/internal/repo/uploads"
	"github.com/sir_venger/upload_lite/internal/usecase/uploadsvc"
	"github.com/sir_venger/upload_lite/pkg/requestid"
	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

const metricsNamespace = "upload_lite"

// UsageReporter отдаёт статистику каталога загрузок.
type UsageReporter interface {
	Usage() (uploads.Usage, error)
}

type Server struct {
	Uploads uploadsvc.Service
	Storage UsageReporter
	Cfg     *config.Config
	Logger  *slog.Logger
}

// Deps содержит внешние зависимости HTTP-сервера.
type Deps struct {
	Keys     uploadsvc.KeyStore
	Logger   *slog.Logger
	Registry *prometheus.Registry // nil отключает /metrics
}

// NewServer конструктор
func NewServer(cfg *config.Config, deps Deps) (http.Handler, *Server, error) {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	store, err := uploads.New(cfg.UploadsDir)
	if err != nil {
		return nil, nil, err
	}

	var (
		observer       metrics.Observer = metrics.Nop{}
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled && deps.Registry != nil {
		obs, err := metrics.NewPrometheusObserver(metricsNamespace, deps.Registry)
		if err != nil {
			return nil, nil, err
		}
		observer = obs
		metricsHandler = promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})
	}

	srv := &Server{
		Uploads: uploadsvc.New(uploadsvc.Deps{
			Keys:     deps.Keys,
			Files:    store,
			Observer: observer,
			Logger:   log,
		}),
		Storage: store,
		Cfg:     cfg,
		Logger:  log,
	}

	rtr := chi.NewRouter()
	rtr.Use(requestid.Middleware, srv.accessLog, middleware.Recoverer)
	rtr.Get(uploadproto.PathRoot, srv.getStatus)
	rtr.Post(uploadproto.PathRoot, srv.postUpload)
	rtr.Get(uploadproto.PathHealth, srv.health)
	if metricsHandler != nil {
		rtr.Method(http.MethodGet, uploadproto.PathMetrics, metricsHandler)
	}

	return rtr, srv, nil
}
