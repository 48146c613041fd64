package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/shopnavy/pos/internal/apperr"
	"github.com/shopnavy/pos/internal/config"
	"github.com/shopnavy/pos/internal/http/metric"
	"github.com/shopnavy/pos/internal/http/middleware"
	"github.com/shopnavy/pos/internal/http/swagger"
	"github.com/shopnavy/pos/internal/service"
	"github.com/shopnavy/pos/internal/storage/db"
	"github.com/shopnavy/pos/pkg/validator"
)

var tracer = otel.Tracer("github.com/shopnavy/pos/internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	registry  *prometheus.Registry
	metrics   *metric.Metrics
	validator validator.Validator
	health    db.HealthChecker

	productSvc service.ProductService
	saleSvc    service.SaleService
	historySvc service.HistoryService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	validator validator.Validator,
	health db.HealthChecker,
	productSvc service.ProductService,
	saleSvc service.SaleService,
	historySvc service.HistoryService,
) *Service {
	registry := prometheus.NewRegistry()

	return &Service{
		cfg:        cfg,
		logger:     log.With(slog.String("service", "http")),
		registry:   registry,
		metrics:    metric.New(registry),
		validator:  validator,
		health:     health,
		productSvc: productSvc,
		saleSvc:    saleSvc,
		historySvc: historySvc,
	}
}

// Handler returns the router serving the whole API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Handler())
}

// RunWithServer starts serving handler on the configured port. Listening errors are
// returned before the server goroutine starts.
func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.CorrelationID(),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.Cors(s.cfg.AllowedOrigins),
		middleware.SecureHeaders(),
	)

	if s.cfg.RateLimit > 0 {
		r.Use(middleware.RateLimit(s.cfg.RateLimit, func(w http.ResponseWriter, r *http.Request) {
			s.handleError(w, r, apperr.TooManyRequestsErr)
		}))
	}

	r.Use(middleware.Logging(s.logger))
}

func (s *Service) RegisterHandlers(r chi.Router) {
	products := &productHandler{Service: s, productSvc: s.productSvc}
	sales := &saleHandler{Service: s, saleSvc: s.saleSvc}
	history := &historyHandler{Service: s, historySvc: s.historySvc}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusNotFound, map[string]string{"code": "notFound", "message": "route not found"})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.wrap(products.listProducts))
		r.Post("/", s.wrap(products.createProduct))
		r.Put("/{id}", s.wrap(products.updateProduct))
		r.Delete("/{id}", s.wrap(products.deleteProduct))
	})

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", s.wrap(sales.createSale))
		r.Get("/history", s.wrap(history.getHistory))
		r.Get("/history/all", s.wrap(history.getAllHistory))
	})

	r.Get("/healthz", s.wrap(s.healthz))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}))
}

func (s *Service) healthz(w http.ResponseWriter, r *http.Request) error {
	ok, err := s.health.IsHealthy(r.Context())
	if err != nil || !ok {
		return apperr.DatabaseDownErr.WrapParent(err)
	}

	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}
