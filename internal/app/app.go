package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	_ "github.com/SergeyBogomolovv/store-orders/docs"
	"github.com/SergeyBogomolovv/store-orders/internal/config"
	"github.com/SergeyBogomolovv/store-orders/internal/middleware"
	"github.com/SergeyBogomolovv/store-orders/pkg/utils"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type application struct {
	logger *slog.Logger

	router   chi.Router
	httpSrv  *http.Server
	verifier middleware.TokenVerifier

	starters []Starter
	closers  []io.Closer
}

func New(logger *slog.Logger, cfg config.Config, verifier middleware.TokenVerifier) *application {
	logger = logger.With(slog.String("component", "app"))

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Cors.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteData(w, "ok", http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	httpSrv := &http.Server{
		Handler:           router,
		Addr:              net.JoinHostPort(cfg.Http.Host, cfg.Http.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &application{
		logger:   logger,
		router:   router,
		httpSrv:  httpSrv,
		verifier: verifier,
	}
}

type HTTPHandler interface {
	Init(r chi.Router)
}

// SetHTTPHandlers монтирует обработчики за проверкой токена.
func (a *application) SetHTTPHandlers(handlers ...HTTPHandler) {
	a.router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(a.verifier))
		for _, h := range handlers {
			h.Init(r)
		}
	})
}

// Starter запускается перед открытием порта, ошибка прерывает старт.
type Starter interface {
	Start(ctx context.Context) error
}

func (a *application) SetStarters(starters ...Starter) {
	a.starters = append(a.starters, starters...)
}

// SetClosers закрываются после остановки http сервера в порядке регистрации.
func (a *application) SetClosers(closers ...io.Closer) {
	a.closers = append(a.closers, closers...)
}

func (a *application) Start(ctx context.Context) error {
	for _, s := range a.starters {
		if err := s.Start(ctx); err != nil {
			return fmt.Errorf("failed to start %T: %w", s, err)
		}
	}

	ln, err := net.Listen("tcp", a.httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen %s: %w", a.httpSrv.Addr, err)
	}
	go a.serve(ln)

	a.logger.Info("application started", slog.String("addr", ln.Addr().String()))
	return nil
}

func (a *application) serve(ln net.Listener) {
	if err := a.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("http server stopped unexpectedly", slog.Any("error", err))
	}
}

const gracefulShutdownTimeout = 5 * time.Second

func (a *application) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.httpSrv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown http server: %w", err))
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %T: %w", c, err))
		}
	}

	a.logger.Info("application stopped")
	return errors.Join(errs...)
}
