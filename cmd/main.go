package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SergeyBogomolovv/store-orders/internal/app"
	"github.com/SergeyBogomolovv/store-orders/internal/auth"
	"github.com/SergeyBogomolovv/store-orders/internal/config"
	"github.com/SergeyBogomolovv/store-orders/internal/events"
	"github.com/SergeyBogomolovv/store-orders/internal/handler"
	"github.com/SergeyBogomolovv/store-orders/internal/hashid"
	"github.com/SergeyBogomolovv/store-orders/internal/postgres"
	"github.com/SergeyBogomolovv/store-orders/internal/repo"
	"github.com/SergeyBogomolovv/store-orders/internal/service"
	"github.com/SergeyBogomolovv/store-orders/pkg/cache"
	"github.com/SergeyBogomolovv/store-orders/pkg/trm"

	"github.com/joho/godotenv"
)

// @title                       Store Orders API
// @version                     1.0
// @description                 Заказы магазинов: создание, статусы, выборки и манифест
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	logger.Info("postgres connected")

	ids, err := hashid.New(conf.HashID.Salt, conf.HashID.MinLength)
	panicIfErr("failed to init id codec", err)

	var closers []io.Closer

	publisher := newPublisher(logger, conf.Kafka)
	closers = append(closers, publisher)

	orderCache := newCache(logger, conf)
	if c, ok := orderCache.(io.Closer); ok {
		closers = append(closers, c)
	}
	closers = append(closers, db)

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)

	service.RegisterMetrics()
	orderService := service.NewOrderService(logger, txManager, orderRepo, orderCache, publisher,
		service.WithSingleFetchScope(conf.Orders.ScopeSingleFetch),
	)

	httpHandler := handler.NewHTTPHandler(logger, orderService, ids)

	app := app.New(logger, conf, auth.NewVerifier(conf.Auth.JWTSecret))

	app.SetHTTPHandlers(httpHandler)
	app.SetStarters(orderCache, cacheWarmUpAdapter{logger: logger, svc: orderService, count: conf.Cache.WarmUp})
	app.SetClosers(closers...)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type cacheBackend interface {
	service.Cache
	app.Starter
}

func newCache(logger *slog.Logger, conf config.Config) cacheBackend {
	if conf.Cache.Backend == "redis" {
		logger.Info("using redis cache", slog.String("addr", conf.Redis.Addr))
		return cache.NewRedisCache(logger, cache.RedisOptions{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
			Prefix:   "store-orders:",
			TTL:      conf.Cache.TTL,
		})
	}
	return cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
}

type eventPublisher interface {
	service.EventPublisher
	io.Closer
}

func newPublisher(logger *slog.Logger, conf config.Kafka) eventPublisher {
	if !conf.Enabled {
		logger.Info("kafka disabled, order events are dropped")
		return events.NopPublisher{}
	}
	return events.NewKafkaPublisher(logger, conf)
}

type warmUpper interface {
	WarmUp(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	logger *slog.Logger
	svc    warmUpper
	count  int
}

// Start прогревает кэш; ошибка прогрева не мешает запуску.
func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	if err := a.svc.WarmUp(ctx, a.count); err != nil {
		a.logger.Warn("failed to warm up cache", slog.Any("error", err))
	}
	return nil
}
