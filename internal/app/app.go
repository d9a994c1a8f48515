package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/go-catalog/internal/cfg"
	v1Grpc "github.com/DRSN-tech/go-catalog/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/go-catalog/internal/delivery/v1/http"
	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/internal/infrastructure"
	"github.com/DRSN-tech/go-catalog/internal/infrastructure/kafka"
	"github.com/DRSN-tech/go-catalog/internal/infrastructure/ws"
	"github.com/DRSN-tech/go-catalog/internal/repository/document"
	s3Repo "github.com/DRSN-tech/go-catalog/internal/repository/minio"
	"github.com/DRSN-tech/go-catalog/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/go-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/go-catalog/internal/repository/redis"
	redisConv "github.com/DRSN-tech/go-catalog/internal/repository/redis/converter"
	"github.com/DRSN-tech/go-catalog/internal/usecase"
	"github.com/DRSN-tech/go-catalog/pkg/closer"
	"github.com/DRSN-tech/go-catalog/pkg/clients"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/DRSN-tech/go-catalog/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout     = 10 * time.Second
	loadTimeout     = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	forcedTimeout   = 3 * time.Second
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	catalogUC *usecase.CatalogUseCase
	httpSrv   *v1Http.Server
	grpcSrv   *v1Grpc.GRPCServer
}

// NewApp собирает зависимости. Ресурсы, открытые до ошибки, закрываются.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(forcedTimeout, log),
	}

	if err := a.init(); err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := a.closer.Close(ctx); closeErr != nil {
			log.Warnf("Cleanup after failed init: %v", closeErr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	source, err := a.initSource(ctx)
	if err != nil {
		return err
	}

	cacheRepo, err := a.initCache(ctx)
	if err != nil {
		return err
	}

	hub := ws.NewHub(a.logger)
	go hub.Run()
	a.closer.Add("websocket hub", hub.Close)

	publishers := []usecase.EventPublisher{hub}
	if a.cfg.Kafka != nil {
		producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
		a.closer.AddCloser("kafka producer", producer)
		publishers = append(publishers, producer)
		a.logger.Infof("Kafka publisher enabled: topic=%s brokers=%v", a.cfg.Kafka.Topic, a.cfg.Kafka.Brokers)
	}

	var confirm domain.PriceConfirmer = domain.DenyPriceDecrease
	if a.cfg.Catalog.AllowPriceDecrease {
		confirm = domain.AllowPriceDecrease
	}

	a.catalogUC = usecase.NewCatalogUC(source, cacheRepo, infrastructure.NewFanout(publishers...), confirm, a.logger)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.closer.Add("gRPC server", a.grpcSrv.Stop)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(a.catalogUC, hub.ServeWs)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)
	a.closer.Add("HTTP server", a.httpSrv.Stop)

	return nil
}

// initSource выбирает источник каталога по CATALOG_SOURCE.
func (a *App) initSource(ctx context.Context) (usecase.CatalogSource, error) {
	switch a.cfg.Catalog.Source {
	case config.SourceFile:
		a.logger.Infof("Catalog source: file %s", a.cfg.Catalog.Path)
		return document.NewFileRepo(a.cfg.Catalog.Path, a.logger), nil

	case config.SourceMinio:
		minioClient, err := clients.ConnectCatalogStorage(ctx, a.cfg.Minio, clients.MinIOStartupPolicy, a.logger)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.logger.Infof("Catalog source: minio %s/%s", a.cfg.Minio.BucketName, a.cfg.Catalog.ObjectKey)
		return s3Repo.NewCatalogRepo(minioClient, a.cfg.Minio, a.cfg.Catalog.ObjectKey, a.logger), nil

	case config.SourcePostgres:
		db, err := a.initPGDB(ctx)
		if err != nil {
			return nil, err
		}
		a.logger.Infof("Catalog source: postgres %s:%s/%s", a.cfg.Db.Host, a.cfg.Db.Port, a.cfg.Db.DBName)
		return pgdb.NewCatalogSource(
			db.Pool,
			pgdb.NewCategoryRepo(),
			pgdb.NewProductRepo(),
			pgdbConv.NewCategoryConverter(),
			pgdbConv.NewProductConverter(),
			a.logger,
		), nil

	default:
		return nil, e.Wrap(a.cfg.Catalog.Source, e.ErrUnknownSource)
	}
}

func (a *App) initPGDB(ctx context.Context) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, a.cfg.Db)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("postgres pool", func(context.Context) error {
		db.Close()
		return nil
	})

	if err := db.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if a.cfg.Catalog.RunMigrations {
		if err := db.RunMigrations(postgres.DefaultMigrationsURL, a.logger); err != nil {
			a.logger.Errorf(err, "failed to run migrations")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return db, nil
}

// initCache подключает Redis, если он настроен. Без Redis кэш сводок отключён.
func (a *App) initCache(ctx context.Context) (usecase.CacheRepository, error) {
	if a.cfg.Redis == nil {
		a.logger.Infof("Redis is not configured, category cache disabled")
		return nil, nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.AddCloser("redis client", redisClient)

	if err := redisClient.WaitReady(ctx, clients.RedisStartupPolicy, a.logger); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return redis.NewCacheRepo(redisClient, redisConv.NewCategoryInfoConverter(), a.cfg.Redis, a.logger), nil
}

// Run загружает каталог, запускает серверы и ждёт сигнала или ошибки сервера.
func (a *App) Run() error {
	loadCtx, loadCancel := context.WithTimeout(context.Background(), loadTimeout)
	err := a.catalogUC.Load(loadCtx)
	loadCancel()
	if err != nil {
		a.logger.Errorf(err, "failed to load catalog")
		a.shutdown()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.grpcSrv.SetServing(true)

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("gRPC server", err)
		}
	}()
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- e.Wrap("HTTP server", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	a.shutdown()
	return appErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			a.logger.Warnf("Shutdown timeout: %v", err)
		} else {
			a.logger.Errorf(err, "shutdown finished with errors")
		}
		return
	}

	a.logger.Infof("Application shutdown complete")
}
