package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellerconsole/cmd"
	httpadapter "sellerconsole/internal/adapters/in/http"
	postgresadapter "sellerconsole/internal/adapters/out/postgres"
	"sellerconsole/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := logging.New(configs.LogLevel, configs.LogFormat)

	db := mustOpenDatabase(configs, logger)
	redisClient := mustConnectRedis(configs, logger)

	app := cmd.NewCompositionRoot(configs, db, redisClient, logger)
	defer func() {
		if err := app.Close(); err != nil {
			logger.WithError(err).Warn("failed to close change feed")
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reconciliation := app.CreateReconciliationJob()
	// One pass before serving activates every seller with recent activity and
	// replays what the previous process missed.
	if _, err := reconciliation.RunOnce(ctx); err != nil {
		logger.WithError(err).Error("startup reconciliation failed, continuing")
	}

	jobManager := app.CreateJobManager(reconciliation)
	if err := jobManager.StartAll(); err != nil {
		logger.WithError(err).Fatal("failed to start jobs")
	}
	defer jobManager.StopAll()

	if err := run(ctx, app, configs.HTTPPort, logger); err != nil {
		logger.WithError(err).Error("server stopped with error")
	}
	logger.Info("shutdown complete")
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func mustOpenDatabase(configs cmd.Config, logger *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	if err = postgresadapter.Migrate(db); err != nil {
		logger.WithError(err).Fatal("failed to migrate database")
	}
	return db
}

// mustConnectRedis returns nil when REDIS_ADDR is unset; the change feed then
// stays in process.
func mustConnectRedis(configs cmd.Config, logger *logrus.Logger) *redis.Client {
	if configs.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, using in-process change feed")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	return client
}

func run(ctx context.Context, app *cmd.CompositionRoot, port string, logger *logrus.Logger) error {
	e := httpadapter.NewEcho(app.CreateHTTPServer())
	dispatcher := app.Dispatcher()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return dispatcher.Run(ctx)
	})

	g.Go(func() error {
		logger.WithField("port", port).Info("starting http server")
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return shutdown(shutdownCtx, e)
	})

	return g.Wait()
}

func shutdown(ctx context.Context, e *echo.Echo) error {
	if err := e.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
