package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/opentransit/editor-backend/api"
	"github.com/opentransit/editor-backend/infra"
	"github.com/opentransit/editor-backend/repositories"
	"github.com/opentransit/editor-backend/usecases"
	"github.com/opentransit/editor-backend/utils"
)

type AppConfiguration struct {
	env      string
	appName  string
	port     string
	appUrl   string
	pgConfig infra.PgConfig
	server   api.Configuration
	jwtKey   string
}

func loadConfiguration() AppConfiguration {
	env := utils.GetEnv("ENV", "development")

	config := AppConfiguration{
		env:     env,
		appName: "editor-backend",
		port:    utils.GetRequiredEnv[string]("PORT"),
		appUrl:  utils.GetEnv("APP_URL", ""),
		pgConfig: infra.PgConfig{
			ConnectionString: utils.GetEnv("PG_CONNECTION_STRING", ""),
			Database:         utils.GetEnv("PG_DATABASE", "transit_editor"),
			Hostname:         utils.GetEnv("PG_HOSTNAME", "localhost"),
			Password:         utils.GetEnv("PG_PASSWORD", ""),
			Port:             utils.GetEnv("PG_PORT", "5432"),
			User:             utils.GetEnv("PG_USER", ""),
			SslMode:          utils.GetEnv("PG_SSL_MODE", "prefer"),
		},
		jwtKey: utils.GetRequiredEnv[string]("AUTHENTICATION_JWT_SIGNING_KEY"),
	}
	config.server = api.Configuration{
		Env:                 env,
		AppName:             config.appName,
		AppVersion:          utils.GetEnv("APP_VERSION", "dev"),
		Port:                config.port,
		AppUrl:              config.appUrl,
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "all"),
		TokenLifetimeMinute: utils.GetEnv("TOKEN_LIFETIME_MINUTE", 60),
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SEC", 10)) * time.Second,
	}
	return config
}

func runServer(ctx context.Context, config AppConfiguration) error {
	logger := utils.LoggerFromContext(ctx)

	pool, err := infra.NewPostgresConnectionPool(ctx, config.pgConfig.GetConnectionString())
	if err != nil {
		return err
	}
	defer pool.Close()

	// Insert-only river client: jobs are consumed by the worker pool, not here.
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		return err
	}

	repos := repositories.NewRepositories(pool, riverClient)
	uc := usecases.NewUsecases(repos, []byte(config.jwtKey),
		usecases.WithAppName(config.appName),
		usecases.WithApiVersion(config.server.AppVersion),
		usecases.WithTokenLifetimeMinute(config.server.TokenLifetimeMinute),
	)

	router := api.InitRouterMiddlewares(ctx, config.server)
	server := api.NewServer(router, config.server, uc, api.WithLocalTest(config.env == "development"))

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server on port "+config.port)
		if err := server.ListenAndServe(); err != nil {
			logger.InfoContext(ctx, "server stopped: "+err.Error())
		}
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runMigrations(ctx context.Context, config AppConfiguration) error {
	migrater := repositories.NewMigrater(config.pgConfig)
	return migrater.Run(ctx)
}

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run migrations")
	shouldRunServer := flag.Bool("server", false, "Run server")
	flag.Parse()

	config := loadConfiguration()

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	logger.DebugContext(ctx, "starting app",
		slog.Bool("migrations", *shouldRunMigrations),
		slog.Bool("server", *shouldRunServer))

	if *shouldRunMigrations {
		if err := runMigrations(ctx, config); err != nil {
			log.Fatalf("error running migrations: %v", err)
		}
	}
	if *shouldRunServer {
		if err := runServer(ctx, config); err != nil {
			log.Fatalf("error running server: %v", err)
		}
	}
}
