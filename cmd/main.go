package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	productapp "product-store/application/product"
	"product-store/cmd/config"
	_ "product-store/docs"
	productRepo "product-store/repository/product"
	"product-store/server"
	"product-store/thirdparty/rabbitmq"
	"product-store/thirdparty/shield"
	"product-store/transport"
	"product-store/utils/logger"
)

// @title PRODUCT STORE API
// @version 1.0
// @description Product catalog CRUD API
// @host localhost:3000
// @BasePath /
func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("pgx", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	repo := productRepo.NewProductRepository(db)

	// Schema init failure is logged but does not abort startup; the server
	// comes up against whatever state the store is in.
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.InitSchema(initCtx); err != nil {
		logger.Error("err init schema", zap.Error(err))
	} else {
		logger.Info("database initialized")
	}
	cancel()

	// Optional product event publisher
	var events productapp.EventPublisher
	if cfg.RabbitMQ.Enabled {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer pub.Close()
		events = pub
	}

	// Protection gate: remote decision service when configured, embedded
	// evaluator otherwise
	var gate shield.Client
	if cfg.Shield.Endpoint != "" {
		gate = shield.NewHTTPClient(cfg.Shield.Endpoint)
	} else {
		embedded, err := shield.NewEmbedded(cfg.Shield.RatePerSecond, cfg.Shield.Burst, cfg.Shield.HostingCIDRs)
		if err != nil {
			logger.Fatal("err init shield", zap.Error(err))
		}
		gate = embedded
	}

	app := productapp.NewProductApp(repo, events)
	httpTransport := transport.NewTransport(app, gate, cfg)

	srv := server.New(cfg.Server, httpTransport)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}

	logger.Info("server stopped")
}
