package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	natsgo "github.com/nats-io/nats.go"
	redisdriver "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/vikas-0-3/farmer/internal/adapter/email"
	mongoadapter "github.com/vikas-0-3/farmer/internal/adapter/mongo"
	natsadapter "github.com/vikas-0-3/farmer/internal/adapter/nats"
	redisadapter "github.com/vikas-0-3/farmer/internal/adapter/redis"
	"github.com/vikas-0-3/farmer/internal/adapter/storage"
	"github.com/vikas-0-3/farmer/internal/app/config"
	"github.com/vikas-0-3/farmer/internal/handler"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/router"
	"github.com/vikas-0-3/farmer/internal/service"
)

// App owns every long-lived resource of the process.
type App struct {
	cfg *config.Config
	log logger.Logger

	httpServer  *http.Server
	mongoClient *mongodriver.Client
	redisClient *redisdriver.Client
	natsConn    *natsgo.Conn
}

func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	db := mongoClient.Database(cfg.MongoDB.Database)

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	var (
		natsConn  *natsgo.Conn
		publisher natsadapter.MessagePublisher = natsadapter.NoopPublisher{}
	)
	if cfg.NATS.URL != "" {
		natsConn, err = natsadapter.NewConnection(cfg.NATS)
		if err != nil {
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		publisher, err = natsadapter.NewPublisher(natsConn)
		if err != nil {
			return nil, err
		}
	} else {
		log.Info("NATS URL not set, order events disabled")
	}

	var mailer email.Sender
	if cfg.SMTP.Host != "" {
		mailer, err = email.NewSMTPSender(cfg.SMTP, log)
		if err != nil {
			return nil, fmt.Errorf("init smtp sender: %w", err)
		}
	} else {
		log.Info("SMTP host not set, receipt emails disabled")
	}

	var store storage.Store
	switch cfg.Uploads.Backend {
	case "s3":
		store, err = storage.NewS3Store(cfg.Uploads, log)
	default:
		store, err = storage.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix, log)
	}
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	userRepo := mongoadapter.NewUserRepository(db, log)
	farmerRepo := mongoadapter.NewFarmerRepository(db, log)
	productRepo := mongoadapter.NewProductRepository(db, log)
	cartRepo := mongoadapter.NewCartRepository(db, log)
	orderRepo := mongoadapter.NewOrderRepository(db, log)
	productCache := redisadapter.NewProductCache(redisClient)

	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	farmerService := service.NewFarmerService(farmerRepo, userRepo, log)
	productService := service.NewProductService(productRepo, userRepo, productCache, cfg.ProductCache.TTL, log)
	cartService := service.NewCartService(cartRepo, productRepo, log)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo, publisher, mailer, log)

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService, store, log),
		User:    handler.NewUserHandler(userService, authService, store, log),
		Farmer:  handler.NewFarmerHandler(farmerService, store, log),
		Product: handler.NewProductHandler(productService, store, log),
		Cart:    handler.NewCartHandler(cartService, log),
		Order:   handler.NewOrderHandler(orderService, log),
	}

	uploadsDir := ""
	if cfg.Uploads.Backend != "s3" {
		uploadsDir = cfg.Uploads.Dir
	}
	mux := router.New(handlers, cfg.Auth.JWTSecret, uploadsDir, cfg.Uploads.URLPrefix, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	return &App{
		cfg:         cfg,
		log:         log,
		httpServer:  httpServer,
		mongoClient: mongoClient,
		redisClient: redisClient,
		natsConn:    natsConn,
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts everything down.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		a.log.Infof("received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Errorf("http shutdown: %v", err)
	}
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.log.Errorf("nats drain: %v", err)
		}
	}
	if err := a.redisClient.Close(); err != nil {
		a.log.Errorf("redis close: %v", err)
	}
	if err := a.mongoClient.Disconnect(ctx); err != nil {
		a.log.Errorf("mongo disconnect: %v", err)
	}

	a.log.Info("shutdown complete")
	return nil
}
