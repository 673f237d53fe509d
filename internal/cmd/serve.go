package cmd

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jayakishorers/jersey-backend/internal/adapter/auth"
	"github.com/jayakishorers/jersey-backend/internal/adapter/handler"
	"github.com/jayakishorers/jersey-backend/internal/adapter/notifier"
	"github.com/jayakishorers/jersey-backend/internal/adapter/storage"
	"github.com/jayakishorers/jersey-backend/internal/config"
	"github.com/jayakishorers/jersey-backend/internal/core/service"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// MySQL
	db, err := sql.Open("mysql", cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	log.Println("connected to mysql")

	if err := storage.EnsureSchema(ctx, db); err != nil {
		return err
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		PoolSize: cfg.Redis.PoolSize,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	log.Println("connected to redis")

	// Adapters
	ledger := storage.NewMySQLStockLedger(db)
	orderRepo := storage.NewMySQLOrderRepository(db)
	subRepo := storage.NewMySQLSubscriptionRepository(db)
	msgRepo := storage.NewMySQLMessageRepository(db)
	cache := storage.NewRedisAdapter(rdb)

	var dispatcher port.Notifier
	if cfg.SMTP.Enabled {
		dispatcher = notifier.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username,
			cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.StoreEmail)
		log.Printf("smtp notifier enabled via %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		dispatcher = notifier.NewLogNotifier()
		log.Println("smtp disabled, logging notifications")
	}

	creds := make([]auth.Credential, 0, len(cfg.Auth.Credentials))
	for _, c := range cfg.Auth.Credentials {
		creds = append(creds, auth.Credential{Token: c.Token, Email: c.Email, Privileged: c.Privileged})
	}
	authenticator := auth.NewStaticAuthenticator(creds)

	// Services
	workflow := service.NewOrderWorkflow(ledger, orderRepo, cache, dispatcher)
	stockSvc := service.NewStockService(ledger)
	newsletterSvc := service.NewNewsletterService(subRepo, dispatcher)
	messageSvc := service.NewMessageService(msgRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Authenticator: authenticator,
		Orders:        workflow,
		Stock:         stockSvc,
		Newsletter:    newsletterSvc,
		Messages:      messageSvc,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	return nil
}
