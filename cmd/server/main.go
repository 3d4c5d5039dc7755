package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruralpay/corebank/docs"
	"github.com/ruralpay/corebank/internal/config"
	"github.com/ruralpay/corebank/internal/database"
	"github.com/ruralpay/corebank/internal/handlers"
	"github.com/ruralpay/corebank/internal/services"
)

// @title Core Banking API
// @version 1.0
// @description Users, accounts, deposits and atomic transfers with a transaction ledger
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// newServer keeps the write timeout above the router's request timeout so a
// timed-out handler's 503 still reaches the client.
func newServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: handlers.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	db := database.InitDatabase(cfg.Database)
	defer db.Close()

	redisClient := database.InitRedis(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	hasher := services.NewPasswordHasher(cfg.Argon2)
	identityService := services.NewIdentityService(db, hasher)
	ledgerService := services.NewLedgerService(db, services.NewAuditLogger())

	var tokenService *services.TokenService
	if cfg.JWT.Enabled() {
		tokenService = services.NewTokenService(cfg.JWT, redisClient)
	} else {
		log.Println("[AUTH] JWT_SECRET_KEY not set, session tokens and /auth routes disabled")
	}

	router := handlers.NewRouter(
		handlers.NewUserHandler(identityService, ledgerService, tokenService),
		handlers.NewAccountHandler(ledgerService),
		handlers.NewTransactionHandler(ledgerService),
		tokenService,
	)

	server := newServer(cfg.Port, router)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
