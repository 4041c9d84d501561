package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"storefront/internal/devserver"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		// Fine for a local fixture; never reuse this outside dev.
		jwtSecret = "devserver-insecure-secret"
		log.Println("JWT_SECRET_KEY not set, using the built-in dev secret")
	}

	jwtExpHours := int64(24)
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
		} else {
			jwtExpHours = parsed
		}
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	// --- Repositories ---
	users := devserver.NewMemoryUserRepository()
	products := devserver.NewMemoryProductRepository()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pool, err := devserver.ConnectDB(dsn)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		if err := devserver.AutoMigrate(pool); err != nil {
			log.Fatalf("Failed to auto-migrate database: %v", err)
		}
		users = devserver.NewPostgresUserRepository(pool)
		products = devserver.NewPostgresProductRepository(pool)
		log.Println("Using PostgreSQL-backed repositories")
	} else {
		log.Println("DATABASE_URL not set, using in-memory repositories")
	}

	srv, err := devserver.New(devserver.Config{
		JWTSecret:          jwtSecret,
		JWTExpirationHours: jwtExpHours,
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}, users, products)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	httpServer := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Fixture API listening on :%s", serverPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
