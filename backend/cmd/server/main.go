package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"uniportal/backend/internal/gateway"
	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
)

func main() {
	log.Println("INFO: Starting UniPortal Server...")

	// 1. Load Configuration
	shared.LoadEnv("")
	cfg, err := shared.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Connect to MongoDB
	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := shared.DisconnectMongoDB(client); err != nil {
			log.Printf("Warning: Failed to disconnect MongoDB cleanly: %v", err)
		}
	}()

	// 3. Setup Routes and Middleware
	st := store.NewMongoStore(db)
	router := gateway.SetupRoutes(cfg, st)

	// 4. Configure Server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 5. Start Server in a Goroutine
	go func() {
		log.Printf("INFO: Server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server error: %v", err)
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down server...")

	if err := server.Close(); err != nil {
		log.Printf("Warning: Server close error: %v", err)
	}
	log.Println("INFO: Server stopped.")
}
