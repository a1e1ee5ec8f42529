package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "nakliye/api/swagger" // swagger docs
	"nakliye/internal/app"
	"nakliye/internal/websocket"

	"gorm.io/gorm"
)

// @title           Nakliye API
// @version         1.0
// @description     Freight marketplace: listings, price offers, company directory and admin panel.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := app.NewContainerBuilder(os.Args[1:]).MustBuild(ctx)

	err := container.Invoke(func(srv *http.Server, hub *websocket.Hub, db *gorm.DB) error {
		log.Println("Connected to PostgreSQL successfully.")

		go hub.Run(ctx)

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		log.Println("Server stopped")
		return nil
	})
	if err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
