// cmd/girastub/main.go - in-memory GIRA API stub for local development
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gira-client/internal/config"
	"gira-client/internal/stubapi"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	gin.SetMode(gin.ReleaseMode)
	server := stubapi.New(stubapi.WithJWT(
		cfg.StubJWTSecret,
		time.Duration(cfg.StubJWTExpiration)*time.Hour,
	))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.StubHost, cfg.StubPort),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("GIRA stub API listening on http://%s:%s", cfg.StubHost, cfg.StubPort)
		log.Infof("seeded accounts: %s / %s / %s (password %q)",
			stubapi.SeedPassagerEmail, stubapi.SeedSuperviseurEmail, stubapi.SeedAdminEmail, stubapi.SeedPassword)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("forced shutdown: %v", err)
	}
}
