package main

import (
	"net/http"
	"os"
	"time"

	_ "livestock-registry/docs"
	"livestock-registry/internal/platform/logger"
	"livestock-registry/internal/router"
)

// @title Livestock Registry API
// @version 1.0
// @description Registro de ganado: especies, animales, vacunación, alimentación y reproducción.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{Logger: log})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
