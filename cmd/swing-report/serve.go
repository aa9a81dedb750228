package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/swing.report/internal/api"
	"github.com/banshee-data/swing.report/internal/cache"
	"github.com/banshee-data/swing.report/internal/db"
	"github.com/banshee-data/swing.report/internal/monitoring"
	"github.com/banshee-data/swing.report/internal/render"
	"github.com/banshee-data/swing.report/internal/version"
)

func runServe(args []string, _ io.Reader, _ io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	listen := fs.String("listen", ":8080", "Listen address")
	dbPath := fs.String("db-path", defaultDBPath, "Path to the session database")
	configPath := fs.String("config", "", "Report defaults file (.json, .yaml or .yml)")
	redisURL := fs.String("redis-url", "", "Cache reports in Redis at this URL (redis://host:port/db)")
	redisTTL := fs.Duration("redis-ttl", time.Hour, "Lifetime of cached reports")
	assetsHost := fs.String("assets-host", "", "Host serving the echarts scripts (default: go-echarts CDN)")
	noMetrics := fs.Bool("no-metrics", false, "Do not expose /metrics")
	quiet := fs.Bool("quiet", false, "Do not log requests and cache errors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *listen == "" {
		return errors.New("listen address is required")
	}

	if *quiet {
		monitoring.SetLogger(nil)
	}

	defaults, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	store, err := db.NewDB(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := api.Options{HTML: render.Options{AssetsHost: *assetsHost}}
	if !*noMetrics {
		opts.Metrics = monitoring.NewMetrics()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *redisURL != "" {
		rc, err := cache.NewRedisCacheFromURL(*redisURL, *redisTTL)
		if err != nil {
			return err
		}
		defer rc.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Printf("redis unavailable, serving without a report cache: %v", err)
		} else {
			opts.Cache = rc
		}
	}

	srv := api.NewServer(store, defaults, opts)
	mux := srv.ServeMux()
	if err := store.AttachAdminRoutes(mux); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              *listen,
		Handler:           srv.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s", version.String(), *listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}
	log.Printf("Graceful shutdown complete")
	return nil
}
