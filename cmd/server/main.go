package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valyala/fasthttp"

	adapterlogger "github.com/baditaflorin/go_key_terms/internal/adapters/logger"
	"github.com/baditaflorin/go_key_terms/internal/adapters/normalizer"
	"github.com/baditaflorin/go_key_terms/internal/config"
	"github.com/baditaflorin/go_key_terms/internal/core/sorting"
	"github.com/baditaflorin/go_key_terms/internal/warmup"
)

// Default configuration
const (
	DefaultMaxRequestSize = 1024 * 1024 // 1MB
	DefaultConcurrency    = 0           // 0 means use the fasthttp default
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides the configuration)")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent connections (0 = default)")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	warm := flag.Bool("warmup", true, "Warm up the sorter before accepting requests")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	logger, err := adapterlogger.New(adapterlogger.Options{FilePath: cfg.Log.File, JSON: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	srv, err := newServer(cfg, logger, registry)
	if err != nil {
		logger.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	if *warm {
		wm := warmup.NewManager(logger, warmup.DefaultConfig())
		wm.RegisterNormalizer(normalizer.NewCapitalizer())
		wm.RegisterSorter(sorting.NewPartitionSorter())
		wm.WarmUp(context.Background())
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Starting key terms HTTP server",
		"address", addr,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", *maxRequestSize,
		"remote_extraction", srv.extractor != nil,
		"redis", cfg.Redis.Addr != "",
	)

	server := &fasthttp.Server{
		Handler:               srv.handle,
		Name:                  "KeyTermsServer",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	if err := server.ListenAndServe(addr); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}
