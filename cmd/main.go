package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-currency-converter/internal/caches"
	"github.com/sbilibin2017/gw-currency-converter/internal/facades"
	"github.com/sbilibin2017/gw-currency-converter/internal/handlers"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/middlewares"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/repositories"
	"github.com/sbilibin2017/gw-currency-converter/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds the service settings read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExpSecond    int

	ExchangeTimeoutSecond int
	BinanceBaseURL        string
	KuCoinBaseURL         string
	// Exchanges are tried in this order when a request names none
	Exchanges []models.Exchange

	DecimalRoundPrec int32
}

// @title gw-currency-converter API
// @version 1.0.0
// @description Converts amounts between currencies using live rates from crypto exchanges
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the service configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisExpSecond, err = getInt("REDIS_EXP_SECOND", "60"); err != nil {
		return
	}

	// Exchanges config
	if cfg.ExchangeTimeoutSecond, err = getInt("EXCHANGE_TIMEOUT_SECOND", "5"); err != nil {
		return
	}
	cfg.BinanceBaseURL = getEnv("BINANCE_BASE_URL", facades.BinanceBaseURL)
	cfg.KuCoinBaseURL = getEnv("KUCOIN_BASE_URL", facades.KuCoinBaseURL)
	if cfg.Exchanges, err = parseExchanges(getEnv("EXCHANGES", "binance,kucoin")); err != nil {
		return
	}

	// Response config
	prec, err := getInt("DECIMAL_ROUND_PREC", "10")
	if err != nil {
		return
	}
	if prec < 0 {
		return cfg, fmt.Errorf("DECIMAL_ROUND_PREC: must not be negative, got %d", prec)
	}
	cfg.DecimalRoundPrec = int32(prec)

	return cfg, nil
}

// parseExchanges reads a comma separated exchange list, keeping its order.
func parseExchanges(list string) ([]models.Exchange, error) {
	exchanges := make([]models.Exchange, 0)
	seen := make(map[models.Exchange]bool)
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		exchange, err := models.ParseExchange(name)
		if err != nil {
			return nil, fmt.Errorf("EXCHANGES: %w", err)
		}
		if !seen[exchange] {
			seen[exchange] = true
			exchanges = append(exchanges, exchange)
		}
	}
	if len(exchanges) == 0 {
		return nil, errors.New("EXCHANGES: no exchange enabled")
	}
	return exchanges, nil
}

// newVenue creates the API adapter of an exchange.
func newVenue(cfg config, exchange models.Exchange) (facades.Venue, error) {
	timeout := time.Duration(cfg.ExchangeTimeoutSecond) * time.Second
	switch exchange {
	case models.Binance:
		return facades.NewBinanceVenue(cfg.BinanceBaseURL, timeout), nil
	case models.KuCoin:
		return facades.NewKuCoinVenue(cfg.KuCoinBaseURL, timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownExchange, exchange)
	}
}

// newExchangeClients builds the client chain of every enabled exchange:
// venue, metrics, logging and finally the rate cache.
func newExchangeClients(cfg config, cache caches.RateCache, m *metrics.Metrics) ([]services.ExchangeClient, error) {
	clients := make([]services.ExchangeClient, 0, len(cfg.Exchanges))
	for _, exchange := range cfg.Exchanges {
		venue, err := newVenue(cfg, exchange)
		if err != nil {
			return nil, err
		}

		var client facades.RateClient = facades.NewExchangeClient(venue)
		client = facades.NewInstrumentedClient(m, client)
		client = facades.NewLoggingClient(logger.Log, client)
		clients = append(clients, caches.NewExchangeClientCache(client, cache, m))
	}
	return clients, nil
}

// newRouter sets up routes and middleware.
func newRouter(
	cfg config,
	converter handlers.Converter,
	lister handlers.ExchangeLister,
	pinger handlers.Pinger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware(m))

	r.Post("/api/v1/convert", handlers.NewConvertHandler(converter, handlers.NewValidator(), cfg.DecimalRoundPrec))
	r.Get("/api/v1/exchanges", handlers.NewGetExchangesHandler(lister))
	r.Get("/healthz", handlers.NewHealthHandler(pinger))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))
	return r
}

// run initializes the logger, Redis, exchange clients and HTTP server.
// It blocks until ctx is done or a shutdown signal arrives.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to Redis. The rate cache is optional, so a failed ping is only logged.
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	defer rdb.Close()

	store := repositories.NewRedisStore(rdb, time.Duration(cfg.RedisExpSecond)*time.Second)
	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		logger.Log.Warnw("Redis is not reachable, rates will not be cached", "error", err)
	}
	cancelPing()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize exchange clients and services
	clients, err := newExchangeClients(cfg, caches.NewExchangeRateCache(store), m)
	if err != nil {
		return err
	}
	convertService := services.NewConvertService(m, clients...)
	logger.Log.Infow("Exchanges enabled", "exchanges", convertService.Exchanges())

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           newRouter(cfg, convertService, convertService, store, m, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
