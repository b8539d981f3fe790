// Package daemon provides crptd startup, wiring and graceful shutdown.
//
// SERVICE INTEGRATION FLOW:
// 1. Prometheus registry with the crpt collectors plus Go/process collectors
// 2. Optional Redis client and shared limiter (verified with PING)
// 3. Registry submitter with the throttle gate reporting to Prometheus
// 4. Dispatcher workers feeding the submitter from the bounded queue
// 5. HTTP gateway serving documents, queue, health and metrics
// 6. Graceful shutdown in reverse order: gateway → dispatcher → redis
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/crpt/cmd/crptd/config"
	"github.com/concave-dev/crpt/internal/api"
	"github.com/concave-dev/crpt/internal/api/dispatch"
	"github.com/concave-dev/crpt/internal/crpt"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/metrics"
	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/concave-dev/crpt/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// buildRegistry creates the Prometheus registry served on /metrics
func buildRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(reg)
	return reg
}

// buildRedisLimiter connects to Redis and returns the shared limiter
func buildRedisLimiter(ctx context.Context) (*redis.Client, *throttle.RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: config.Global.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Global.RedisAddr, err)
	}

	rate := throttle.Rate{Window: config.Global.Window, Limit: config.Global.RequestLimit}
	limiter, err := throttle.NewRedisLimiter(client, config.Global.RedisKey, rate)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return client, limiter, nil
}

// buildAPIConfig converts daemon config to gateway config
func buildAPIConfig(d *dispatch.Dispatcher, submitter *crpt.Submitter, reg *prometheus.Registry) *api.Config {
	apiConfig := api.DefaultConfig()

	apiConfig.BindAddr = config.Global.BindAddr
	apiConfig.IngressRPS = config.Global.IngressRPS
	apiConfig.IngressBurst = config.Global.IngressBurst
	apiConfig.TrustedProxies = config.Global.TrustedProxies
	apiConfig.ResultTimeout = config.Global.ResultTimeout
	apiConfig.Dispatcher = d
	apiConfig.Gate = submitter
	apiConfig.Registry = reg

	return apiConfig
}

// Run starts every crptd service and blocks until SIGINT or SIGTERM
func Run() error {
	logging.Info("Starting crpt daemon v%s", version.CrptdVersion)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Route libraries that use the standard logger through our logging
	logging.RedirectStandardLog(logging.NewLevelWriter("INFO", "stdlog"))

	reg := buildRegistry()

	gateOpts := []throttle.Option{throttle.WithObserver(metrics.GateObserver{})}

	var redisClient *redis.Client
	if config.Global.RedisAddr != "" {
		client, limiter, err := buildRedisLimiter(ctx)
		if err != nil {
			return err
		}
		redisClient = client
		gateOpts = append(gateOpts, throttle.WithLimiter(limiter))
		logging.Info("Sharing registry rate through redis at %s", config.Global.RedisAddr)
	}

	submitterConfig := config.BuildSubmitterConfig()
	submitterConfig.UserAgent = fmt.Sprintf("crptd/%s", version.CrptdVersion)

	submitter, err := crpt.NewSubmitter(submitterConfig, gateOpts...)
	if err != nil {
		if redisClient != nil {
			redisClient.Close()
		}
		return fmt.Errorf("failed to create submitter: %w", err)
	}

	dispatcher := dispatch.NewDispatcher(submitter, config.BuildDispatchConfig())
	dispatcher.Start()

	apiServer, err := api.NewServer(buildAPIConfig(dispatcher, submitter, reg))
	if err != nil {
		dispatcher.Stop()
		if redisClient != nil {
			redisClient.Close()
		}
		return fmt.Errorf("failed to create API server: %w", err)
	}

	if err := apiServer.Start(); err != nil {
		dispatcher.Stop()
		if redisClient != nil {
			redisClient.Close()
		}
		return fmt.Errorf("failed to start API server: %w", err)
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	logging.Success("crpt daemon started successfully")
	logging.Info("Daemon running... Press Ctrl+C to shutdown")
	logging.Info("  - HTTP gateway: %s", apiServer.Addr())
	logging.Info("  - Registry: %s (%v, min interval %v)",
		submitterConfig.Endpoint, submitterConfig.Rate, submitter.MinInterval())
	logging.Info("  - Queue: %d slots, %d worker(s)", config.Global.QueueSize, config.Global.Workers)

	// Wait for shutdown signal
	select {
	case sig := <-sigCh:
		logging.Info("Received signal: %v", sig)
	case <-ctx.Done():
		logging.Info("Context cancelled")
	}

	// ============================================================================
	// GRACEFUL SHUTDOWN SEQUENCE
	// Gateway first so no new documents arrive, then the dispatcher drains the
	// queue through the throttle, then the shared limiter connection closes
	// ============================================================================

	logging.Info("Initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.Global.ResultTimeout)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
	}

	dispatcher.Stop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logging.Error("Error closing redis client: %v", err)
		}
	}

	logging.Success("crpt daemon shutdown completed")
	return nil
}
