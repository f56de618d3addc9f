// Package observability starts process-wide tracing and profiling.
package observability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/season-engine/internal/config"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// Telemetry owns the exporters started by Start. The zero value is a valid
// no-op.
type Telemetry struct {
	tracing  bool
	profiler *pyroscope.Profiler
}

// Start configures Uptrace tracing and Pyroscope profiling according to
// cfg. Each is skipped, with an info log, when disabled or unconfigured.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}

	t := &Telemetry{}
	t.tracing = startTracing(cfg, logger)

	profiler, err := startProfiling(cfg, logger)
	if err != nil {
		_ = t.Shutdown(context.Background())
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	t.profiler = profiler
	return t, nil
}

// Shutdown flushes pending spans and stops the profiler.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("uptrace shutdown: %w", err))
		}
	}
	if t.profiler != nil {
		if err := t.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("pyroscope stop: %w", err))
		}
	}
	return errors.Join(errs...)
}

func startTracing(cfg config.Config, logger *logging.Logger) bool {
	if !cfg.UptraceEnabled {
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return false
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return false
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("season.storage_driver", cfg.StorageDriver),
			attribute.String("season.league_name", cfg.SeasonLeagueName),
		),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)
	return true
}

func startProfiling(cfg config.Config, logger *logging.Logger) (*pyroscope.Profiler, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil, nil
	}

	appName := strings.TrimSpace(cfg.PyroscopeAppName)
	if appName == "" {
		appName = cfg.ServiceName
	}

	// Projection workers and match sessions are goroutine heavy; CPU, heap
	// and goroutine profiles cover them.
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   appName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"version": cfg.ServiceVersion,
			"storage": cfg.StorageDriver,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", appName,
		"upload_rate", cfg.PyroscopeUploadRate,
	)
	return profiler, nil
}
