package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Pinger is the readiness probe surface; the sqlite registry satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	registry  Pinger
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// VersionInfo represents build/version information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime string, registry Pinger, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns the overall service health
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
		Services: map[string]interface{}{},
	}

	if s.registry != nil {
		if err := s.registry.Ping(ctx); err != nil {
			status.Status = "degraded"
			status.Services["registry"] = map[string]string{"status": "down", "message": err.Error()}
		} else {
			status.Services["registry"] = map[string]string{"status": "up"}
		}
	}

	return status
}

// ReadinessCheck reports whether the service can take traffic.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := s.HealthCheck(ctx)
	if status.Status != "healthy" {
		status.Status = "not_ready"
	} else {
		status.Status = "ready"
	}
	return status
}

// LivenessCheck is a minimal is-the-process-up probe.
func (s *HealthService) LivenessCheck(_ context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   s.version,
	}
}

// Version returns build information.
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		GoVersion: runtime.Version(),
	}
}
