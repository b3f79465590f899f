package usecase

import (
	"context"
	"log/slog"
	"time"

	"starterkit/src/core/ports"
)

// HealthService handles health check logic.
type HealthService struct {
	serviceName string
	components  map[string]ports.HealthChecker
	log         *slog.Logger
}

// NewHealthService creates a new HealthService. Components are named
// health checkers (typically just "database") reported by the detailed
// endpoint.
func NewHealthService(serviceName string, components map[string]ports.HealthChecker, log *slog.Logger) *HealthService {
	return &HealthService{
		serviceName: serviceName,
		components:  components,
		log:         log,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Service    string                     `json:"service"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Liveness returns the basic always-on health payload. It deliberately
// touches no dependencies so load balancers keep routing to an instance
// whose database is briefly down.
func (s *HealthService) Liveness() *HealthStatus {
	return &HealthStatus{
		Status:    "healthy",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC(),
	}
}

// Check performs a health check of all registered components.
// Returns the overall health status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := s.Liveness()
	status.Components = make(map[string]ComponentHealth, len(s.components))

	for name, component := range s.components {
		if err := component.Health(ctx); err != nil {
			s.log.Warn("component unhealthy", "component", name, "error", err)
			status.Status = "degraded"
			status.Components[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			continue
		}
		status.Components[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}
