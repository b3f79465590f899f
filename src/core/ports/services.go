package ports

import (
	"context"
)

// HealthChecker is implemented by any component that can report whether it
// is reachable. The detailed health endpoint aggregates one of these per
// registered component.
type HealthChecker interface {
	// Health checks if the component is reachable.
	Health(ctx context.Context) error
}
