package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"starterkit/src/core/ports"
)

type fakeChecker struct {
	err error
}

func (f fakeChecker) Health(ctx context.Context) error { return f.err }

func TestLiveness(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewHealthService("starterkit", nil, log)

	status := svc.Liveness()

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "starterkit", status.Service)
	assert.False(t, status.Timestamp.IsZero())
	assert.Nil(t, status.Components)
}

func TestCheckAllHealthy(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewHealthService("starterkit", map[string]ports.HealthChecker{
		"database": fakeChecker{},
	}, log)

	status := svc.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "healthy", status.Components["database"].Status)
}

func TestCheckDegraded(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewHealthService("starterkit", map[string]ports.HealthChecker{
		"database": fakeChecker{err: errors.New("dial tcp: refused")},
	}, log)

	status := svc.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unhealthy", status.Components["database"].Status)
	assert.Contains(t, status.Components["database"].Message, "refused")
}
