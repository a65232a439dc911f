package handler

import (
	"context"
	"time"

	"github.com/heptiolabs/healthcheck"

	"github.com/forgo/bookshelf/internal/database"
)

// maxGoroutines is the liveness ceiling before the process reports unhealthy
const maxGoroutines = 10000

// NewHealthHandler builds the liveness and readiness endpoints.
// Every entry of ready becomes a readiness check under its key.
func NewHealthHandler(ready map[string]healthcheck.Check) healthcheck.Handler {
	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(maxGoroutines))
	for name, check := range ready {
		health.AddReadinessCheck(name, check)
	}
	return health
}

// PingCheck reports a storage backend as unready when its ping fails or exceeds timeout
func PingCheck(p database.Pinger, timeout time.Duration) healthcheck.Check {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return p.Ping(ctx)
	}
}
