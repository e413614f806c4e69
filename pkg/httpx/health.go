package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const healthTimeout = 2 * time.Second

// Probe results reported per dependency.
const (
	probeOK          = "ok"
	probeDisabled    = "disabled"
	probeUnreachable = "unreachable"
)

// HealthChecker is anything with a Ping, e.g. *cache.RedisClient or *events.EventBus.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks lists the dependencies /health probes. A nil Redis means the
// read-model projection is not configured and is reported as "disabled".
type HealthChecks struct {
	EventBus HealthChecker
	Redis    HealthChecker
}

type healthResponse struct {
	Status   string `json:"status"`
	EventBus string `json:"event_bus"`
	Redis    string `json:"redis"`
}

// HealthHandler pings every configured dependency in parallel. Any
// unreachable dependency turns the answer into 503 "degraded".
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		var resp healthResponse
		var wg sync.WaitGroup
		for _, c := range []struct {
			checker HealthChecker
			out     *string
		}{
			{checks.EventBus, &resp.EventBus},
			{checks.Redis, &resp.Redis},
		} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				*c.out = probe(ctx, c.checker)
			}()
		}
		wg.Wait()

		code := http.StatusOK
		resp.Status = probeOK
		if resp.EventBus == probeUnreachable || resp.Redis == probeUnreachable {
			code, resp.Status = http.StatusServiceUnavailable, "degraded"
		}
		JSON(w, code, resp)
	}
}

func probe(ctx context.Context, c HealthChecker) string {
	switch {
	case c == nil:
		return probeDisabled
	case c.Ping(ctx) != nil:
		return probeUnreachable
	default:
		return probeOK
	}
}
