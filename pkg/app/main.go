package app

import (
	"github.com/ghuser/equipstore/pkg/cache"
	"github.com/ghuser/equipstore/pkg/events"
	"github.com/ghuser/equipstore/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's service container during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "supply altered", "equipment_id", id)
//	app.Logger.ErrorContext(ctx, "failed to project", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil when REDIS_URL is empty
}
