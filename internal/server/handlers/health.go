package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"biosphere-server/internal/shared/database"
	"biosphere-server/internal/shared/redis"
	"biosphere-server/internal/shared/response"
)

type HealthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	Database     string `json:"database"`
	NameRegistry string `json:"name_registry"`
}

type HealthHandler struct {
	db    *database.DB
	redis *redis.Client
}

// NewHealthHandler reports on db and, when configured, the Redis name
// registry. rdb may be nil.
func NewHealthHandler(db *database.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "disconnected"
	if err := h.db.PingContext(ctx); err == nil {
		dbStatus = "connected"
	} else {
		logger.Warn("Database ping failed", "error", err)
	}

	registry := "memory"
	if h.redis != nil {
		registry = "redis"
		if !h.redis.Healthy(ctx) {
			logger.Warn("Redis ping failed")
			registry = "redis_unreachable"
		}
	}

	status := "healthy"
	if dbStatus != "connected" || registry == "redis_unreachable" {
		status = "degraded"
	}

	resp := HealthResponse{
		Status:       status,
		Timestamp:    time.Now().Format(time.RFC3339),
		Database:     dbStatus,
		NameRegistry: registry,
	}

	response.Success(w, http.StatusOK, resp)
}
