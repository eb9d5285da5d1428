package server

import (
	"log/slog"
	"net/http"

	"biosphere-server/internal/middleware"
	"biosphere-server/internal/planet"
	planetHandlers "biosphere-server/internal/planet/handlers"
	serverHandlers "biosphere-server/internal/server/handlers"
	"biosphere-server/internal/shared/database"
	"biosphere-server/internal/shared/redis"
)

type Routes struct {
	db            *database.DB
	redis         *redis.Client
	planetService *planet.Service
	logger        *slog.Logger
}

func NewRoutes(db *database.DB, rdb *redis.Client, planetService *planet.Service, logger *slog.Logger) *Routes {
	return &Routes{
		db:            db,
		redis:         rdb,
		planetService: planetService,
		logger:        logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/habitats", planetHandler.GetHabitats)
	mux.HandleFunc("/api/species", planetHandler.CreateSpecies)
	mux.HandleFunc("/api/species/batch", planetHandler.CreateSpeciesBatch)

	// Saving a planet and deleting one need a write token
	mux.Handle("/api/planets", middleware.OptionalToken(http.HandlerFunc(planetHandler.Planets)))
	mux.HandleFunc("/api/planets/{id}", planetHandler.Planet)

	// Protected endpoints
	mux.Handle("/api/names/reset", middleware.RequireToken(http.HandlerFunc(planetHandler.ResetNames)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/habitats", "/api/species", "/api/species/batch", "/api/planets"},
		"protected_endpoints", []string{"/api/names/reset", "DELETE /api/planets/{id}"},
	)

	return mux
}
