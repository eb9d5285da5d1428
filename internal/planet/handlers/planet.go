package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"biosphere-server/internal/archive"
	"biosphere-server/internal/environment"
	"biosphere-server/internal/middleware"
	"biosphere-server/internal/planet"
	"biosphere-server/internal/shared/errors"
	"biosphere-server/internal/shared/response"
)

const maxBodyBytes = 1 << 20

type PlanetHandler struct {
	service *planet.Service
}

func NewPlanetHandler(service *planet.Service) *PlanetHandler {
	return &PlanetHandler{service: service}
}

type SpeciesRequest struct {
	planet.Request
	Habitat string `json:"habitat,omitempty"`
}

type SpeciesResponse struct {
	Seed     int64               `json:"seed"`
	Creature archive.CreatureDTO `json:"creature"`
}

type BatchRequest struct {
	planet.Request
	Count int `json:"count"`
}

type BatchResponse struct {
	Seed       int64                  `json:"seed"`
	Ecosystems []archive.EcosystemDTO `json:"ecosystems"`
}

type PlanetRequest struct {
	planet.Request
	Save bool `json:"save,omitempty"`
}

type PlanetResponse struct {
	Seed   int64             `json:"seed"`
	ID     *uuid.UUID        `json:"id,omitempty"`
	Planet archive.PlanetDTO `json:"planet"`
}

type HabitatsResponse struct {
	Settings environment.Settings `json:"settings"`
	Habitats []string             `json:"habitats"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.WrapValidation("invalid JSON in request body", err)
	}
	return nil
}

func (h *PlanetHandler) GetHabitats(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_habitats")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	query := r.URL.Query()
	settings, err := h.service.ResolveSettings(planet.Request{Preset: query.Get("preset")})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if err := overlaySettings(&settings, query); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	habitats, err := h.service.Habitats(planet.Request{Settings: &settings})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if habitats == nil {
		habitats = []string{}
	}

	response.Success(w, http.StatusOK, HabitatsResponse{Settings: settings.WithDefaults(), Habitats: habitats})
}

// overlaySettings applies query parameters on top of a preset.
func overlaySettings(s *environment.Settings, query url.Values) error {
	floats := map[string]*float64{
		"temperature": &s.Temperature,
		"hydrology":   &s.Hydrology,
		"gravity":     &s.Gravity,
	}
	for key, field := range floats {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.WrapValidation("invalid "+key, err)
		}
		*field = v
	}

	if raw := query.Get("land_masses"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return errors.WrapValidation("invalid land_masses", err)
		}
		s.LandMasses = v
	}
	if raw := query.Get("chemistry"); raw != "" {
		s.PrimaryChemistry = environment.ChemistryBasis(raw)
	}
	return nil
}

func (h *PlanetHandler) CreateSpecies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_species")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req SpeciesRequest
	if err := decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	creature, seed, err := h.service.Species(ctx, req.Request, req.Habitat)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, SpeciesResponse{Seed: seed, Creature: archive.FromCreature(creature)})
}

func (h *PlanetHandler) CreateSpeciesBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_species_batch")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req BatchRequest
	if err := decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	ecosystems, seed, err := h.service.SpeciesBatch(ctx, req.Request, req.Count)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	doc := archive.NewSpeciesDocument(ecosystems)
	response.Success(w, http.StatusOK, BatchResponse{Seed: seed, Ecosystems: doc.Ecosystems})
}

func (h *PlanetHandler) Planets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPlanets(w, r)
	case http.MethodPost:
		h.createPlanet(w, r)
	default:
		response.Error(w, r, slog.With("handler", "planets"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *PlanetHandler) createPlanet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_planet")

	var req PlanetRequest
	if err := decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if claims := middleware.GetClaimsFromContext(r); req.Save && (claims == nil || !claims.CanWrite()) {
		response.Error(w, r, logger, errors.Unauthorized("saving a planet requires a write token"))
		return
	}

	p, rec, seed, err := h.service.Planet(ctx, req.Request, req.Save)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	resp := PlanetResponse{Seed: seed, Planet: archive.FromPlanet(p)}
	status := http.StatusOK
	if rec != nil {
		resp.ID = &rec.ID
		status = http.StatusCreated
	}
	response.Success(w, status, resp)
}

func (h *PlanetHandler) listPlanets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_planets")

	limit, err := intParam(r, "limit")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	offset, err := intParam(r, "offset")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	records, err := h.service.List(ctx, limit, offset)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, records)
}

func intParam(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+key, err)
	}
	return v, nil
}

// Planet serves a single archived planet. Deletion requires a write token.
func (h *PlanetHandler) Planet(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getPlanet(w, r)
	case http.MethodDelete:
		middleware.RequireToken(http.HandlerFunc(h.deletePlanet)).ServeHTTP(w, r)
	default:
		response.Error(w, r, slog.With("handler", "planet"), errors.MethodNotAllowed(r.Method))
	}
}

func planetID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return uuid.Nil, errors.Validation("planet ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.WrapValidation("invalid planet ID format", err)
	}
	return id, nil
}

func (h *PlanetHandler) getPlanet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_planet")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	rec, err := h.service.Get(ctx, id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, rec)
}

func (h *PlanetHandler) deletePlanet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "delete_planet")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusNoContent, nil)
}

func (h *PlanetHandler) ResetNames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "reset_names")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	if err := h.service.ResetNames(ctx); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusNoContent, nil)
}
