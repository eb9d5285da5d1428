package planet

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"biosphere-server/internal/biology"
	"biosphere-server/internal/dice"
	"biosphere-server/internal/ecosystem"
	"biosphere-server/internal/environment"
	"biosphere-server/internal/naming"
	"biosphere-server/internal/shared/config"
	"biosphere-server/internal/shared/errors"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Request selects the world a generation call runs against. Settings win
// over Preset; with neither the configured default preset is used. A nil
// Seed draws a fresh seed from the service's master roller.
type Request struct {
	Settings *environment.Settings `json:"settings,omitempty"`
	Preset   string                `json:"preset,omitempty"`
	Seed     *int64                `json:"seed,omitempty"`
}

// Service serves generation requests. Every call gets its own Composer
// seeded from the master roller, so a returned seed replays the same rolls.
type Service struct {
	repo     *Repository
	registry naming.Registry
	cfg      config.GenerationConfig
	logger   *slog.Logger

	mu     sync.Mutex
	roller *dice.Roller
}

// NewService builds a service. repo may be nil when planets are never
// archived.
func NewService(repo *Repository, registry naming.Registry, cfg config.GenerationConfig, logger *slog.Logger) *Service {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Generation service initialized",
		"component", "planet_service",
		"seed", seed,
		"default_preset", cfg.DefaultPreset,
		"workers", cfg.Workers,
	)

	return &Service{
		repo:     repo,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
		roller:   dice.NewRoller(seed),
	}
}

// ResolveSettings turns a request into validated, defaulted settings.
func (s *Service) ResolveSettings(req Request) (environment.Settings, error) {
	if req.Settings != nil {
		settings := req.Settings.WithDefaults()
		return settings, settings.Validate()
	}

	name := req.Preset
	if name == "" {
		name = s.cfg.DefaultPreset
	}
	planetType, ok := environment.ParsePlanetType(name)
	if !ok {
		return environment.Settings{}, errors.Validationf("unknown planet preset %q", name)
	}
	settings, _ := environment.Preset(planetType)
	return settings, nil
}

func (s *Service) composer(seed *int64) (*ecosystem.Composer, int64) {
	var roller *dice.Roller
	if seed != nil {
		roller = dice.NewRoller(*seed)
	} else {
		s.mu.Lock()
		roller = s.roller.Derive()
		s.mu.Unlock()
	}

	c := ecosystem.NewComposer(roller, s.registry, s.logger)
	c.SetWorkers(s.cfg.Workers)
	return c, roller.Seed()
}

func (s *Service) Habitats(req Request) ([]string, error) {
	settings, err := s.ResolveSettings(req)
	if err != nil {
		return nil, err
	}
	c, _ := s.composer(req.Seed)
	return c.DetermineAvailableHabitats(&settings)
}

func (s *Service) Species(ctx context.Context, req Request, habitat string) (biology.Creature, int64, error) {
	settings, err := s.ResolveSettings(req)
	if err != nil {
		return biology.Creature{}, 0, err
	}
	c, seed := s.composer(req.Seed)
	creature, err := c.GenerateSingleSpecies(ctx, &settings, habitat)
	return creature, seed, err
}

// SpeciesBatch spreads count species over every available habitat using
// the parallel batch generator.
func (s *Service) SpeciesBatch(ctx context.Context, req Request, count int) ([]ecosystem.Ecosystem, int64, error) {
	if count > s.cfg.MaxSpeciesBatch {
		return nil, 0, errors.Validationf("species count %d exceeds the limit of %d", count, s.cfg.MaxSpeciesBatch)
	}
	settings, err := s.ResolveSettings(req)
	if err != nil {
		return nil, 0, err
	}

	logger := s.logger.With("component", "planet_service", "operation", "species_batch", "count", count)
	c, seed := s.composer(req.Seed)
	ecosystems, err := c.GenerateSpeciesBatch(ctx, &settings, count)
	if err != nil {
		return nil, seed, err
	}
	logger.Debug("Species batch generated", "seed", seed, "ecosystems", len(ecosystems))
	return ecosystems, seed, nil
}

// Planet generates a whole planet and, when save is set, archives it. The
// returned record is nil unless the planet was saved.
func (s *Service) Planet(ctx context.Context, req Request, save bool) (*ecosystem.Planet, *Record, int64, error) {
	settings, err := s.ResolveSettings(req)
	if err != nil {
		return nil, nil, 0, err
	}
	if save && s.repo == nil {
		return nil, nil, 0, errors.WrapInternal("planet archive is not configured", nil)
	}

	logger := s.logger.With("component", "planet_service", "operation", "generate_planet")
	c, seed := s.composer(req.Seed)
	p, err := c.GeneratePlanet(ctx, &settings)
	if err != nil {
		return nil, nil, seed, err
	}

	if !save {
		return p, nil, seed, nil
	}

	rec := NewRecord(p, seed)
	if err := s.repo.Create(ctx, rec, nil); err != nil {
		return nil, nil, seed, err
	}
	logger.Info("Planet archived",
		"planet_id", rec.ID,
		"name", rec.Name,
		"species", rec.SpeciesCount,
		"seed", seed,
	)
	return p, rec, seed, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if err := s.requireArchive(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		return nil, errors.Validationf("offset must not be negative, got %d", offset)
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	if err := s.requireArchive(); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.requireArchive(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ResetNames forgets every claimed species and biome name.
func (s *Service) ResetNames(ctx context.Context) error {
	if err := s.registry.Reset(ctx); err != nil {
		return errors.WrapExternal("failed to reset name registry", err)
	}
	s.logger.Info("Name registry reset", "component", "planet_service")
	return nil
}

func (s *Service) requireArchive() error {
	if s.repo == nil {
		return errors.WrapInternal("planet archive is not configured", nil)
	}
	return nil
}
