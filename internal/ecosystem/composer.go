// Package ecosystem assembles generated creatures into biomes and biomes
// into land masses, water bodies and whole planets.
package ecosystem

import (
	"context"
	"log/slog"

	"biosphere-server/internal/biology"
	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
	"biosphere-server/internal/naming"
	"biosphere-server/internal/shared/errors"
)

const DefaultWorkers = 4

// Composer drives the habitat resolver, the creature pipeline and the namer
// from one Roller. It is not safe for concurrent use; GenerateSpeciesBatch
// is the parallel entry point.
type Composer struct {
	roller   *dice.Roller
	registry naming.Registry
	habitats *environment.Resolver
	pipeline *biology.Pipeline
	namer    *naming.Namer
	logger   *slog.Logger
	workers  int
}

func NewComposer(roller *dice.Roller, registry naming.Registry, logger *slog.Logger) *Composer {
	return &Composer{
		roller:   roller,
		registry: registry,
		habitats: environment.NewResolver(roller, logger),
		pipeline: biology.NewPipeline(roller, logger),
		namer:    naming.New(roller, registry, logger),
		logger:   logger,
		workers:  DefaultWorkers,
	}
}

// SetWorkers bounds the goroutines GenerateSpeciesBatch runs at once.
func (c *Composer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	c.workers = n
}

func requireSettings(s *environment.Settings) (environment.Settings, error) {
	if s == nil {
		return environment.Settings{}, errors.Validation("planet settings are required")
	}
	return s.WithDefaults(), nil
}

// GenerateSingleSpecies creates one named creature. target may name a
// habitat; an empty or unknown target lets the resolver roll one.
func (c *Composer) GenerateSingleSpecies(ctx context.Context, s *environment.Settings, target string) (biology.Creature, error) {
	settings, err := requireSettings(s)
	if err != nil {
		return biology.Creature{}, err
	}
	habitat := c.habitats.Resolve(settings, target)
	return c.species(ctx, settings, habitat)
}

func (c *Composer) species(ctx context.Context, s environment.Settings, habitat environment.HabitatContext) (biology.Creature, error) {
	return runSpecies(ctx, c.pipeline, c.namer, s, habitat)
}

func runSpecies(ctx context.Context, pipeline *biology.Pipeline, namer *naming.Namer, s environment.Settings, habitat environment.HabitatContext) (biology.Creature, error) {
	if err := ctx.Err(); err != nil {
		return biology.Creature{}, err
	}
	creature, err := pipeline.Run(s, habitat)
	if err != nil {
		return biology.Creature{}, err
	}
	name, err := namer.NameCreature(ctx, creature)
	if err != nil {
		return biology.Creature{}, errors.WrapExternal("failed to name creature", err)
	}
	creature.Name = name
	return creature, nil
}

// DetermineAvailableHabitats lists the habitats creatures can be generated
// in, land first.
func (c *Composer) DetermineAvailableHabitats(s *environment.Settings) ([]string, error) {
	settings, err := requireSettings(s)
	if err != nil {
		return nil, err
	}
	return environment.AvailableHabitats(settings), nil
}

// GenerateMultipleSpecies spreads count species evenly over every available
// habitat and returns one ecosystem per habitat. When count does not divide
// evenly the first habitats take one extra species each.
func (c *Composer) GenerateMultipleSpecies(ctx context.Context, s *environment.Settings, count int) ([]Ecosystem, error) {
	settings, plan, err := c.planBatch(s, count)
	if err != nil {
		return nil, err
	}

	ecosystems := make([]Ecosystem, 0, len(plan))
	for _, slot := range plan {
		eco, err := c.newEcosystem(ctx, slot.habitat)
		if err != nil {
			return nil, err
		}
		for i := 0; i < slot.count; i++ {
			creature, err := c.species(ctx, settings, slot.habitat)
			if err != nil {
				if skippable(err) {
					c.skip(err, slot.habitat)
					continue
				}
				return nil, err
			}
			eco.Creatures = append(eco.Creatures, creature)
		}
		ecosystems = append(ecosystems, eco)
	}
	return ecosystems, nil
}

type batchSlot struct {
	habitat environment.HabitatContext
	count   int
}

func (c *Composer) planBatch(s *environment.Settings, count int) (environment.Settings, []batchSlot, error) {
	settings, err := requireSettings(s)
	if err != nil {
		return settings, nil, err
	}
	if count < 0 {
		return settings, nil, errors.Validationf("species count must not be negative, got %d", count)
	}

	habitats := environment.AvailableHabitats(settings)
	if len(habitats) == 0 {
		return settings, nil, nil
	}

	per, extra := count/len(habitats), count%len(habitats)
	plan := make([]batchSlot, len(habitats))
	for i, h := range habitats {
		ctx, ok := environment.LookupHabitat(h)
		if !ok {
			ctx = environment.HabitatContext{Habitat: h, Zone: environment.ZoneLand}
		}
		n := per
		if i < extra {
			n++
		}
		plan[i] = batchSlot{habitat: ctx, count: n}
	}
	return settings, plan, nil
}

func (c *Composer) newEcosystem(ctx context.Context, habitat environment.HabitatContext) (Ecosystem, error) {
	name, err := c.namer.NameBiome(ctx, habitat.Habitat)
	if err != nil {
		return Ecosystem{}, errors.WrapExternal("failed to name biome", err)
	}
	return Ecosystem{
		Name:        name,
		HabitatType: habitat.Habitat,
		Zone:        habitat.Zone,
		EcosystemID: c.roller.D6(3),
		LocationID:  c.roller.D6(3),
		Creatures:   []biology.Creature{},
	}, nil
}

// skippable reports whether a creature failure should only drop that
// creature.
func skippable(err error) bool {
	return errors.IsGeneration(err)
}

func (c *Composer) skip(err error, habitat environment.HabitatContext) {
	c.logger.Warn("Skipping creature that failed to generate",
		"component", "composer",
		"habitat", habitat.Habitat,
		"zone", habitat.Zone,
		"error", err,
	)
}

// ResetNames clears the naming session shared by every composer over the
// same registry.
func (c *Composer) ResetNames(ctx context.Context) error {
	if err := c.registry.Reset(ctx); err != nil {
		return errors.WrapExternal("failed to reset names", err)
	}
	c.logger.Info("Naming session reset", "component", "composer")
	return nil
}
