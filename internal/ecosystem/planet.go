package ecosystem

import (
	"context"

	"biosphere-server/internal/biology"
	"biosphere-server/internal/environment"
	"biosphere-server/internal/shared/errors"
)

const (
	landMassLabel  = "Continent"
	cloudBandLabel = "Cloud Band"
)

// GeneratePlanet builds the whole tree for s. Land masses or water bodies
// left without biomes are dropped, and a creature that fails to generate is
// skipped rather than failing the planet.
func (c *Composer) GeneratePlanet(ctx context.Context, s *environment.Settings) (*Planet, error) {
	settings, err := requireSettings(s)
	if err != nil {
		return nil, err
	}

	archetype := string(settings.PlanetType)
	if archetype == "" {
		archetype = "World"
	}
	name, err := c.namer.NameBiome(ctx, archetype)
	if err != nil {
		return nil, errors.WrapExternal("failed to name planet", err)
	}

	planet := &Planet{
		Name:        name,
		Settings:    settings,
		LandMasses:  []LandMass{},
		WaterBodies: []WaterBody{},
	}

	log := c.logger.With("component", "composer", "operation", "generate_planet", "planet", name)
	log.Info("Generating planet",
		"planet_type", settings.PlanetType,
		"hydrology", settings.Hydrology,
		"land_masses", settings.LandMasses,
	)

	label := landMassLabel
	if settings.IsJovian() {
		label = cloudBandLabel
	}
	for i := landMassCount(settings); i > 0; i-- {
		lm, err := c.landMass(ctx, settings, label)
		if err != nil {
			return nil, err
		}
		if len(lm.Biomes) > 0 {
			planet.LandMasses = append(planet.LandMasses, lm)
		}
	}

	for i := waterBodyCount(settings); i > 0; i-- {
		wb, err := c.waterBody(ctx, settings)
		if err != nil {
			return nil, err
		}
		if len(wb.Biomes) > 0 {
			planet.WaterBodies = append(planet.WaterBodies, wb)
		}
	}

	log.Info("Planet generation completed",
		"land_masses", len(planet.LandMasses),
		"water_bodies", len(planet.WaterBodies),
		"ecosystems", planet.TotalEcosystemCount(),
		"species", planet.SpeciesCount(),
	)
	return planet, nil
}

func (c *Composer) landMass(ctx context.Context, s environment.Settings, label string) (LandMass, error) {
	name, err := c.namer.NameBiome(ctx, label)
	if err != nil {
		return LandMass{}, errors.WrapExternal("failed to name land mass", err)
	}
	lm := LandMass{Name: name, Biomes: []Ecosystem{}}

	zone := environment.ZoneLand
	if s.IsJovian() {
		zone = environment.ZoneJovian
	}
	for i := biomeCount(c.roller, s, true); i > 0; i-- {
		eco, err := c.biome(ctx, s, zone)
		if err != nil {
			return LandMass{}, err
		}
		lm.Biomes = append(lm.Biomes, eco)
	}
	return lm, nil
}

func (c *Composer) waterBody(ctx context.Context, s environment.Settings) (WaterBody, error) {
	kind := waterType(c.roller, s)
	name, err := c.namer.NameBiome(ctx, kind)
	if err != nil {
		return WaterBody{}, errors.WrapExternal("failed to name water body", err)
	}
	wb := WaterBody{Name: name, WaterType: kind, Biomes: []Ecosystem{}}

	for i := biomeCount(c.roller, s, false); i > 0; i-- {
		eco, err := c.biome(ctx, s, environment.ZoneWater)
		if err != nil {
			return WaterBody{}, err
		}
		wb.Biomes = append(wb.Biomes, eco)
	}
	return wb, nil
}

func (c *Composer) biome(ctx context.Context, s environment.Settings, zone environment.Zone) (Ecosystem, error) {
	habitat := c.habitats.ResolveInZone(s, zone)
	eco, err := c.newEcosystem(ctx, habitat)
	if err != nil {
		return Ecosystem{}, err
	}

	for i := speciesCount(c.roller, s, zone); i > 0; i-- {
		creature, err := c.species(ctx, s, habitat)
		if err != nil {
			if skippable(err) {
				c.skip(err, habitat)
				continue
			}
			return Ecosystem{}, err
		}
		eco.Creatures = append(eco.Creatures, creature)
	}
	return eco, nil
}

// Creatures flattens the planet's species in tree order.
func (p *Planet) Creatures() []biology.Creature {
	var out []biology.Creature
	p.Walk(func(e *Ecosystem) {
		out = append(out, e.Creatures...)
	})
	return out
}
