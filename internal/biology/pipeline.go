package biology

import (
	"fmt"
	"log/slog"

	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
	"biosphere-server/internal/shared/errors"
)

// Pipeline runs every trait resolver for one creature at a time. It is not
// safe for concurrent use because it shares its Roller.
type Pipeline struct {
	roller *dice.Roller
	logger *slog.Logger
}

func NewPipeline(roller *dice.Roller, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		roller: roller,
		logger: logger,
	}
}

// Run resolves a creature living in habitat. Unset settings fields and an
// empty habitat are replaced by defaults. A fault in any resolver aborts
// only this creature and is returned as a generation error.
func (p *Pipeline) Run(s environment.Settings, habitat environment.HabitatContext) (c Creature, err error) {
	s = s.WithDefaults()
	habitat = completeHabitat(habitat)
	c = Creature{Habitat: habitat}

	defer func() {
		if rec := recover(); rec != nil {
			failed := c.Stage + 1
			p.logger.Error("Creature generation failed",
				"component", "creature_pipeline",
				"operation", "run",
				"habitat", habitat.Habitat,
				"zone", habitat.Zone,
				"stage", failed.String(),
				"panic", rec,
			)
			err = errors.WrapGeneration(
				fmt.Sprintf("creature generation failed during %s", failed),
				fmt.Errorf("%v", rec),
			)
			c = Creature{}
		}
	}()

	c.ChemicalBasis = resolveChemistry(p.roller, s)
	c.TrophicLevel = resolveTrophic(p.roller)
	c.Stage = StageClassified

	c.Locomotion = resolveLocomotion(p.roller, c)
	c.Stage = StageMobile

	c.Size = resolveSize(p.roller, s, c)
	c.Stage = StageSized

	c.Physiology = resolvePhysiology(p.roller, s, c)
	c.Stage = StagePhysiology

	c.Reproduction = resolveReproduction(p.roller, c)
	c.Stage = StageReproduction

	c.Senses = resolveSenses(p.roller, s, c)
	c.Stage = StageSenses

	c.Behavior = resolveBehavior(p.roller, c)
	c.Stage = StageBehavior

	return c, nil
}

func completeHabitat(h environment.HabitatContext) environment.HabitatContext {
	if h.Habitat == "" {
		switch h.Zone {
		case environment.ZoneWater:
			h.Habitat = environment.FallbackWaterHabitat
		case environment.ZoneJovian:
			h.Habitat = environment.HabitatTable(environment.ZoneJovian).Outcomes()[0]
		default:
			h.Zone = environment.ZoneLand
			h.Habitat = environment.FallbackLandHabitat
		}
		return h
	}
	if h.Zone == "" {
		if zone, ok := environment.ZoneOf(h.Habitat); ok {
			h.Zone = zone
		} else {
			h.Zone = environment.ZoneLand
		}
	}
	return h
}
