package ecosystem

import (
	"context"

	"golang.org/x/sync/errgroup"

	"biosphere-server/internal/biology"
	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

// GenerateSpeciesBatch is GenerateMultipleSpecies spread over worker
// goroutines. Every habitat gets its own Roller derived from the composer's
// stream before any worker starts, so a seeded composer yields the same
// ecosystems however the workers are scheduled. Names are unique through
// the shared registry but depend on which worker claims first.
func (c *Composer) GenerateSpeciesBatch(ctx context.Context, s *environment.Settings, count int) ([]Ecosystem, error) {
	settings, plan, err := c.planBatch(s, count)
	if err != nil {
		return nil, err
	}

	ecosystems := make([]Ecosystem, len(plan))
	rollers := make([]*dice.Roller, len(plan))
	for i, slot := range plan {
		eco, err := c.newEcosystem(ctx, slot.habitat)
		if err != nil {
			return nil, err
		}
		ecosystems[i] = eco
		rollers[i] = c.roller.Derive()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, slot := range plan {
		g.Go(func() error {
			roller := rollers[i]
			pipeline := biology.NewPipeline(roller, c.logger)
			namer := c.namer.WithRoller(roller)

			creatures := make([]biology.Creature, 0, slot.count)
			for n := 0; n < slot.count; n++ {
				creature, err := runSpecies(gctx, pipeline, namer, settings, slot.habitat)
				if err != nil {
					if skippable(err) {
						c.skip(err, slot.habitat)
						continue
					}
					return err
				}
				creatures = append(creatures, creature)
			}
			ecosystems[i].Creatures = creatures
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info("Species batch generated",
		"component", "composer",
		"operation", "generate_species_batch",
		"habitats", len(plan),
		"requested", count,
		"workers", c.workers,
	)
	return ecosystems, nil
}
