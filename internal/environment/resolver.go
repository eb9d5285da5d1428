package environment

import (
	"log/slog"

	"biosphere-server/internal/dice"
)

// Resolver fixes the (habitat, zone) pair creatures and biomes are
// generated in.
type Resolver struct {
	roller *dice.Roller
	logger *slog.Logger
}

func NewResolver(roller *dice.Roller, logger *slog.Logger) *Resolver {
	return &Resolver{
		roller: roller,
		logger: logger,
	}
}

// Resolve picks a habitat for s. A target naming a known habitat is used
// as-is; an unknown target is logged and a habitat is rolled instead.
func (r *Resolver) Resolve(s Settings, target string) HabitatContext {
	if target != "" {
		if ctx, ok := LookupHabitat(target); ok {
			return ctx
		}
		r.logger.Warn("Unknown target habitat, rolling one instead",
			"component", "habitat_resolver",
			"target", target,
		)
	}
	return r.ResolveInZone(s, r.Zone(s))
}

// Zone rolls 1d6 plus the hydrology modifier; 3 or less is land. Gas
// giants, dry worlds and fully flooded worlds skip the roll.
func (r *Resolver) Zone(s Settings) Zone {
	switch {
	case s.IsJovian():
		return ZoneJovian
	case s.Hydrology <= 0:
		return ZoneLand
	case s.Hydrology >= 100:
		return ZoneWater
	}

	if r.roller.RollDice(1, 6, HydrologyModifier(s.Hydrology)) <= 3 {
		return ZoneLand
	}
	return ZoneWater
}

// ResolveInZone rolls 3d6 plus the hydrology modifier against the zone's
// viable habitats.
func (r *Resolver) ResolveInZone(s Settings, zone Zone) HabitatContext {
	candidates := ViableHabitats(zone, s)
	if len(candidates) == 0 {
		fallback := FallbackLandHabitat
		if zone == ZoneWater {
			fallback = FallbackWaterHabitat
		}
		return HabitatContext{Habitat: fallback, Zone: zone}
	}

	modifier := HydrologyModifier(s.Hydrology)
	if zone == ZoneJovian {
		modifier = 0
	}
	roll := r.roller.RollDice(3, 6, modifier)
	return HabitatContext{Habitat: dice.Seek(candidates, roll), Zone: zone}
}
