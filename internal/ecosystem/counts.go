package ecosystem

import (
	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

// landMassCount derives how many land masses (cloud bands on a gas giant)
// a planet carries from its land-mass target and hydrology.
func landMassCount(s environment.Settings) int {
	if s.Hydrology >= 100 && !s.IsJovian() {
		return 0
	}
	count := s.LandMasses
	if s.Hydrology > 80 {
		count = max(1, count-1)
	}
	if s.Hydrology < 20 {
		count++
	}
	if s.IsJovian() {
		count = max(1, count)
	}
	return count
}

// waterBodyCount is zero on dry worlds and gas giants.
func waterBodyCount(s environment.Settings) int {
	if s.Hydrology <= 0 || s.IsJovian() {
		return 0
	}
	count := max(1, s.LandMasses-2)
	if s.Hydrology > 80 {
		count++
	}
	if s.Hydrology < 20 {
		count = max(1, count-1)
	}
	return count
}

func oceanWorld(p environment.PlanetType) bool {
	return p == environment.PlanetOceanic || p == environment.PlanetPanthalassic
}

func biomeCount(r *dice.Roller, s environment.Settings, land bool) int {
	count := r.D6(1)
	if land {
		count = r.D6(4)
	}

	switch {
	case s.PlanetType == environment.PlanetGaian:
		count++
	case oceanWorld(s.PlanetType):
		if land {
			count = max(1, count-1)
		} else {
			count++
		}
	case s.PlanetType == environment.PlanetArid && !land:
		count = max(1, count-1)
	}
	return count
}

// speciesCount rolls 6d6 species per biome before archetype and zone
// adjustments.
func speciesCount(r *dice.Roller, s environment.Settings, zone environment.Zone) int {
	count := r.D6(6)
	switch s.PlanetType {
	case environment.PlanetGaian:
		count++
	case environment.PlanetArid, environment.PlanetSnowball:
		count = max(1, count-1)
	}

	if zone == environment.ZoneWater && s.Hydrology > 80 {
		count++
	}
	if zone == environment.ZoneLand && s.Hydrology < 20 {
		count = max(1, count-1)
	}
	return count
}

const (
	WaterOcean = "Ocean"
	WaterSea   = "Sea"
	WaterLake  = "Lake"
)

// waterType seeks 3d6 over a table whose thresholds shift with hydrology:
// wet worlds favor oceans, dry ones lakes.
func waterType(r *dice.Roller, s environment.Settings) string {
	ocean, sea, lake := 6, 4, 2
	switch {
	case s.Hydrology > 80:
		ocean = 8
		lake = max(1, lake-1)
	case s.Hydrology < 30:
		lake = 6
		ocean = max(1, ocean-1)
	}
	table := dice.NewTable(
		dice.Entry[string]{Outcome: WaterOcean, Threshold: ocean},
		dice.Entry[string]{Outcome: WaterSea, Threshold: sea},
		dice.Entry[string]{Outcome: WaterLake, Threshold: lake},
	)
	return dice.Seek3d6(r, table)
}
