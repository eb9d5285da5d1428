package ecosystem

import (
	"biosphere-server/internal/biology"
	"biosphere-server/internal/environment"
)

// Ecosystem is one biome: a habitat patch and the species living in it.
type Ecosystem struct {
	Name        string             `json:"name"`
	HabitatType string             `json:"habitat_type"`
	Zone        environment.Zone   `json:"zone"`
	EcosystemID int                `json:"ecosystem_id"`
	LocationID  int                `json:"location_id"`
	Creatures   []biology.Creature `json:"creatures"`
}

type LandMass struct {
	Name   string      `json:"name"`
	Biomes []Ecosystem `json:"biomes"`
}

type WaterBody struct {
	Name      string      `json:"name"`
	WaterType string      `json:"water_type"`
	Biomes    []Ecosystem `json:"biomes"`
}

// Planet owns its whole tree; nothing in it is shared with another planet.
type Planet struct {
	Name        string               `json:"name"`
	Settings    environment.Settings `json:"settings"`
	LandMasses  []LandMass           `json:"land_masses"`
	WaterBodies []WaterBody          `json:"water_bodies"`
}

func (p *Planet) TotalEcosystemCount() int {
	total := 0
	for _, lm := range p.LandMasses {
		total += len(lm.Biomes)
	}
	for _, wb := range p.WaterBodies {
		total += len(wb.Biomes)
	}
	return total
}

func (p *Planet) SpeciesCount() int {
	total := 0
	p.Walk(func(e *Ecosystem) {
		total += len(e.Creatures)
	})
	return total
}

// Walk calls fn for every biome, land masses first.
func (p *Planet) Walk(fn func(*Ecosystem)) {
	for i := range p.LandMasses {
		for j := range p.LandMasses[i].Biomes {
			fn(&p.LandMasses[i].Biomes[j])
		}
	}
	for i := range p.WaterBodies {
		for j := range p.WaterBodies[i].Biomes {
			fn(&p.WaterBodies[i].Biomes[j])
		}
	}
}

func (e *Ecosystem) SpeciesCount() int {
	return len(e.Creatures)
}
