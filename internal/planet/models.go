// Package planet archives generated planets and serves generation requests
// over HTTP.
package planet

import (
	"time"

	"github.com/google/uuid"

	"biosphere-server/internal/archive"
	"biosphere-server/internal/ecosystem"
)

// Record is an archived planet. Listings leave Document nil.
type Record struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	PlanetType     string            `json:"planet_type"`
	Seed           int64             `json:"seed"`
	EcosystemCount int               `json:"ecosystem_count"`
	SpeciesCount   int               `json:"species_count"`
	CreatedAt      time.Time         `json:"created_at"`
	Document       *archive.Document `json:"document,omitempty"`
}

// NewRecord wraps a generated planet in a record with a fresh id.
func NewRecord(p *ecosystem.Planet, seed int64) *Record {
	doc := archive.NewPlanetDocument(p)
	return &Record{
		ID:             uuid.New(),
		Name:           p.Name,
		PlanetType:     string(p.Settings.PlanetType),
		Seed:           seed,
		EcosystemCount: p.TotalEcosystemCount(),
		SpeciesCount:   p.SpeciesCount(),
		CreatedAt:      time.Now().UTC(),
		Document:       &doc,
	}
}

// Planet rebuilds the archived planet, or nil for a listing record.
func (r *Record) Planet() *ecosystem.Planet {
	if r.Document == nil || r.Document.Planet == nil {
		return nil
	}
	return r.Document.Planet.Planet()
}
