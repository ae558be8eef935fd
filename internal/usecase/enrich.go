// Package usecase contains the request orchestrators and the normalization
// pipeline that turns raw upstream arrivals into the served response shape.
package usecase

import (
	"context"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

// Enricher attaches resolved airport metadata to flight records. All codes
// referenced by a batch are resolved in one call so the metadata backend can
// choose between per-code lookups and a single bulk load.
type Enricher struct {
	resolver domain.MetadataResolver
}

// NewEnricher creates an enricher backed by the given resolver.
func NewEnricher(resolver domain.MetadataResolver) *Enricher {
	return &Enricher{resolver: resolver}
}

// Enrich resolves every airport code referenced by the flights and fills in
// city, country, flag and display-name metadata in place. Codes the resolver
// does not know stay blank; enrichment never fails a request.
func (e *Enricher) Enrich(ctx context.Context, flights []domain.FlightRecord) []domain.FlightRecord {
	codes := collectCodes(flights)
	if len(codes) == 0 {
		return flights
	}

	table := e.resolver.ResolveMany(ctx, codes)
	for i := range flights {
		enrichPoint(&flights[i].Origin, table)
		enrichPoint(&flights[i].Destination, table)
	}
	return flights
}

// collectCodes gathers the distinct airport codes the flights reference,
// either directly or embedded in a free-text label.
func collectCodes(flights []domain.FlightRecord) []string {
	seen := make(map[string]bool)
	var codes []string
	add := func(p *domain.RoutePoint) {
		code := pointCode(p)
		if code == "" || seen[code] {
			return
		}
		seen[code] = true
		codes = append(codes, code)
	}
	for i := range flights {
		add(&flights[i].Origin)
		add(&flights[i].Destination)
	}
	return codes
}

// pointCode returns the route point's airport code, falling back to a code
// extracted from its display label.
func pointCode(p *domain.RoutePoint) string {
	if p.AirportCode != "" {
		return p.AirportCode
	}
	return domain.ExtractAirportCode(p.AirportName)
}

// enrichPoint fills in the metadata of one route point. A label without a
// parenthesized code is upgraded to "City (CODE)" once the city is known.
func enrichPoint(p *domain.RoutePoint, table map[string]domain.AirportMetadata) {
	code := pointCode(p)
	if code == "" {
		return
	}
	p.AirportCode = code

	meta, ok := table[code]
	if !ok {
		return
	}
	p.City = meta.City
	p.Country = meta.Country
	p.CountryFlagEmoji = domain.FlagEmoji(meta.Country)
	p.MetadataSource = meta.Source

	if meta.City != "" && domain.ExtractAirportCode(p.AirportName) == "" {
		p.AirportName = meta.City + " (" + code + ")"
	}
}

// Dedupe collapses records that share a dedupe key, keeping the sighting
// with the highest status priority. A flight already seen as landed is not
// overwritten by a later scheduled sighting of the same code. Input order
// is otherwise preserved.
func Dedupe(flights []domain.FlightRecord) []domain.FlightRecord {
	seen := make(map[string]int, len(flights))
	result := make([]domain.FlightRecord, 0, len(flights))
	for _, f := range flights {
		key := f.DedupeKey()
		if idx, ok := seen[key]; ok {
			if f.Status.Priority() > result[idx].Status.Priority() {
				result[idx] = f
			}
			continue
		}
		seen[key] = len(result)
		result = append(result, f)
	}
	return result
}
