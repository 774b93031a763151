package geocoder

import (
	"context"

	"github.com/rajasatyajit/ReliefOps/internal/logger"
	"github.com/rajasatyajit/ReliefOps/internal/metrics"
	"github.com/rajasatyajit/ReliefOps/internal/models"
	"github.com/rajasatyajit/ReliefOps/pkg/utils"
)

// Resolver resolves a place name to location info. A nil result with a nil
// error means the provider does not know the place.
type Resolver interface {
	Resolve(ctx context.Context, place string) (*models.LocationInfo, error)
}

// Cache memoizes resolution results by normalized place name. Failed
// lookups are cached too (a present nil entry), so a place that could not
// be resolved never re-issues the upstream call within the cache lifetime.
type Cache interface {
	Get(ctx context.Context, place string) (info *models.LocationInfo, found bool, err error)
	Set(ctx context.Context, place string, info *models.LocationInfo) error
}

// Geocoder combines a Resolver with a Cache. Lookups are keyed by the
// normalized (trimmed, lower-cased) place name.
type Geocoder struct {
	resolver Resolver
	cache    Cache
}

// New creates a geocoder over the given resolver and cache
func New(resolver Resolver, cache Cache) *Geocoder {
	return &Geocoder{resolver: resolver, cache: cache}
}

// Lookup returns the location info for a place name, or nil if the place
// is empty, unknown, or the lookup failed. Resolution errors are recovered
// here: the place is cached as unresolved and never aborts the caller.
func (g *Geocoder) Lookup(ctx context.Context, place string) *models.LocationInfo {
	norm := utils.NormalizePlace(place)
	if norm == "" {
		return nil
	}

	if info, found, err := g.cache.Get(ctx, norm); err == nil && found {
		metrics.RecordGeocodeLookup("hit")
		return info
	} else if err != nil {
		logger.Warn("Geocode cache read failed", "place", norm, "error", err)
	}

	info, err := g.resolver.Resolve(ctx, norm)
	if err != nil {
		logger.Warn("Geocode lookup failed", "place", norm, "error", err)
		metrics.RecordGeocodeLookup("error")
		info = nil
	} else if info == nil {
		metrics.RecordGeocodeLookup("miss")
	} else {
		metrics.RecordGeocodeLookup("resolved")
	}

	if err := g.cache.Set(ctx, norm, info); err != nil {
		logger.Warn("Geocode cache write failed", "place", norm, "error", err)
	}

	return info
}
