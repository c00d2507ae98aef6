package places

import (
	"context"
	"fmt"
	"math"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/commupath/commupath/internal/model"
)

// maxSearchRadius is the hard ceiling of the Nearby Search endpoint, meters.
const maxSearchRadius = 50000

// resultsPerType caps how many results each type query contributes.
const resultsPerType = 3

// typeQueryLimit caps how many type queries one search issues.
const typeQueryLimit = 2

// Discovery finds real nearby places for quest generation and resolves
// human-readable names for coordinates. Safe for concurrent use.
type Discovery struct {
	client       *Client // nil when no Maps API key is configured
	types        CategoryTypeMap
	searchCache  *gocache.Cache
	geocodeCache *lru.Cache[string, geocodeEntry]
	geocodeSize  int
	logger       *zap.Logger
}

// geocodeEntry caches both hits and "no result" lookups: rounding already
// bounds cardinality, so entries never expire in-process.
type geocodeEntry struct {
	name  string
	found bool
}

// NewDiscovery creates a discovery service. A nil client is allowed and
// yields empty search results, pushing generation onto its fallback tiers.
func NewDiscovery(client *Client, types CategoryTypeMap, cfg model.DiscoveryConfig, logger *zap.Logger) (*Discovery, error) {
	if types == nil {
		types = DefaultCategoryTypes()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	size := cfg.GeocodeCacheSize
	if size <= 0 {
		size = 1000
	}
	geocodeCache, err := lru.New[string, geocodeEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating geocode cache: %w", err)
	}

	ttl := cfg.SearchCacheTTL
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	return &Discovery{
		client:       client,
		types:        types,
		searchCache:  gocache.New(ttl, 2*ttl),
		geocodeCache: geocodeCache,
		geocodeSize:  size,
		logger:       logger,
	}, nil
}

// FindNearbyPlaces queries the places service for up to maxResults places
// matching the category around center. Each of the category's first two
// place types is queried once; a failing type is skipped, never fatal. An
// empty result is not an error — callers fall back on it. The only error
// returned is context cancellation.
func (d *Discovery) FindNearbyPlaces(ctx context.Context, center model.Coordinates, category model.Category, radius, maxResults int) ([]model.Place, error) {
	if d.client == nil {
		d.logger.Warn("maps client not configured, returning no places")
		return nil, nil
	}
	if maxResults <= 0 {
		return nil, nil
	}

	if radius > maxSearchRadius {
		d.logger.Warn("search radius exceeds service limit, capping",
			zap.Int("radius", radius),
			zap.Int("cap", maxSearchRadius))
		radius = maxSearchRadius
	}

	placeTypes := d.types.TypesFor(category)
	if len(placeTypes) > typeQueryLimit {
		placeTypes = placeTypes[:typeQueryLimit]
	}

	var collected []NearbyResult
	for _, placeType := range placeTypes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results, err := d.searchType(ctx, center, radius, placeType)
		if err != nil {
			d.logger.Error("nearby search failed for type, skipping",
				zap.String("place_type", placeType),
				zap.String("category", string(category)),
				zap.Error(err))
			continue
		}

		if len(results) > resultsPerType {
			results = results[:resultsPerType]
		}
		collected = append(collected, results...)
	}

	if len(collected) > maxResults {
		collected = collected[:maxResults]
	}

	places := d.formatPlaces(collected)
	d.logger.Info("place discovery complete",
		zap.String("category", string(category)),
		zap.Int("places", len(places)))
	return places, nil
}

// searchType runs one cached type query.
func (d *Discovery) searchType(ctx context.Context, center model.Coordinates, radius int, placeType string) ([]NearbyResult, error) {
	key := fmt.Sprintf("nearby:%.4f,%.4f:%d:%s", center.Lat, center.Lng, radius, placeType)

	if cached, ok := d.searchCache.Get(key); ok {
		return cached.([]NearbyResult), nil
	}

	results, err := d.client.NearbySearch(ctx, center, radius, placeType)
	if err != nil {
		return nil, err
	}

	d.searchCache.SetDefault(key, results)
	return results, nil
}

// formatPlaces converts raw search entries into Places, dropping entries
// with missing geometry.
func (d *Discovery) formatPlaces(raw []NearbyResult) []model.Place {
	places := make([]model.Place, 0, len(raw))
	for _, r := range raw {
		if r.Geometry == nil || r.Geometry.Location == nil {
			d.logger.Warn("skipping malformed place entry", zap.String("name", r.Name))
			continue
		}

		coords, err := model.NewCoordinates(r.Geometry.Location.Lat, r.Geometry.Location.Lng)
		if err != nil {
			d.logger.Warn("skipping place with invalid coordinates",
				zap.String("name", r.Name), zap.Error(err))
			continue
		}

		name := r.Name
		if name == "" {
			name = "Unknown Location"
		}
		status := model.BusinessStatus(r.BusinessStatus)
		if r.BusinessStatus == "" {
			status = model.BusinessOperational
		}

		places = append(places, model.Place{
			Name:        name,
			Address:     r.Vicinity,
			Coordinates: coords,
			PlaceID:     r.PlaceID,
			Types:       r.Types,
			Rating:      r.Rating,
			RatingCount: r.UserRatingsTotal,
			Status:      status,
		})
	}
	return places
}

// ReverseGeocode resolves a human-readable name for a coordinate pair.
// Coordinates are rounded to 4 decimal places (~11m) before the cache key
// is formed, so nearby lookups share one entry. The boolean is false when
// no name could be resolved; errors never propagate.
func (d *Discovery) ReverseGeocode(ctx context.Context, lat, lng float64) (string, bool) {
	rlat := round4(lat)
	rlng := round4(lng)
	key := fmt.Sprintf("%.4f,%.4f", rlat, rlng)

	if entry, ok := d.geocodeCache.Get(key); ok {
		return entry.name, entry.found
	}

	if d.client == nil {
		return "", false
	}

	name, found := d.lookupName(ctx, rlat, rlng)
	d.geocodeCache.Add(key, geocodeEntry{name: name, found: found})
	return name, found
}

func (d *Discovery) lookupName(ctx context.Context, lat, lng float64) (string, bool) {
	results, err := d.client.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		d.logger.Error("reverse geocode failed", zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		return "", false
	}
	if len(results) == 0 {
		return "", false
	}

	// Best name first: neighborhood or sublocality components.
	for _, result := range results {
		for _, component := range result.AddressComponents {
			for _, t := range component.Types {
				if t == "neighborhood" || t == "sublocality" {
					return component.LongName, true
				}
			}
		}
	}

	// Fallback: first segment of the formatted address.
	if addr := results[0].FormattedAddress; addr != "" {
		name, _, _ := strings.Cut(addr, ",")
		return strings.TrimSpace(name), true
	}
	return "", false
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// CacheStats reports cache occupancy for monitoring.
type CacheStats struct {
	GeocodeEntries  int `json:"geocode_entries"`
	GeocodeCapacity int `json:"geocode_capacity"`
	SearchEntries   int `json:"search_entries"`
}

// Stats returns current cache statistics.
func (d *Discovery) Stats() CacheStats {
	return CacheStats{
		GeocodeEntries:  d.geocodeCache.Len(),
		GeocodeCapacity: d.geocodeSize,
		SearchEntries:   d.searchCache.ItemCount(),
	}
}
