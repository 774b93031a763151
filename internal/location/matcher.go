package location

import (
	"context"
	"strings"

	"github.com/rajasatyajit/ReliefOps/internal/models"
	"github.com/rajasatyajit/ReliefOps/pkg/utils"
)

// Lookuper resolves a place name through the geocode cache. A nil result
// means the place is unresolved.
type Lookuper interface {
	Lookup(ctx context.Context, place string) *models.LocationInfo
}

// coordBox is the coordinate proximity bound: two places within this many
// degrees of latitude and longitude (roughly a 50 km box) count as the
// same location. Not a geodesic distance.
const coordBox = 0.5

// Matcher decides whether two place-name strings denote the same
// real-world location. The relation is pairwise only and not transitive;
// consumers must tolerate that.
type Matcher struct {
	geo Lookuper
}

// NewMatcher creates a matcher over the given geocoder
func NewMatcher(geo Lookuper) *Matcher {
	return &Matcher{geo: geo}
}

// Same reports whether a and b denote the same location. Exact string
// equality (after normalization) short-circuits before any geocode call.
func (m *Matcher) Same(ctx context.Context, a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	normA := utils.NormalizePlace(a)
	normB := utils.NormalizePlace(b)
	if normA == "" || normB == "" {
		return false
	}

	if normA == normB {
		return true
	}

	infoA := m.geo.Lookup(ctx, normA)
	infoB := m.geo.Lookup(ctx, normB)
	if infoA == nil || infoB == nil {
		return false
	}

	latDiff := infoA.Latitude - infoB.Latitude
	lonDiff := infoA.Longitude - infoB.Longitude
	if latDiff < 0 {
		latDiff = -latDiff
	}
	if lonDiff < 0 {
		lonDiff = -lonDiff
	}
	if latDiff < coordBox && lonDiff < coordBox {
		return true
	}

	// One place contained in the other's resolved display name
	if strings.Contains(strings.ToLower(infoB.DisplayName), normA) ||
		strings.Contains(strings.ToLower(infoA.DisplayName), normB) {
		return true
	}

	return false
}
