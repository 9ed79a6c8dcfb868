package domain

import "math"

const earthRadiusKm = 6371

// Coordinate is a WGS 84 geographic point. Produced by geocoding; treated as
// immutable.
type Coordinate struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// Valid reports whether the coordinate is inside the WGS 84 ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// HaversineKm returns the great-circle distance between a and b in kilometers.
// The asin(sqrt) form stays numerically stable near antipodal points. The
// result is not rounded; callers round once at the edge so composed calls do
// not compound rounding error.
func HaversineKm(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// chargeTier maps an inclusive upper distance bound to a flat delivery charge.
type chargeTier struct {
	maxKm  float64
	charge float64
}

// Distance tiers in rupees. The last tier is open-ended and doubles as the
// conservative default when distance is unknown.
var chargeTiers = []chargeTier{
	{maxKm: 50, charge: 49},
	{maxKm: 100, charge: 99},
	{maxKm: 200, charge: 149},
}

// MaxTierCharge is the open-ended tier applied beyond the last bound and
// whenever distance cannot be determined.
const MaxTierCharge = 199

// TierCharge maps a distance to its delivery charge, first match wins in
// ascending bound order. A distance exactly on a bound belongs to the lower
// tier.
func TierCharge(distanceKm float64) float64 {
	for _, t := range chargeTiers {
		if distanceKm <= t.maxKm {
			return t.charge
		}
	}
	return MaxTierCharge
}
