package predict

import "math"

// Half of the Earth's circumference, used to convert geodesic fractions to distances.
const (
	HalfCircumferenceKm = 20037.5
	HalfCircumferenceMi = 12450.
)

// GeodesicFraction returns the great-circle distance between two points as a fraction of half the Earth's circumference.
// Coordinates are in degrees, north and east positive.
func GeodesicFraction(lat1, lon1, lat2, lon2 float64) float64 {
	scale := 2 * math.Pi / 360
	lat1 *= scale
	lon1 *= scale
	lat2 *= scale
	lon2 *= scale

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	// rounding can push a slightly past 1 for antipodal points
	a = math.Min(math.Max(a, 0), 1)
	return 4 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)) / (2 * math.Pi)
}

// Distance returns the geodesic fraction between two stadia.
func Distance(a, b *Stadium) float64 {
	return GeodesicFraction(a.Lat, a.Lon, b.Lat, b.Lon)
}

// SpatialWeight weighs a historical game played at candidate for a team based at home, given an upcoming game at reference.
// The weight is 1 when the travel distance to candidate matches the travel distance to reference and falls to 0 as the mismatch reaches antipodal.
//
// For a Seattle team playing in San Diego (1700 km), a past game in Denver (1650 km) weighs about 0.998,
// one in New York (3875 km) about 0.891, one at home about 0.915, and one in Perth (14900 km) about 0.341.
func SpatialWeight(candidate, home, reference *Stadium) float64 {
	referenceDistance := Distance(home, reference)
	travelDistance := Distance(home, candidate)
	return 1 - math.Abs(travelDistance-referenceDistance)
}

// SpatialWeights computes, for every stadium as the reference location, a weight for each row of a team's score table.
// The result maps reference stadium code to a column aligned with table.Rows.
func SpatialWeights(table *ScoreTable, home *Stadium, stadia map[string]*Stadium) (map[string][]float64, error) {
	venues := make([]*Stadium, len(table.Rows))
	for i, row := range table.Rows {
		s, ok := stadia[row.Venue]
		if !ok {
			return nil, &MissingError{Kind: "stadium", Code: row.Venue, Context: "score table " + table.Team}
		}
		venues[i] = s
	}
	out := make(map[string][]float64, len(stadia))
	for code, reference := range stadia {
		col := make([]float64, len(venues))
		for i, v := range venues {
			col[i] = SpatialWeight(v, home, reference)
		}
		out[code] = col
	}
	return out, nil
}
