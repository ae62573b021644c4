package planner

import (
	"math"
)

// EarthRadiusKM is the mean Earth radius used for great-circle distances.
const EarthRadiusKM = 6371.0

// fareTiers maps inclusive distance upper bounds (km) to fares in whole
// rupees. Tiers are contiguous; anything past the last bound pays maxFare.
var fareTiers = []struct {
	maxKM float64
	fare  int
}{
	{2, 10},
	{5, 20},
	{12, 30},
	{21, 40},
	{32, 50},
}

const maxFare = 60

// discountRate is applied to every base fare for smart-card journeys.
const discountRate = 0.10

// FareBreakdown is the fare result for a station pair.
type FareBreakdown struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	DistanceKM     float64 `json:"distance_km"`
	BaseFare       int     `json:"base_fare"`
	DiscountedFare int     `json:"discounted_fare"`
	Discount       int     `json:"discount"`
}

// HaversineKM computes the great-circle distance between two coordinates.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := rlat2 - rlat1
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKM * c
}

// FareForDistance maps a distance to its fare tier.
func FareForDistance(km float64) int {
	for _, tier := range fareTiers {
		if km <= tier.maxKM {
			return tier.fare
		}
	}
	return maxFare
}

// DiscountedFare rounds base*0.9 half away from zero to whole rupees.
func DiscountedFare(base int) int {
	return int(math.Round(float64(base) * (1 - discountRate)))
}

// CalculateFare resolves both names to their first matching stop and maps
// the great-circle distance between them to a fare tier.
func (p *Planner) CalculateFare(fromName, toName string) (FareBreakdown, error) {
	from := p.store.StopsMatching(fromName)
	if len(from) == 0 {
		return FareBreakdown{}, &StationNotFoundError{Name: fromName}
	}
	to := p.store.StopsMatching(toName)
	if len(to) == 0 {
		return FareBreakdown{}, &StationNotFoundError{Name: toName}
	}
	f, t := from[0], to[0]
	km := HaversineKM(f.Lat, f.Lon, t.Lat, t.Lon)
	base := FareForDistance(km)
	return FareBreakdown{
		From:           f.Name,
		To:             t.Name,
		DistanceKM:     math.Round(km*100) / 100,
		BaseFare:       base,
		DiscountedFare: DiscountedFare(base),
		Discount:       int(math.Round(float64(base) * discountRate)),
	}, nil
}
