// Great-circle distance and bearing math on a spherical Earth.
package geo

import "math"

// EarthRadiusKM is the mean Earth radius used for all great-circle math.
const EarthRadiusKM = 6371.0

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the haversine distance between two points in kilometers,
// rounded to two decimals.
func Distance(from, to Point) float64 {
	lat1 := radians(from.Lat)
	lat2 := radians(to.Lat)
	dLat := radians(to.Lat - from.Lat)
	dLon := radians(to.Lon - from.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return round(EarthRadiusKM*c, 2)
}

// Bearing returns the initial bearing from one point to another in degrees,
// normalized to [0, 360) and rounded to one decimal. 0 is due north.
func Bearing(from, to Point) float64 {
	lat1 := radians(from.Lat)
	lat2 := radians(to.Lat)
	dLon := radians(to.Lon - from.Lon)

	x := math.Sin(dLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(x, y) * 180 / math.Pi
	return round(math.Mod(deg+360, 360), 1)
}

// Midpoint returns the great-circle midpoint of two points, rounded to four
// decimals per coordinate.
func Midpoint(from, to Point) Point {
	lat1 := radians(from.Lat)
	lat2 := radians(to.Lat)
	dLon := radians(to.Lon - from.Lon)

	bx := math.Cos(lat2) * math.Cos(dLon)
	by := math.Cos(lat2) * math.Sin(dLon)

	latMid := math.Atan2(
		math.Sin(lat1)+math.Sin(lat2),
		math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by),
	)
	lonMid := radians(from.Lon) + math.Atan2(by, math.Cos(lat1)+bx)

	return Point{
		Lat: round(latMid*180/math.Pi, 4),
		Lon: round(lonMid*180/math.Pi, 4),
	}
}

// TravelTime returns the time in hours to cover distanceKM at speedKMH,
// rounded to two decimals. Non-positive speeds yield +Inf.
func TravelTime(distanceKM, speedKMH float64) float64 {
	if speedKMH <= 0 {
		return math.Inf(1)
	}
	return round(distanceKM/speedKMH, 2)
}

// WithinRange reports whether target lies within rangeKM of unit.
func WithinRange(unit, target Point, rangeKM float64) bool {
	return Distance(unit, target) <= rangeKM
}

var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CardinalDirection maps a bearing in degrees to one of the eight compass
// directions.
func CardinalDirection(bearing float64) string {
	idx := int(math.Round(bearing/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return cardinals[idx]
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
