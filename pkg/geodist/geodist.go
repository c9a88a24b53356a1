// Package geodist estimates distances between geographic points.
//
// The formula is a flat-earth approximation inherited from the legacy
// terminal search: one degree is taken as 60 nautical miles (1.852 km) and
// the longitude delta is scaled by the cosine of the mean latitude. It is
// not true geodesy and must stay byte-compatible with the data already in
// production, so it is kept as-is instead of a haversine implementation.
package geodist

import "math"

// kmPerDegree is 60 nautical miles expressed in kilometers.
const kmPerDegree = 1.852 * 60

// Estimate returns the approximate distance in kilometers between the origin
// and the point, both given as (longitude, latitude) in decimal degrees.
//
// The mean latitude is converted to radians before the cosine; the legacy
// code base also contained a variant that fed degrees straight into cos(),
// producing different results for identical inputs. The radians form is the
// one implemented here.
//
// The result is always non-negative; NaN inputs propagate NaN.
func Estimate(originLon, originLat, pointLon, pointLat float64) float64 {
	meanLat := (originLat + pointLat) / 2
	x := (originLon - pointLon) * math.Cos(toRad(meanLat))
	y := pointLat - originLat
	return kmPerDegree * math.Sqrt(x*x+y*y)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
