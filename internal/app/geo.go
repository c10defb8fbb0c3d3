package app

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"trip_planner/internal/domain"
)

const earthRadiusMeters = 6371008.8

// distanceMeters is the great-circle distance between a and b.
func distanceMeters(a, b domain.Coordinate) float64 {
	pa := s2.LatLngFromDegrees(a.Lat, a.Lng)
	pb := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return pa.Distance(pb).Radians() * earthRadiusMeters
}

// offset returns the point reached from c after meters along bearing (degrees).
func offset(c domain.Coordinate, bearing, meters float64) domain.Coordinate {
	p := s2.LatLngFromDegrees(c.Lat, c.Lng)
	brg := bearing * math.Pi / 180
	d := meters / earthRadiusMeters

	lat1, lng1 := p.Lat.Radians(), p.Lng.Radians()
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brg))
	lng2 := lng1 + math.Atan2(math.Sin(brg)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	out := s2.LatLng{Lat: s1.Angle(lat2), Lng: s1.Angle(lng2)}.Normalized()
	return domain.Coordinate{Lat: out.Lat.Degrees(), Lng: out.Lng.Degrees()}
}
