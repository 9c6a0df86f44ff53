package geo

import (
	"errors"
	"math"
)

// EarthRadiusKM is the mean earth radius used by Distance.
const EarthRadiusKM = 6371.0

// DefaultRadiusKM applies when a nearby search gives no radius.
const DefaultRadiusKM = 10.0

var ErrInvalidPoint = errors.New("invalid coordinates")

type Point struct {
	Lat float64
	Lng float64
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return ErrInvalidPoint
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return ErrInvalidPoint
	}
	return nil
}

// Distance returns the haversine great-circle distance between a and b in
// kilometres.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Box is a lat/lng rectangle that contains every point within some radius of
// its center. It over-approximates the circle and is meant as a prefilter.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func BoundingBox(center Point, radiusKM float64) Box {
	dLat := degrees(radiusKM / EarthRadiusKM)

	b := Box{
		MinLat: math.Max(-90, center.Lat-dLat),
		MaxLat: math.Min(90, center.Lat+dLat),
		MinLng: -180,
		MaxLng: 180,
	}

	// Near the poles or across the antimeridian the longitude span is left open.
	cos := math.Cos(radians(center.Lat))
	if cos < 1e-6 {
		return b
	}
	dLng := dLat / cos
	if dLng >= 180 || center.Lng-dLng < -180 || center.Lng+dLng > 180 {
		return b
	}
	b.MinLng = center.Lng - dLng
	b.MaxLng = center.Lng + dLng
	return b
}

func (b Box) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
