package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
		tol  float64
	}{
		{"same point", Point{-6.2, 106.8}, Point{-6.2, 106.8}, 0, 1e-9},
		{"one degree of latitude", Point{0, 0}, Point{1, 0}, 111.195, 0.01},
		{"jakarta to bandung", Point{-6.2088, 106.8456}, Point{-6.9175, 107.6191}, 116.0, 2.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Distance(tc.a, tc.b)
			if math.Abs(got-tc.want) > tc.tol {
				t.Fatalf("got %.3f, want %.3f±%.3f", got, tc.want, tc.tol)
			}
		})
	}
}

func TestBoundingBox_ContainsRadius(t *testing.T) {
	center := Point{Lat: -6.2, Lng: 106.8}
	box := BoundingBox(center, 10)

	// Points 9.9 km due north and due east must fall inside.
	north := Point{Lat: center.Lat + degrees(9.9/EarthRadiusKM), Lng: center.Lng}
	if !box.Contains(north) {
		t.Fatalf("expected %+v inside %+v", north, box)
	}
	east := Point{Lat: center.Lat, Lng: center.Lng + degrees(9.9/EarthRadiusKM)/math.Cos(radians(center.Lat))}
	if !box.Contains(east) {
		t.Fatalf("expected %+v inside %+v", east, box)
	}
	if box.Contains(Point{Lat: center.Lat + 1, Lng: center.Lng}) {
		t.Fatalf("point 111 km away must be outside")
	}
}

func TestBoundingBox_PoleOpensLongitude(t *testing.T) {
	box := BoundingBox(Point{Lat: 90, Lng: 0}, 50)
	if box.MinLng != -180 || box.MaxLng != 180 {
		t.Fatalf("expected full longitude span, got %+v", box)
	}
	if box.MaxLat != 90 {
		t.Fatalf("expected latitude clamped to 90, got %v", box.MaxLat)
	}
}

func TestPoint_Validate(t *testing.T) {
	if err := (Point{Lat: 91, Lng: 0}).Validate(); err == nil {
		t.Fatalf("expected error for lat 91")
	}
	if err := (Point{Lat: 0, Lng: math.NaN()}).Validate(); err == nil {
		t.Fatalf("expected error for NaN")
	}
	if err := (Point{Lat: -6.2, Lng: 106.8}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
