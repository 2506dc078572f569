package places

import (
	"math"

	"github.com/richxcame/booking-platform/pkg/geo"
	"github.com/uber/h3-go/v4"
)

const (
	// IndexResolution is the H3 resolution of the place index (~8.5 km edge).
	IndexResolution = 5

	// indexEdgeKm is the average hexagon edge length at IndexResolution.
	indexEdgeKm = 8.544

	// maxIndexRing bounds the grid disk; wider searches scan every place.
	maxIndexRing = 12
)

func (g *Gazetteer) buildIndex() {
	g.cells = make(map[h3.Cell][]Location, len(g.sorted))
	for _, loc := range g.sorted {
		cell, err := h3.LatLngToCell(h3.NewLatLng(loc.Lat, loc.Lng), IndexResolution)
		if err != nil {
			continue
		}
		g.cells[cell] = append(g.cells[cell], loc)
	}
}

// ringFor returns the grid disk size that covers radiusKm around a cell.
func ringFor(radiusKm float64) int {
	return int(math.Ceil(radiusKm/(indexEdgeKm*1.5))) + 1
}

// candidates returns the places indexed in the grid disk around a point. A nil
// result means the index could not answer and the caller should scan.
func (g *Gazetteer) candidates(lat, lng, radiusKm float64) []Location {
	k := ringFor(radiusKm)
	if k > maxIndexRing {
		return nil
	}

	origin, err := h3.LatLngToCell(h3.NewLatLng(lat, lng), IndexResolution)
	if err != nil {
		return nil
	}
	disk, err := origin.GridDisk(k)
	if err != nil {
		return nil
	}

	var out []Location
	for _, cell := range disk {
		out = append(out, g.cells[cell]...)
	}
	return out
}

// Nearest returns the closest known place within radiusKm of a point and its
// distance in kilometres. A non-positive radius uses the default proximity
// radius.
func (g *Gazetteer) Nearest(lat, lng, radiusKm float64) (Location, float64, bool) {
	if radiusKm <= 0 {
		radiusKm = geo.DefaultProximityRadiusKm
	}

	pool := g.candidates(lat, lng, radiusKm)
	if len(pool) == 0 {
		pool = g.sorted
	}

	origin := geo.Point{Lat: lat, Lng: lng}
	var (
		best     Location
		bestDist = math.Inf(1)
		found    bool
	)
	for _, loc := range pool {
		d := geo.Distance(origin, geo.Point{Lat: loc.Lat, Lng: loc.Lng})
		if d > radiusKm || d >= bestDist {
			continue
		}
		best, bestDist, found = loc, d, true
	}

	if !found {
		return Location{}, 0, false
	}
	return best, bestDist, true
}

// Point returns the location as a geo.Point.
func (l Location) Point() geo.Point {
	return geo.Point{Lat: l.Lat, Lng: l.Lng}
}
