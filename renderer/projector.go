package renderer

import (
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
	"github.com/theoremus-urban-solutions/transport-catalogue/utils"
)

// SphereProjector maps coordinates onto a width x height canvas with padding,
// keeping the aspect ratio. North is up.
type SphereProjector struct {
	padding float64
	minLng  float64
	maxLat  float64
	zoom    float64
}

// NewSphereProjector fits the bounding box of points into the canvas.
func NewSphereProjector(points []utils.Coordinates, maxWidth, maxHeight, padding float64) SphereProjector {
	p := SphereProjector{padding: padding}
	if len(points) == 0 {
		return p
	}

	minLng, maxLng := points[0].Lng, points[0].Lng
	minLat, maxLat := points[0].Lat, points[0].Lat
	for _, pt := range points[1:] {
		minLng = min(minLng, pt.Lng)
		maxLng = max(maxLng, pt.Lng)
		minLat = min(minLat, pt.Lat)
		maxLat = max(maxLat, pt.Lat)
	}
	p.minLng = minLng
	p.maxLat = maxLat

	var widthZoom, heightZoom float64
	hasWidth := !utils.IsZero(maxLng - minLng)
	hasHeight := !utils.IsZero(maxLat - minLat)
	if hasWidth {
		widthZoom = (maxWidth - 2*padding) / (maxLng - minLng)
	}
	if hasHeight {
		heightZoom = (maxHeight - 2*padding) / (maxLat - minLat)
	}

	switch {
	case hasWidth && hasHeight:
		p.zoom = min(widthZoom, heightZoom)
	case hasWidth:
		p.zoom = widthZoom
	case hasHeight:
		p.zoom = heightZoom
	}
	return p
}

// Project converts a geographic point to canvas coordinates.
func (p SphereProjector) Project(c utils.Coordinates) svg.Point {
	return svg.Point{
		X: (c.Lng-p.minLng)*p.zoom + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoom + p.padding,
	}
}
