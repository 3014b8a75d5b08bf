// Package renderer draws the bus network of a catalogue as an SVG map.
package renderer

import (
	"cmp"
	"io"
	"slices"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
	"github.com/theoremus-urban-solutions/transport-catalogue/utils"
)

const labelFontFamily = "Verdana"

// Settings control the geometry and colors of the map.
type Settings struct {
	Width             float64
	Height            float64
	Padding           float64
	LineWidth         float64
	StopRadius        float64
	BusLabelFontSize  int
	BusLabelOffset    svg.Point
	StopLabelFontSize int
	StopLabelOffset   svg.Point
	UnderlayerColor   svg.Color
	UnderlayerWidth   float64
	ColorPalette      []svg.Color
}

// MapRenderer draws one catalogue with fixed settings.
type MapRenderer struct {
	settings Settings
	cat      *catalogue.Catalogue
}

func New(settings Settings, cat *catalogue.Catalogue) *MapRenderer {
	return &MapRenderer{settings: settings, cat: cat}
}

// Render writes the SVG map. Output depends only on the catalogue and the
// settings, so equal inputs render byte-identical maps.
func (mr *MapRenderer) Render(w io.Writer) error {
	return mr.Build().Render(w)
}

// Build lays out the map: route lines, route labels, stop points and stop
// labels, in that drawing order.
func (mr *MapRenderer) Build() *svg.Document {
	buses := slices.Clone(mr.cat.Buses())
	slices.SortFunc(buses, func(a, b *catalogue.Bus) int { return cmp.Compare(a.Name, b.Name) })

	var stops []*catalogue.Stop
	seen := map[catalogue.StopID]bool{}
	var points []utils.Coordinates
	for _, bus := range buses {
		for _, id := range bus.Stops {
			if seen[id] {
				continue
			}
			seen[id] = true
			s := mr.cat.Stop(id)
			stops = append(stops, s)
			points = append(points, s.Coordinates)
		}
	}
	slices.SortFunc(stops, func(a, b *catalogue.Stop) int { return cmp.Compare(a.Name, b.Name) })

	proj := NewSphereProjector(points, mr.settings.Width, mr.settings.Height, mr.settings.Padding)
	doc := &svg.Document{}
	mr.addBusLines(doc, proj, buses)
	mr.addBusLabels(doc, proj, buses)
	mr.addStopPoints(doc, proj, stops)
	mr.addStopLabels(doc, proj, stops)
	return doc
}

// paletteColor cycles through the palette; an empty palette draws nothing.
func (mr *MapRenderer) paletteColor(i int) svg.Color {
	if len(mr.settings.ColorPalette) == 0 {
		return svg.NoneColor
	}
	return mr.settings.ColorPalette[i%len(mr.settings.ColorPalette)]
}

func (mr *MapRenderer) addBusLines(doc *svg.Document, proj SphereProjector, buses []*catalogue.Bus) {
	for i, bus := range buses {
		line := &svg.Polyline{}
		for _, id := range bus.Stops {
			line.AddPoint(proj.Project(mr.cat.Stop(id).Coordinates))
		}
		line.Stroke = mr.paletteColor(i)
		line.StrokeWidth = mr.settings.LineWidth
		line.StrokeLineCap = svg.LineCapRound
		line.StrokeLineJoin = svg.LineJoinRound
		line.Fill = svg.NoneColor
		doc.Add(line)
	}
}

func (mr *MapRenderer) addBusLabels(doc *svg.Document, proj SphereProjector, buses []*catalogue.Bus) {
	for i, bus := range buses {
		color := mr.paletteColor(i)
		first := bus.Stops[0]
		mr.addLabel(doc, mr.busLabel(bus.Name, proj.Project(mr.cat.Stop(first).Coordinates)), color)
		if first != bus.LastStop {
			mr.addLabel(doc, mr.busLabel(bus.Name, proj.Project(mr.cat.Stop(bus.LastStop).Coordinates)), color)
		}
	}
}

func (mr *MapRenderer) busLabel(name string, pos svg.Point) svg.Text {
	return svg.Text{
		Position:   pos,
		Offset:     mr.settings.BusLabelOffset,
		FontSize:   uint32(mr.settings.BusLabelFontSize),
		FontFamily: labelFontFamily,
		FontWeight: "bold",
		Data:       name,
	}
}

func (mr *MapRenderer) addStopPoints(doc *svg.Document, proj SphereProjector, stops []*catalogue.Stop) {
	for _, s := range stops {
		c := &svg.Circle{Center: proj.Project(s.Coordinates), Radius: mr.settings.StopRadius}
		c.Fill = svg.NamedColor("white")
		doc.Add(c)
	}
}

func (mr *MapRenderer) addStopLabels(doc *svg.Document, proj SphereProjector, stops []*catalogue.Stop) {
	for _, s := range stops {
		label := svg.Text{
			Position:   proj.Project(s.Coordinates),
			Offset:     mr.settings.StopLabelOffset,
			FontSize:   uint32(mr.settings.StopLabelFontSize),
			FontFamily: labelFontFamily,
			Data:       s.Name,
		}
		mr.addLabel(doc, label, svg.NamedColor("black"))
	}
}

// addLabel draws the text twice: an underlayer in the background color for
// contrast, then the text itself in fill.
func (mr *MapRenderer) addLabel(doc *svg.Document, label svg.Text, fill svg.Color) {
	under := label
	under.Fill = mr.settings.UnderlayerColor
	under.Stroke = mr.settings.UnderlayerColor
	under.StrokeWidth = mr.settings.UnderlayerWidth
	under.StrokeLineCap = svg.LineCapRound
	under.StrokeLineJoin = svg.LineJoinRound
	doc.Add(&under)

	text := label
	text.Fill = fill
	doc.Add(&text)
}
