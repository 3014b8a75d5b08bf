package snapshot

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/graph"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

func appendUint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	return appendUint(b, num, uint64(v))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendUint(b, num, protowire.EncodeBool(v))
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendSnapshot(b []byte, s *Snapshot) ([]byte, error) {
	b = appendMessage(b, 1, appendCatalogue(nil, s.Catalogue))
	rs, err := appendRenderSettings(nil, s.RenderSettings)
	if err != nil {
		return nil, err
	}
	b = appendMessage(b, 2, rs)
	if s.Router != nil {
		r, err := appendRouter(nil, s.Router)
		if err != nil {
			return nil, err
		}
		b = appendMessage(b, 3, r)
	}
	return b, nil
}

func appendCatalogue(b []byte, cat *catalogue.Catalogue) []byte {
	for _, stop := range cat.Stops() {
		var m []byte
		m = appendUint(m, 1, uint64(stop.ID))
		m = appendString(m, 2, stop.Name)
		m = appendDouble(m, 3, stop.Coordinates.Lat)
		m = appendDouble(m, 4, stop.Coordinates.Lng)
		b = appendMessage(b, 1, m)
	}
	for _, bus := range cat.Buses() {
		var route []byte
		for _, id := range bus.Stops {
			route = protowire.AppendVarint(route, uint64(id))
		}
		var m []byte
		m = appendString(m, 1, bus.Name)
		m = appendMessage(m, 2, route)
		m = appendUint(m, 3, uint64(bus.UniqueStops))
		m = appendInt(m, 4, bus.RoadLength)
		m = appendDouble(m, 5, bus.GeoLength)
		m = appendBool(m, 6, bus.IsRoundtrip)
		m = appendUint(m, 7, uint64(bus.LastStop))
		b = appendMessage(b, 2, m)
	}
	for _, d := range cat.Distances() {
		var m []byte
		m = appendUint(m, 1, uint64(d.From))
		m = appendUint(m, 2, uint64(d.To))
		m = appendInt(m, 3, d.Meters)
		b = appendMessage(b, 3, m)
	}
	return b
}

func appendRenderSettings(b []byte, rs renderer.Settings) ([]byte, error) {
	b = appendDouble(b, 1, rs.Width)
	b = appendDouble(b, 2, rs.Height)
	b = appendDouble(b, 3, rs.Padding)
	b = appendDouble(b, 4, rs.LineWidth)
	b = appendDouble(b, 5, rs.StopRadius)
	b = appendInt(b, 6, int64(rs.BusLabelFontSize))
	b = appendDouble(b, 7, rs.BusLabelOffset.X)
	b = appendDouble(b, 8, rs.BusLabelOffset.Y)
	b = appendInt(b, 9, int64(rs.StopLabelFontSize))
	b = appendDouble(b, 10, rs.StopLabelOffset.X)
	b = appendDouble(b, 11, rs.StopLabelOffset.Y)
	if rs.UnderlayerColor != nil {
		c, err := appendColor(nil, rs.UnderlayerColor)
		if err != nil {
			return nil, err
		}
		b = appendMessage(b, 12, c)
	}
	b = appendDouble(b, 13, rs.UnderlayerWidth)
	for _, color := range rs.ColorPalette {
		c, err := appendColor(nil, color)
		if err != nil {
			return nil, err
		}
		b = appendMessage(b, 14, c)
	}
	return b, nil
}

func appendColor(b []byte, c svg.Color) ([]byte, error) {
	switch c := c.(type) {
	case svg.NamedColor:
		return appendString(b, 1, string(c)), nil
	case svg.RGB:
		var m []byte
		m = appendUint(m, 1, uint64(c.Red))
		m = appendUint(m, 2, uint64(c.Green))
		m = appendUint(m, 3, uint64(c.Blue))
		return appendMessage(b, 2, m), nil
	case svg.RGBA:
		var m []byte
		m = appendUint(m, 1, uint64(c.Red))
		m = appendUint(m, 2, uint64(c.Green))
		m = appendUint(m, 3, uint64(c.Blue))
		m = appendDouble(m, 4, c.Opacity)
		return appendMessage(b, 3, m), nil
	}
	if c == svg.NoneColor {
		// none is the color message with no variant set
		return b, nil
	}
	return nil, fmt.Errorf("unsupported color %T", c)
}

func appendRouter(b []byte, s *router.State) ([]byte, error) {
	if len(s.Rides) != s.Graph.EdgeCount() {
		return nil, fmt.Errorf("router state has %d rides for %d edges", len(s.Rides), s.Graph.EdgeCount())
	}

	var settings []byte
	settings = appendDouble(settings, 1, s.Settings.BusWaitTime)
	settings = appendDouble(settings, 2, s.Settings.BusVelocity)
	b = appendMessage(b, 1, settings)

	for i := range s.Graph.EdgeCount() {
		e := s.Graph.Edge(graph.EdgeID(i))
		var m []byte
		m = appendUint(m, 1, uint64(e.From))
		m = appendUint(m, 2, uint64(e.To))
		m = appendDouble(m, 3, e.Weight)
		b = appendMessage(b, 2, m)
	}

	for _, stop := range slices.Sorted(maps.Keys(s.StopToVertex)) {
		var m []byte
		m = appendUint(m, 1, uint64(stop))
		m = appendUint(m, 2, uint64(s.StopToVertex[stop]))
		b = appendMessage(b, 3, m)
	}

	for i, ride := range s.Rides {
		if ride.Bus == nil {
			return nil, fmt.Errorf("edge %d has no bus", i)
		}
		e := s.Graph.Edge(graph.EdgeID(i))
		var m []byte
		m = appendUint(m, 1, uint64(e.From))
		m = appendUint(m, 2, uint64(e.To))
		m = appendString(m, 3, ride.Bus.Name)
		m = appendUint(m, 4, uint64(ride.SpanCount))
		b = appendMessage(b, 4, m)
	}
	return b, nil
}
