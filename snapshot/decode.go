package snapshot

import (
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/graph"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

func decodeSnapshot(data []byte) (*Snapshot, error) {
	d := &decoder{}
	var catMsg, renderMsg, routerMsg []field
	var hasCatalogue, hasRouter bool
	for _, f := range d.parse(data) {
		switch f.num {
		case 1:
			catMsg, hasCatalogue = d.message(f), true
		case 2:
			renderMsg = d.message(f)
		case 3:
			routerMsg, hasRouter = d.message(f), true
		}
	}
	if d.err != nil {
		return nil, d.err
	}
	if !hasCatalogue {
		return nil, errors.New("missing catalogue")
	}

	cat, err := decodeCatalogue(d, catMsg)
	if err != nil {
		return nil, err
	}
	s := &Snapshot{Catalogue: cat}
	if s.RenderSettings, err = decodeRenderSettings(d, renderMsg); err != nil {
		return nil, err
	}
	if hasRouter {
		if s.Router, err = decodeRouter(d, cat, routerMsg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// decodeCatalogue restores stops, then buses, then distances, regardless of
// the order the fields were written in.
func decodeCatalogue(d *decoder, msg []field) (*catalogue.Catalogue, error) {
	var stops, buses, distances [][]field
	for _, f := range msg {
		switch f.num {
		case 1:
			stops = append(stops, d.message(f))
		case 2:
			buses = append(buses, d.message(f))
		case 3:
			distances = append(distances, d.message(f))
		}
	}
	if d.err != nil {
		return nil, d.err
	}

	cat := catalogue.New()
	for _, m := range stops {
		var (
			id       uint32
			name     string
			lat, lng float64
		)
		for _, f := range m {
			switch f.num {
			case 1:
				id = d.uint32(f)
			case 2:
				name = d.string(f)
			case 3:
				lat = d.double(f)
			case 4:
				lng = d.double(f)
			}
		}
		if d.err != nil {
			return nil, fmt.Errorf("stop: %w", d.err)
		}
		if _, err := cat.RestoreStop(catalogue.StopID(id), name, lat, lng); err != nil {
			return nil, err
		}
	}

	for _, m := range buses {
		var bus catalogue.Bus
		for _, f := range m {
			switch f.num {
			case 1:
				bus.Name = d.string(f)
			case 2:
				for _, id := range d.packed(f) {
					bus.Stops = append(bus.Stops, catalogue.StopID(id))
				}
			case 3:
				bus.UniqueStops = int(d.uint32(f))
			case 4:
				bus.RoadLength = d.int64(f)
			case 5:
				bus.GeoLength = d.double(f)
			case 6:
				bus.IsRoundtrip = d.bool(f)
			case 7:
				bus.LastStop = catalogue.StopID(d.uint32(f))
			}
		}
		if d.err != nil {
			return nil, fmt.Errorf("bus: %w", d.err)
		}
		if _, err := cat.AddBus(bus); err != nil {
			return nil, err
		}
	}

	for _, m := range distances {
		var from, to uint32
		var meters int64
		for _, f := range m {
			switch f.num {
			case 1:
				from = d.uint32(f)
			case 2:
				to = d.uint32(f)
			case 3:
				meters = d.int64(f)
			}
		}
		if d.err != nil {
			return nil, fmt.Errorf("distance: %w", d.err)
		}
		if int(from) >= cat.StopCount() || int(to) >= cat.StopCount() {
			return nil, fmt.Errorf("distance %d -> %d: %w", from, to, catalogue.ErrStopNotFound)
		}
		cat.SetDistance(catalogue.StopID(from), catalogue.StopID(to), meters)
	}
	return cat, nil
}

func decodeRenderSettings(d *decoder, msg []field) (renderer.Settings, error) {
	var rs renderer.Settings
	for _, f := range msg {
		switch f.num {
		case 1:
			rs.Width = d.double(f)
		case 2:
			rs.Height = d.double(f)
		case 3:
			rs.Padding = d.double(f)
		case 4:
			rs.LineWidth = d.double(f)
		case 5:
			rs.StopRadius = d.double(f)
		case 6:
			rs.BusLabelFontSize = int(d.int64(f))
		case 7:
			rs.BusLabelOffset.X = d.double(f)
		case 8:
			rs.BusLabelOffset.Y = d.double(f)
		case 9:
			rs.StopLabelFontSize = int(d.int64(f))
		case 10:
			rs.StopLabelOffset.X = d.double(f)
		case 11:
			rs.StopLabelOffset.Y = d.double(f)
		case 12:
			rs.UnderlayerColor = decodeColor(d, d.message(f))
		case 13:
			rs.UnderlayerWidth = d.double(f)
		case 14:
			rs.ColorPalette = append(rs.ColorPalette, decodeColor(d, d.message(f)))
		}
	}
	if d.err != nil {
		return renderer.Settings{}, fmt.Errorf("render settings: %w", d.err)
	}
	return rs, nil
}

func decodeColor(d *decoder, msg []field) svg.Color {
	var color svg.Color = svg.NoneColor
	for _, f := range msg {
		switch f.num {
		case 1:
			color = svg.NamedColor(d.string(f))
		case 2:
			r, g, b, _ := decodeChannels(d, d.message(f))
			color = svg.RGB{Red: r, Green: g, Blue: b}
		case 3:
			r, g, b, a := decodeChannels(d, d.message(f))
			color = svg.RGBA{Red: r, Green: g, Blue: b, Opacity: a}
		}
	}
	return color
}

func decodeChannels(d *decoder, msg []field) (r, g, b uint8, opacity float64) {
	channel := func(f field) uint8 {
		v := d.uint64(f)
		if v > 255 {
			d.fail("color channel %d out of range", v)
		}
		return uint8(v)
	}
	for _, f := range msg {
		switch f.num {
		case 1:
			r = channel(f)
		case 2:
			g = channel(f)
		case 3:
			b = channel(f)
		case 4:
			opacity = d.double(f)
		}
	}
	return r, g, b, opacity
}

type edgeRide struct {
	from, to graph.VertexID
	bus      string
	span     int
}

// decodeRouter rebuilds the graph sized for the restored stop count and
// resolves ride metadata through the restored buses.
func decodeRouter(d *decoder, cat *catalogue.Catalogue, msg []field) (*router.State, error) {
	var (
		settings router.Settings
		edges    []graph.Edge
		rides    []edgeRide
		bindings [][2]uint32
	)
	for _, f := range msg {
		switch f.num {
		case 1:
			for _, sf := range d.message(f) {
				switch sf.num {
				case 1:
					settings.BusWaitTime = d.double(sf)
				case 2:
					settings.BusVelocity = d.double(sf)
				}
			}
		case 2:
			var e graph.Edge
			for _, ef := range d.message(f) {
				switch ef.num {
				case 1:
					e.From = graph.VertexID(d.uint32(ef))
				case 2:
					e.To = graph.VertexID(d.uint32(ef))
				case 3:
					e.Weight = d.double(ef)
				}
			}
			edges = append(edges, e)
		case 3:
			var pair [2]uint32
			for _, pf := range d.message(f) {
				switch pf.num {
				case 1:
					pair[0] = d.uint32(pf)
				case 2:
					pair[1] = d.uint32(pf)
				}
			}
			bindings = append(bindings, pair)
		case 4:
			var r edgeRide
			for _, rf := range d.message(f) {
				switch rf.num {
				case 1:
					r.from = graph.VertexID(d.uint32(rf))
				case 2:
					r.to = graph.VertexID(d.uint32(rf))
				case 3:
					r.bus = d.string(rf)
				case 4:
					r.span = int(d.uint32(rf))
				}
			}
			rides = append(rides, r)
		}
	}
	if d.err != nil {
		return nil, fmt.Errorf("router: %w", d.err)
	}

	if settings.BusVelocity <= 0 || settings.BusWaitTime < 0 {
		return nil, fmt.Errorf("router: %w", router.ErrInvalidSettings)
	}
	if len(rides) != len(edges) {
		return nil, fmt.Errorf("router: %d edges but %d rides", len(edges), len(rides))
	}

	stopCount := cat.StopCount()
	state := router.NewState(settings, stopCount)
	for _, pair := range bindings {
		stop, v := catalogue.StopID(pair[0]), graph.VertexID(pair[1])
		if int(stop) >= stopCount || int(v) >= stopCount {
			return nil, fmt.Errorf("router: vertex %d for stop %d out of range", v, stop)
		}
		if _, ok := state.StopToVertex[stop]; ok {
			return nil, fmt.Errorf("router: stop %d bound twice", stop)
		}
		if _, ok := state.VertexToStop[v]; ok {
			return nil, fmt.Errorf("router: vertex %d bound twice", v)
		}
		state.BindVertex(stop, v)
	}

	for i, e := range edges {
		r := rides[i]
		if int(e.From) >= stopCount || int(e.To) >= stopCount {
			return nil, fmt.Errorf("router: edge %d (%d -> %d) out of range", i, e.From, e.To)
		}
		if r.from != e.From || r.to != e.To {
			return nil, fmt.Errorf("router: ride %d does not match its edge", i)
		}
		bus, err := cat.FindBus(r.bus)
		if err != nil {
			return nil, fmt.Errorf("router: edge %d: %w", i, err)
		}
		if r.span <= 0 || r.span >= len(bus.Stops) {
			return nil, fmt.Errorf("router: edge %d: span %d out of range for bus %q", i, r.span, r.bus)
		}
		state.AddRide(e, router.Ride{Bus: bus, SpanCount: r.span})
	}
	return state, nil
}
