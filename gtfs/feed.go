package gtfs

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/transport-catalogue/requests"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
	"github.com/theoremus-urban-solutions/transport-catalogue/utils"
)

// DefaultRouting is used when the caller has no better estimate: a bus every
// few minutes moving at urban speed.
var DefaultRouting = requests.RoutingSettings{BusWaitTime: 6, BusVelocity: 30}

// DefaultRendering draws a 1200x1200 map.
var DefaultRendering = requests.RenderSettings{
	Width:             1200,
	Height:            1200,
	Padding:           50,
	LineWidth:         14,
	StopRadius:        5,
	BusLabelFontSize:  20,
	BusLabelOffset:    requests.Offset{7, 15},
	StopLabelFontSize: 20,
	StopLabelOffset:   requests.Offset{7, -3},
	UnderlayerColor:   requests.Color{Color: svg.RGBA{Red: 255, Green: 255, Blue: 255, Opacity: 0.85}},
	UnderlayerWidth:   3,
	ColorPalette: []requests.Color{
		{Color: svg.NamedColor("green")},
		{Color: svg.RGB{Red: 255, Green: 160, Blue: 0}},
		{Color: svg.NamedColor("red")},
	},
}

// MakeBaseDocument wraps BaseRequests into a complete make_base document.
func (f *Feed) MakeBaseDocument(snapshotFile string, routing requests.RoutingSettings) *requests.MakeBaseDocument {
	render := DefaultRendering
	return &requests.MakeBaseDocument{
		BaseRequests:          f.BaseRequests(),
		RenderSettings:        &render,
		RoutingSettings:       &routing,
		SerializationSettings: requests.SerializationSettings{File: snapshotFile},
	}
}

// BaseRequests turns each route into a bus following its longest trip.
// Only stops visited by those trips are emitted. Stops come first, sorted by
// name, then buses sorted by name.
func (f *Feed) BaseRequests() []requests.BaseRequest {
	stopsByID := make(map[string]*Stop, len(f.Stops))
	for i := range f.Stops {
		stopsByID[f.Stops[i].ID] = &f.Stops[i]
	}

	tripStops := f.tripStopSequences()
	stopNames := uniqueStopNames(f.Stops)
	busNames := uniqueRouteNames(f.Routes)

	stopReqs := map[string]*requests.BaseRequest{}
	var busReqs []requests.BaseRequest
	for _, route := range f.Routes {
		trip := longestTrip(f.Trips, route.ID, tripStops)
		if trip == "" {
			log.Debug().Str("route", route.ID).Msg("Route has no trips")
			continue
		}

		if missing := slices.IndexFunc(tripStops[trip], func(id string) bool { return stopsByID[id] == nil }); missing >= 0 {
			log.Warn().
				Str("trip", trip).
				Str("stop", tripStops[trip][missing]).
				Msg("Trip visits unknown stop, skipping route")
			continue
		}

		var names []string
		var prev *Stop
		for _, stopID := range tripStops[trip] {
			stop := stopsByID[stopID]
			name := stopNames[stop.ID]
			req, ok := stopReqs[name]
			if !ok {
				req = &requests.BaseRequest{
					Type:          requests.TypeStop,
					Name:          name,
					Latitude:      stop.Latitude,
					Longitude:     stop.Longitude,
					RoadDistances: map[string]int64{},
				}
				stopReqs[name] = req
			}
			if prev != nil && prev.ID != stop.ID {
				from := stopReqs[stopNames[prev.ID]]
				if _, exists := from.RoadDistances[name]; !exists {
					from.RoadDistances[name] = utils.RoundedDistance(
						utils.Coordinates{Lat: prev.Latitude, Lng: prev.Longitude},
						utils.Coordinates{Lat: stop.Latitude, Lng: stop.Longitude},
					)
				}
			}
			names = append(names, name)
			prev = stop
		}

		busReqs = append(busReqs, requests.BaseRequest{
			Type:        requests.TypeBus,
			Name:        busNames[route.ID],
			Stops:       names,
			IsRoundtrip: len(names) > 1 && names[0] == names[len(names)-1],
		})
	}

	out := make([]requests.BaseRequest, 0, len(stopReqs)+len(busReqs))
	for _, req := range stopReqs {
		out = append(out, *req)
	}
	slices.SortFunc(out, func(a, b requests.BaseRequest) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortFunc(busReqs, func(a, b requests.BaseRequest) int { return cmp.Compare(a.Name, b.Name) })
	return append(out, busReqs...)
}

// tripStopSequences orders the stop times of every trip by stop_sequence.
func (f *Feed) tripStopSequences() map[string][]string {
	byTrip := map[string][]StopTime{}
	for _, st := range f.StopTimes {
		byTrip[st.TripID] = append(byTrip[st.TripID], st)
	}
	out := make(map[string][]string, len(byTrip))
	for trip, times := range byTrip {
		slices.SortStableFunc(times, func(a, b StopTime) int { return cmp.Compare(a.StopSequence, b.StopSequence) })
		stops := make([]string, 0, len(times))
		for _, st := range times {
			stops = append(stops, st.StopID)
		}
		out[trip] = stops
	}
	return out
}

// longestTrip picks the trip of a route with the most stops, breaking ties
// by the smallest trip id.
func longestTrip(trips []Trip, routeID string, tripStops map[string][]string) string {
	var best string
	for _, trip := range trips {
		if trip.RouteID != routeID || len(tripStops[trip.ID]) == 0 {
			continue
		}
		switch n, m := len(tripStops[trip.ID]), len(tripStops[best]); {
		case best == "", n > m, n == m && trip.ID < best:
			best = trip.ID
		}
	}
	return best
}

func uniqueStopNames(stops []Stop) map[string]string {
	count := map[string]int{}
	for _, s := range stops {
		count[s.Name]++
	}
	names := make(map[string]string, len(stops))
	for _, s := range stops {
		name := s.Name
		if count[name] > 1 || name == "" {
			name = fmt.Sprintf("%s (%s)", s.Name, s.ID)
		}
		names[s.ID] = name
	}
	return names
}

func uniqueRouteNames(routes []Route) map[string]string {
	base := func(r Route) string {
		switch {
		case r.ShortName != "":
			return r.ShortName
		case r.LongName != "":
			return r.LongName
		}
		return r.ID
	}
	count := map[string]int{}
	for _, r := range routes {
		count[base(r)]++
	}
	names := make(map[string]string, len(routes))
	for _, r := range routes {
		name := base(r)
		if count[name] > 1 {
			name = fmt.Sprintf("%s (%s)", name, r.ID)
		}
		names[r.ID] = name
	}
	return names
}
