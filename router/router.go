package router

import (
	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/graph"
)

// ItemType tells a waiting step from a riding step.
type ItemType string

const (
	ItemWait ItemType = "Wait"
	ItemBus  ItemType = "Bus"
)

// RouteItem is one itinerary step. StopName is set for waits, BusName and
// SpanCount for rides.
type RouteItem struct {
	Type      ItemType
	Time      float64
	StopName  string
	BusName   string
	SpanCount int
}

// RouteInfo is a journey: the total travel time and its steps.
type RouteInfo struct {
	TotalTime float64
	Items     []RouteItem
}

// TransportRouter answers journey queries against a catalogue and its
// routing state.
type TransportRouter struct {
	cat    *catalogue.Catalogue
	state  *State
	router *graph.Router
}

func New(cat *catalogue.Catalogue, state *State) *TransportRouter {
	return &TransportRouter{
		cat:    cat,
		state:  state,
		router: graph.NewRouter(state.Graph),
	}
}

// State returns the routing state the router was built from.
func (tr *TransportRouter) State() *State { return tr.state }

// GetRouteInfo finds the fastest journey between two stops. A stop that no
// bus serves can never be an endpoint, so such queries are not found even
// though the stop exists.
func (tr *TransportRouter) GetRouteInfo(from, to string) (RouteInfo, bool) {
	if !tr.cat.HasService(from) || !tr.cat.HasService(to) {
		return RouteInfo{}, false
	}
	fromVertex, ok := tr.vertexOf(from)
	if !ok {
		return RouteInfo{}, false
	}
	toVertex, ok := tr.vertexOf(to)
	if !ok {
		return RouteInfo{}, false
	}

	route, ok := tr.router.BuildRoute(fromVertex, toVertex)
	if !ok {
		return RouteInfo{}, false
	}

	wait := tr.state.Settings.BusWaitTime
	info := RouteInfo{
		TotalTime: route.Weight,
		Items:     make([]RouteItem, 0, 2*len(route.Edges)),
	}
	for _, id := range route.Edges {
		edge := tr.state.Graph.Edge(id)
		ride := tr.state.Rides[id]
		info.Items = append(info.Items,
			RouteItem{
				Type:     ItemWait,
				Time:     wait,
				StopName: tr.cat.Stop(tr.state.VertexToStop[edge.From]).Name,
			},
			RouteItem{
				Type:      ItemBus,
				Time:      edge.Weight - wait,
				BusName:   ride.Bus.Name,
				SpanCount: ride.SpanCount,
			},
		)
	}
	return info, true
}

func (tr *TransportRouter) vertexOf(name string) (graph.VertexID, bool) {
	stop, err := tr.cat.FindStop(name)
	if err != nil {
		return 0, false
	}
	v, ok := tr.state.StopToVertex[stop.ID]
	return v, ok
}
