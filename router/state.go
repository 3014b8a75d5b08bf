package router

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/graph"
)

// metersPerMinute converts km/h into m/min.
const metersPerMinute = 1000.0 / 60.0

var ErrInvalidSettings = errors.New("invalid routing settings")

// Settings are the routing parameters.
type Settings struct {
	BusWaitTime float64 // minutes spent waiting at every boarding
	BusVelocity float64 // km/h
}

// Ride annotates a graph edge with the bus ridden and the number of stop to
// stop hops it covers.
type Ride struct {
	Bus       *catalogue.Bus
	SpanCount int
}

// State is everything the router needs besides the catalogue.
type State struct {
	Settings     Settings
	Graph        *graph.DirectedWeightedGraph
	StopToVertex map[catalogue.StopID]graph.VertexID
	VertexToStop map[graph.VertexID]catalogue.StopID
	Rides        []Ride // indexed by graph.EdgeID
}

// NewState returns an empty state whose graph has one vertex per catalogue stop.
func NewState(settings Settings, stopCount int) *State {
	return &State{
		Settings:     settings,
		Graph:        graph.NewDirectedWeightedGraph(stopCount),
		StopToVertex: map[catalogue.StopID]graph.VertexID{},
		VertexToStop: map[graph.VertexID]catalogue.StopID{},
	}
}

// BindVertex records the stop <-> vertex pair.
func (s *State) BindVertex(stop catalogue.StopID, v graph.VertexID) {
	s.StopToVertex[stop] = v
	s.VertexToStop[v] = stop
}

// AddRide adds a graph edge together with its ride metadata.
func (s *State) AddRide(e graph.Edge, ride Ride) graph.EdgeID {
	id := s.Graph.AddEdge(e)
	s.Rides = append(s.Rides, ride)
	return id
}

// vertexFor returns the vertex of a stop, allocating the next free one on
// first reference.
func (s *State) vertexFor(stop catalogue.StopID) graph.VertexID {
	if v, ok := s.StopToVertex[stop]; ok {
		return v
	}
	v := graph.VertexID(len(s.StopToVertex))
	s.BindVertex(stop, v)
	return v
}

// BuildState derives the routing graph from a finalized catalogue.
func BuildState(cat *catalogue.Catalogue, settings Settings) (*State, error) {
	if settings.BusVelocity <= 0 || settings.BusWaitTime < 0 {
		return nil, fmt.Errorf("%w: wait %v min, velocity %v km/h", ErrInvalidSettings, settings.BusWaitTime, settings.BusVelocity)
	}

	s := NewState(settings, cat.StopCount())
	velocity := settings.BusVelocity * metersPerMinute
	for _, bus := range cat.Buses() {
		for _, stop := range bus.Stops {
			s.vertexFor(stop)
		}
		for i := 0; i < len(bus.Stops)-1; i++ {
			from := s.StopToVertex[bus.Stops[i]]
			var meters int64
			for j := i + 1; j < len(bus.Stops); j++ {
				meters += cat.GetSpanDistance(bus, j-1, 1)
				s.AddRide(graph.Edge{
					From:   from,
					To:     s.StopToVertex[bus.Stops[j]],
					Weight: settings.BusWaitTime + float64(meters)/velocity,
				}, Ride{Bus: bus, SpanCount: j - i})
			}
		}
	}

	log.Debug().
		Int("vertices", len(s.StopToVertex)).
		Int("edges", s.Graph.EdgeCount()).
		Msg("Built route graph")
	return s, nil
}
