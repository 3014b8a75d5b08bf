package router

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
)

// newNetwork builds a catalogue with one-way bus "1" over A, B, C and
// roundtrip bus "2" over C, E, C. Stop D has no service.
func newNetwork(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	cat := catalogue.New()
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		if _, err := cat.AddStop(name, 55.5, 37.5+0.01*float64(i)); err != nil {
			t.Fatalf("AddStop(%s): %v", name, err)
		}
	}
	id := func(name string) catalogue.StopID {
		s, err := cat.FindStop(name)
		if err != nil {
			t.Fatal(err)
		}
		return s.ID
	}
	cat.SetDistance(id("A"), id("B"), 1000)
	cat.SetDistance(id("B"), id("C"), 1500)
	cat.SetDistance(id("C"), id("E"), 3000)

	if _, err := cat.IngestBus("1", []string{"A", "B", "C"}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.IngestBus("2", []string{"C", "E", "C"}, true); err != nil {
		t.Fatal(err)
	}
	return cat
}

func newTestRouter(t *testing.T) (*TransportRouter, *State) {
	t.Helper()
	cat := newNetwork(t)
	// 60 km/h is 1000 m/min, which keeps ride times exact
	state, err := BuildState(cat, Settings{BusWaitTime: 6, BusVelocity: 60})
	if err != nil {
		t.Fatalf("BuildState: %v", err)
	}
	return New(cat, state), state
}

func TestBuildState_Graph(t *testing.T) {
	_, state := newTestRouter(t)

	// bus 1 has 5 route positions (10 pairs), bus 2 has 3 (3 pairs)
	if got := state.Graph.EdgeCount(); got != 13 {
		t.Errorf("expected 13 edges, got %d", got)
	}
	if got := len(state.Rides); got != state.Graph.EdgeCount() {
		t.Errorf("every edge needs ride metadata: %d rides for %d edges", got, state.Graph.EdgeCount())
	}
	if got := state.Graph.VertexCount(); got != 5 {
		t.Errorf("graph should be sized to the stop count, got %d", got)
	}

	// vertices are allocated in first-reference order; D is never referenced
	want := map[catalogue.StopID]uint32{0: 0, 1: 1, 2: 2, 4: 3}
	if len(state.StopToVertex) != len(want) {
		t.Fatalf("stop to vertex: %# v", pretty.Formatter(state.StopToVertex))
	}
	for stop, v := range want {
		if uint32(state.StopToVertex[stop]) != v {
			t.Errorf("stop %d: expected vertex %d, got %d", stop, v, state.StopToVertex[stop])
		}
		if state.VertexToStop[state.StopToVertex[stop]] != stop {
			t.Errorf("vertex map is not the inverse for stop %d", stop)
		}
	}

	// A -> C over two hops of bus 1
	e := state.Graph.Edge(1)
	if e.From != 0 || e.To != 2 || e.Weight != 8.5 {
		t.Errorf("unexpected edge 1: %+v", e)
	}
	if r := state.Rides[1]; r.Bus.Name != "1" || r.SpanCount != 2 {
		t.Errorf("unexpected ride for edge 1: %s/%d", r.Bus.Name, r.SpanCount)
	}
}

func TestBuildState_InvalidSettings(t *testing.T) {
	cat := newNetwork(t)
	for _, s := range []Settings{
		{BusWaitTime: 6, BusVelocity: 0},
		{BusWaitTime: -1, BusVelocity: 40},
	} {
		if _, err := BuildState(cat, s); !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("settings %+v: expected ErrInvalidSettings, got %v", s, err)
		}
	}
}

func TestGetRouteInfo(t *testing.T) {
	tr, _ := newTestRouter(t)

	tests := []struct {
		name  string
		from  string
		to    string
		found bool
		want  RouteInfo
	}{
		{
			name:  "direct ride skips intermediate stop",
			from:  "A",
			to:    "C",
			found: true,
			want: RouteInfo{TotalTime: 8.5, Items: []RouteItem{
				{Type: ItemWait, Time: 6, StopName: "A"},
				{Type: ItemBus, Time: 2.5, BusName: "1", SpanCount: 2},
			}},
		},
		{
			name:  "return leg of normalized bus",
			from:  "C",
			to:    "A",
			found: true,
			want: RouteInfo{TotalTime: 8.5, Items: []RouteItem{
				{Type: ItemWait, Time: 6, StopName: "C"},
				{Type: ItemBus, Time: 2.5, BusName: "1", SpanCount: 2},
			}},
		},
		{
			name:  "transfer between buses",
			from:  "A",
			to:    "E",
			found: true,
			want: RouteInfo{TotalTime: 17.5, Items: []RouteItem{
				{Type: ItemWait, Time: 6, StopName: "A"},
				{Type: ItemBus, Time: 2.5, BusName: "1", SpanCount: 2},
				{Type: ItemWait, Time: 6, StopName: "C"},
				{Type: ItemBus, Time: 3, BusName: "2", SpanCount: 1},
			}},
		},
		{
			name:  "same stop",
			from:  "B",
			to:    "B",
			found: true,
			want:  RouteInfo{TotalTime: 0, Items: []RouteItem{}},
		},
		{name: "destination without service", from: "A", to: "D"},
		{name: "origin without service", from: "D", to: "A"},
		{name: "unserved stop to itself", from: "D", to: "D"},
		{name: "unknown stop", from: "A", to: "Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tr.GetRouteInfo(tt.from, tt.to)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if !ok {
				return
			}
			if diff := pretty.Diff(got, tt.want); len(diff) > 0 {
				t.Errorf("route mismatch:\n%v", diff)
			}
		})
	}
}

func TestGetRouteInfo_Unreachable(t *testing.T) {
	cat := newNetwork(t)
	if _, err := cat.AddStop("X", 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.AddStop("Y", 0, 0.01); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.IngestBus("island", []string{"X", "Y"}, false); err != nil {
		t.Fatal(err)
	}
	state, err := BuildState(cat, Settings{BusWaitTime: 2, BusVelocity: 30})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := New(cat, state).GetRouteInfo("A", "X"); ok {
		t.Error("stops in disconnected components should not be routable")
	}
}
