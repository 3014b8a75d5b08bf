package catalogue

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/theoremus-urban-solutions/transport-catalogue/utils"
)

var (
	ErrStopNotFound  = errors.New("stop not found")
	ErrBusNotFound   = errors.New("bus not found")
	ErrDuplicateStop = errors.New("duplicate stop")
	ErrDuplicateBus  = errors.New("duplicate bus")
	ErrStopConflict  = errors.New("stop id and name disagree")
	ErrEmptyRoute    = errors.New("bus route has no stops")
)

// Catalogue stores stops, buses and road distances in memory for fast lookups
type Catalogue struct {
	nextID     StopID
	stops      []*Stop             // StopID -> stop
	stopByName map[string]*Stop    // name -> stop
	buses      []*Bus              // insertion order
	busByName  map[string]*Bus     // name -> bus
	stopBuses  map[StopID][]string // stop -> sorted bus names
	distances  map[StopPair]int64  // (from, to) -> meters
}

// New creates an empty catalogue. Stop ids start at 0 for every new catalogue.
func New() *Catalogue {
	return &Catalogue{
		stopByName: map[string]*Stop{},
		busByName:  map[string]*Bus{},
		stopBuses:  map[StopID][]string{},
		distances:  map[StopPair]int64{},
	}
}

// AddStop appends a new stop under the next free id.
func (c *Catalogue) AddStop(name string, lat, lng float64) (*Stop, error) {
	if _, ok := c.stopByName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateStop, name)
	}
	return c.appendStop(name, lat, lng), nil
}

// RestoreStop adds a stop with a known id, as read back from a snapshot.
// It is idempotent: when the id or the name is already present the existing
// stop is returned and nothing is added. Ids must stay dense, so an id past
// the next free id is rejected.
func (c *Catalogue) RestoreStop(id StopID, name string, lat, lng float64) (*Stop, error) {
	if int(id) < len(c.stops) {
		existing := c.stops[id]
		if existing.Name != name {
			return nil, fmt.Errorf("%w: id %d is %q, not %q", ErrStopConflict, id, existing.Name, name)
		}
		return existing, nil
	}
	if existing, ok := c.stopByName[name]; ok {
		return nil, fmt.Errorf("%w: %q is id %d, not %d", ErrStopConflict, name, existing.ID, id)
	}
	if id != c.nextID {
		return nil, fmt.Errorf("stop id %d out of sequence, next id is %d", id, c.nextID)
	}
	return c.appendStop(name, lat, lng), nil
}

func (c *Catalogue) appendStop(name string, lat, lng float64) *Stop {
	s := &Stop{
		ID:          c.nextID,
		Name:        name,
		Coordinates: utils.Coordinates{Lat: lat, Lng: lng},
	}
	c.nextID++
	c.stops = append(c.stops, s)
	c.stopByName[name] = s
	return s
}

// FindStop looks a stop up by name.
func (c *Catalogue) FindStop(name string) (*Stop, error) {
	s, ok := c.stopByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStopNotFound, name)
	}
	return s, nil
}

// Stop returns the stop with the given id. The id must come from this
// catalogue; an unknown id panics.
func (c *Catalogue) Stop(id StopID) *Stop {
	return c.stops[id]
}

// CheckStop reports whether a stop with this name exists.
func (c *Catalogue) CheckStop(name string) bool {
	_, ok := c.stopByName[name]
	return ok
}

func (c *Catalogue) StopCount() int { return len(c.stops) }

// Stops returns all stops ordered by id. The slice must not be modified.
func (c *Catalogue) Stops() []*Stop { return c.stops }

// Buses returns all buses in insertion order. The slice must not be modified.
func (c *Catalogue) Buses() []*Bus { return c.buses }

// AddBus stores a fully computed bus and registers it on every stop of its
// route. Lengths and flags are taken as given.
func (c *Catalogue) AddBus(bus Bus) (*Bus, error) {
	if _, ok := c.busByName[bus.Name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateBus, bus.Name)
	}
	if len(bus.Stops) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyRoute, bus.Name)
	}
	for _, id := range append([]StopID{bus.LastStop}, bus.Stops...) {
		if int(id) >= len(c.stops) {
			return nil, fmt.Errorf("bus %q: %w: id %d", bus.Name, ErrStopNotFound, id)
		}
	}

	b := &bus
	b.Stops = slices.Clone(bus.Stops)
	c.buses = append(c.buses, b)
	c.busByName[b.Name] = b
	for _, id := range b.Stops {
		names := c.stopBuses[id]
		pos, found := slices.BinarySearch(names, b.Name)
		if !found {
			c.stopBuses[id] = slices.Insert(names, pos, b.Name)
		}
	}
	return b, nil
}

// IngestBus resolves stop names, normalizes a one-way route into a closed
// loop, computes the route metrics and stores the bus. Distances used by the
// route must be set before the bus is ingested.
func (c *Catalogue) IngestBus(name string, stopNames []string, isRoundtrip bool) (*Bus, error) {
	if len(stopNames) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyRoute, name)
	}
	route := make([]StopID, 0, 2*len(stopNames))
	for _, sn := range stopNames {
		s, err := c.FindStop(sn)
		if err != nil {
			return nil, fmt.Errorf("bus %q: %w", name, err)
		}
		route = append(route, s.ID)
	}

	lastStop := route[len(route)-1]
	if !isRoundtrip {
		for i := len(route) - 2; i >= 0; i-- {
			route = append(route, route[i])
		}
		isRoundtrip = true
	}

	bus := Bus{
		Name:        name,
		Stops:       route,
		UniqueStops: countUnique(route),
		IsRoundtrip: isRoundtrip,
		LastStop:    lastStop,
	}
	bus.RoadLength = c.GetSpanDistance(&bus, 0, len(route)-1)
	for i := 1; i < len(route); i++ {
		bus.GeoLength += utils.ComputeDistance(c.stops[route[i-1]].Coordinates, c.stops[route[i]].Coordinates)
	}
	return c.AddBus(bus)
}

func countUnique(route []StopID) int {
	seen := make(map[StopID]struct{}, len(route))
	for _, id := range route {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// FindBus looks a bus up by name.
func (c *Catalogue) FindBus(name string) (*Bus, error) {
	b, ok := c.busByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBusNotFound, name)
	}
	return b, nil
}

// GetBusInfo returns route statistics; the zero BusInfo means not found.
func (c *Catalogue) GetBusInfo(name string) BusInfo {
	b, ok := c.busByName[name]
	if !ok {
		return BusInfo{}
	}
	return BusInfo{
		Found:           true,
		StopCount:       len(b.Stops),
		UniqueStopCount: b.UniqueStops,
		RoadLength:      b.RoadLength,
		GeoLength:       b.GeoLength,
	}
}

// GetBusesInStop returns the names of buses serving a stop in lexicographic
// order. It is empty both for a known stop without service and for an
// unknown stop; use CheckStop to tell them apart.
func (c *Catalogue) GetBusesInStop(name string) []string {
	s, ok := c.stopByName[name]
	if !ok {
		return nil
	}
	return slices.Clone(c.stopBuses[s.ID])
}

// HasService reports whether at least one bus stops at the named stop.
func (c *Catalogue) HasService(name string) bool {
	s, ok := c.stopByName[name]
	return ok && len(c.stopBuses[s.ID]) > 0
}

// SetDistance records the directed road distance from one stop to another,
// replacing any previous value.
func (c *Catalogue) SetDistance(from, to StopID, meters int64) {
	c.distances[StopPair{From: from, To: to}] = meters
}

// GetDistance returns the directed road distance, or 0 when none is recorded.
func (c *Catalogue) GetDistance(from, to StopID) int64 {
	return c.distances[StopPair{From: from, To: to}]
}

// GetSpanDistance sums the road distance of spanCount hops along the bus
// route starting at position start. On a roundtrip bus a hop without a
// forward distance falls back to the reverse direction.
func (c *Catalogue) GetSpanDistance(bus *Bus, start, spanCount int) int64 {
	var total int64
	for i := start; i < start+spanCount; i++ {
		total += c.hopDistance(bus, i)
	}
	return total
}

func (c *Catalogue) hopDistance(bus *Bus, i int) int64 {
	from, to := bus.Stops[i], bus.Stops[i+1]
	d := c.GetDistance(from, to)
	if d == 0 && bus.IsRoundtrip {
		d = c.GetDistance(to, from)
	}
	return d
}

// Distances returns every recorded distance ordered by (from, to).
func (c *Catalogue) Distances() []Distance {
	out := make([]Distance, 0, len(c.distances))
	for k, v := range c.distances {
		out = append(out, Distance{From: k.From, To: k.To, Meters: v})
	}
	slices.SortFunc(out, func(a, b Distance) int {
		if n := cmp.Compare(a.From, b.From); n != 0 {
			return n
		}
		return cmp.Compare(a.To, b.To)
	})
	return out
}
