package catalogue

import (
	"github.com/theoremus-urban-solutions/transport-catalogue/utils"
)

// StopID is the dense identifier of a stop, assigned at creation.
type StopID uint32

// Stop is a named geographic point.
type Stop struct {
	ID          StopID
	Name        string
	Coordinates utils.Coordinates
}

// Bus is a named route over stops. Routes are always closed loops after
// ingestion: one-way lines are normalized by appending the reverse leg.
type Bus struct {
	Name        string
	Stops       []StopID
	UniqueStops int
	RoadLength  int64   // meters, sum of directed distances along Stops
	GeoLength   float64 // meters, great-circle sum along Stops
	IsRoundtrip bool
	// LastStop is the declared terminal of the bus as ingested, kept so the
	// renderer can tell real endpoints from the synthetic return leg.
	LastStop StopID
}

// BusInfo is the answer to a bus stat query. The zero value means not found.
type BusInfo struct {
	Found           bool
	StopCount       int
	UniqueStopCount int
	RoadLength      int64
	GeoLength       float64
}

// Curvature is the ratio of road length to great-circle length. A route
// without geographic extent has curvature 0.
func (bi BusInfo) Curvature() float64 {
	if utils.IsZero(bi.GeoLength) {
		return 0
	}
	return float64(bi.RoadLength) / bi.GeoLength
}

// StopPair is a directed (from, to) key of the distance table.
type StopPair struct {
	From StopID
	To   StopID
}

// Distance is one directed road distance entry.
type Distance struct {
	From   StopID
	To     StopID
	Meters int64
}
