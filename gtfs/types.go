package gtfs

type Stop struct {
	ID           string  `csv:"stop_id"`
	Name         string  `csv:"stop_name"`
	Latitude     float64 `csv:"stop_lat"`
	Longitude    float64 `csv:"stop_lon"`
	LocationType string  `csv:"location_type"`
}

type Route struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      int    `csv:"route_type"`
}

type Trip struct {
	RouteID     string `csv:"route_id"`
	ID          string `csv:"trip_id"`
	DirectionID string `csv:"direction_id"`
}

type StopTime struct {
	TripID       string `csv:"trip_id"`
	StopID       string `csv:"stop_id"`
	StopSequence int    `csv:"stop_sequence"`
}

// Feed holds the parsed records of a GTFS static feed.
type Feed struct {
	Stops     []Stop
	Routes    []Route
	Trips     []Trip
	StopTimes []StopTime
}
