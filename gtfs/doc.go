/*
Package gtfs converts a GTFS static feed into make_base base requests.

Only the files that describe the network shape are read: stops.txt,
routes.txt, trips.txt and stop_times.txt. Each route becomes one bus that
follows its longest trip, and consecutive stops of that trip get a road
distance equal to their rounded great-circle distance.

# Basic Usage

	feed, err := gtfs.LoadFromZip("gtfs.zip")
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load GTFS")
	}
	doc := feed.MakeBaseDocument("transport.db", gtfs.DefaultRouting)

The resulting document can be written as JSON and fed to make_base.

# Naming

Stop and bus names must be unique in a catalogue while GTFS names are not.
Clashing stop names get the stop_id appended ("Central (S12)"), clashing bus
names get the route_id appended.
*/
package gtfs
