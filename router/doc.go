/*
Package router turns the bus network of a catalogue into a travel-time graph
and answers minimum-time journey queries over it.

Every bus contributes one edge per pair of route positions i<j, meaning "board
here, ride without transferring, get off there". The edge weight is the
boarding wait plus the ride time for the road distance between the positions;
transfers happen implicitly where two edges share a stop vertex.

All routing state (settings, graph, stop/vertex maps and per-edge ride
metadata) lives in one State value so it can be snapshotted and restored as a
unit:

	state, err := router.BuildState(cat, router.Settings{BusWaitTime: 6, BusVelocity: 40})
	tr := router.New(cat, state)
	info, ok := tr.GetRouteInfo("Biryulyovo Zapadnoye", "Universam")
*/
package router
