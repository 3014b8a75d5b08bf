/*
Package catalogue is the indexed entity store of the transport catalogue.

It owns stops, buses and directed inter-stop road distances. Every cross
reference is a dense integer StopID resolved through the store, never a
pointer, so the whole state can be written to a snapshot and restored.

# Lifecycle

The store is filled once during a build phase, either from ingested requests
or from a restored snapshot, and is read-only afterwards:

	cat := catalogue.New()
	a := cat.AddStop("A", 55.6, 37.2)
	b := cat.AddStop("B", 55.7, 37.3)
	cat.SetDistance(a.ID, b.ID, 3900)
	cat.IngestBus("750", []string{"A", "B"}, false)

	info := cat.GetBusInfo("750")

There is no update or delete. Once built, the store is safe for any number of
concurrent readers; it is not safe for concurrent writers.

# Distances

Distances are directional. A missing entry reads as 0, which is
indistinguishable from a stored zero-length hop.
*/
package catalogue
