package requests

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
	"github.com/theoremus-urban-solutions/transport-catalogue/snapshot"
)

// Ingest fills a new catalogue from base requests: every stop first, then
// every road distance, then the buses, so that bus lengths see all
// distances regardless of request order.
func Ingest(reqs []BaseRequest) (*catalogue.Catalogue, error) {
	cat := catalogue.New()

	for _, r := range reqs {
		if r.Type != TypeStop {
			continue
		}
		if _, err := cat.AddStop(r.Name, r.Latitude, r.Longitude); err != nil {
			return nil, err
		}
	}

	var distances int
	for _, r := range reqs {
		if r.Type != TypeStop {
			continue
		}
		from, err := cat.FindStop(r.Name)
		if err != nil {
			return nil, err
		}
		for _, name := range slices.Sorted(maps.Keys(r.RoadDistances)) {
			to, err := cat.FindStop(name)
			if err != nil {
				return nil, fmt.Errorf("road distance from %q: %w", r.Name, err)
			}
			cat.SetDistance(from.ID, to.ID, r.RoadDistances[name])
			distances++
		}
	}

	for _, r := range reqs {
		if r.Type != TypeBus {
			continue
		}
		if _, err := cat.IngestBus(r.Name, r.Stops, r.IsRoundtrip); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("stops", cat.StopCount()).
		Int("buses", len(cat.Buses())).
		Int("distances", distances).
		Msg("Ingested base requests")
	return cat, nil
}

// BuildSnapshot ingests a make_base document and derives the routing state
// eagerly, so the snapshot is ready to serve route queries.
func BuildSnapshot(doc *MakeBaseDocument) (*snapshot.Snapshot, error) {
	cat, err := Ingest(doc.BaseRequests)
	if err != nil {
		return nil, err
	}
	s := &snapshot.Snapshot{Catalogue: cat}
	if doc.RenderSettings != nil {
		s.RenderSettings = doc.RenderSettings.Settings()
	}
	if doc.RoutingSettings != nil {
		if s.Router, err = router.BuildState(cat, doc.RoutingSettings.Settings()); err != nil {
			return nil, err
		}
	}
	return s, nil
}
