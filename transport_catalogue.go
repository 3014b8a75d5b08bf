// Package transportcatalogue wires the two batch modes of the catalogue:
// make_base builds a snapshot from base requests and process_requests answers
// stat requests against a restored snapshot.
package transportcatalogue

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/transport-catalogue/formatter"
	"github.com/theoremus-urban-solutions/transport-catalogue/requests"
	"github.com/theoremus-urban-solutions/transport-catalogue/snapshot"
)

// MakeBase reads a make_base document, builds the catalogue and routing
// state, and writes the snapshot to the file the document names.
func MakeBase(r io.Reader) error {
	doc, err := requests.DecodeMakeBase(r)
	if err != nil {
		return err
	}
	s, err := requests.BuildSnapshot(doc)
	if err != nil {
		return fmt.Errorf("failed to build catalogue: %w", err)
	}
	file := doc.SerializationSettings.File
	if err := snapshot.SerializeToFile(s, file); err != nil {
		return err
	}

	ev := log.Info().Str("file", file).Int("stops", s.Catalogue.StopCount()).Int("buses", len(s.Catalogue.Buses()))
	if s.Router != nil {
		ev = ev.Int("edges", s.Router.Graph.EdgeCount())
	}
	ev.Msg("Snapshot written")
	return nil
}

// ProcessRequests reads a process_requests document, restores the snapshot
// it names and writes the response array to w.
func ProcessRequests(r io.Reader, w io.Writer, indent int) error {
	doc, err := requests.DecodeProcessRequests(r)
	if err != nil {
		return err
	}
	s, err := snapshot.DeserializeFromFile(doc.SerializationSettings.File)
	if err != nil {
		return err
	}
	log.Debug().
		Str("file", doc.SerializationSettings.File).
		Int("requests", len(doc.StatRequests)).
		Msg("Snapshot restored")

	resp, err := requests.NewHandler(s).Process(doc.StatRequests)
	if err != nil {
		return err
	}
	return formatter.WriteJSON(w, resp, indent)
}
