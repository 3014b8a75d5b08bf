// Package snapshot persists a built catalogue, its render settings and the
// routing state as one binary artifact.
//
// The artifact uses the protocol buffers wire format so that it can be
// inspected with standard tooling (protoc --decode_raw). Field numbers:
//
//	Snapshot       1 catalogue, 2 render_settings, 3 router
//	Catalogue      1 stops, 2 buses, 3 distances
//	Stop           1 id, 2 name, 3 lat, 4 lng
//	Bus            1 name, 2 route (packed stop ids), 3 unique_stops,
//	               4 road_length, 5 geo_length, 6 is_roundtrip, 7 last_stop
//	Distance       1 from, 2 to, 3 meters
//	RenderSettings 1 width, 2 height, 3 padding, 4 line_width, 5 stop_radius,
//	               6 bus_label_font_size, 7-8 bus_label_offset,
//	               9 stop_label_font_size, 10-11 stop_label_offset,
//	               12 underlayer_color, 13 underlayer_width, 14 color_palette
//	Color          oneof 1 name, 2 rgb, 3 rgba (empty message is "none")
//	Router         1 settings, 2 edges, 3 stop_vertex, 4 edge_bus_span
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
)

// ErrCorruptSnapshot is returned when the bytes do not describe a consistent
// snapshot. Nothing from a corrupt snapshot is usable.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the full state exchanged between make_base and
// process_requests. Router may be nil, in which case it is rebuilt on demand.
type Snapshot struct {
	Catalogue      *catalogue.Catalogue
	RenderSettings renderer.Settings
	Router         *router.State
}

// Serialize encodes a snapshot. Equal states always encode to equal bytes.
func Serialize(s *Snapshot) ([]byte, error) {
	if s == nil || s.Catalogue == nil {
		return nil, errors.New("failed to encode snapshot: no catalogue")
	}
	b, err := appendSnapshot(nil, s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return b, nil
}

// Deserialize restores a snapshot in dependency order: stops, buses,
// distances, render settings, then the routing state.
//
// Any failure wraps ErrCorruptSnapshot and no partial state is returned.
func Deserialize(data []byte) (*Snapshot, error) {
	s, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return s, nil
}

// SerializeToFile writes a snapshot to path, replacing any existing file.
func SerializeToFile(s *Snapshot, path string) error {
	data, err := Serialize(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DeserializeFromFile reads a snapshot written by SerializeToFile.
func DeserializeFromFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return Deserialize(data)
}

// SerializeToWriter writes a snapshot to w.
func SerializeToWriter(s *Snapshot, w io.Writer) error {
	data, err := Serialize(s)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// DeserializeFromReader reads a whole snapshot from r.
func DeserializeFromReader(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Deserialize(data)
}
