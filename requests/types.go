package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

// ErrInvalidDocument is returned when a request document does not decode or
// fails validation.
var ErrInvalidDocument = errors.New("invalid request document")

const (
	TypeStop  = "Stop"
	TypeBus   = "Bus"
	TypeMap   = "Map"
	TypeRoute = "Route"
)

// BaseRequest describes one stop or one bus of the network.
type BaseRequest struct {
	Type string `json:"type" validate:"required,oneof=Stop Bus"`
	Name string `json:"name" validate:"required"`

	Latitude      float64          `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64          `json:"longitude" validate:"gte=-180,lte=180"`
	RoadDistances map[string]int64 `json:"road_distances" validate:"dive,keys,required,endkeys,gte=0"`

	Stops       []string `json:"stops" validate:"required_if=Type Bus,dive,required"`
	IsRoundtrip bool     `json:"is_roundtrip"`
}

// MarshalJSON writes only the fields that belong to the request type.
func (r BaseRequest) MarshalJSON() ([]byte, error) {
	if r.Type == TypeBus {
		return json.Marshal(struct {
			Type        string   `json:"type"`
			Name        string   `json:"name"`
			Stops       []string `json:"stops"`
			IsRoundtrip bool     `json:"is_roundtrip"`
		}{r.Type, r.Name, r.Stops, r.IsRoundtrip})
	}
	distances := r.RoadDistances
	if distances == nil {
		distances = map[string]int64{}
	}
	return json.Marshal(struct {
		Type          string           `json:"type"`
		Name          string           `json:"name"`
		Latitude      float64          `json:"latitude"`
		Longitude     float64          `json:"longitude"`
		RoadDistances map[string]int64 `json:"road_distances"`
	}{r.Type, r.Name, r.Latitude, r.Longitude, distances})
}

// Offset is a [dx, dy] pair.
type Offset [2]float64

func (o Offset) Point() svg.Point {
	return svg.Point{X: o[0], Y: o[1]}
}

type RenderSettings struct {
	Width             float64 `json:"width" validate:"gt=0,lte=100000"`
	Height            float64 `json:"height" validate:"gt=0,lte=100000"`
	Padding           float64 `json:"padding" validate:"gte=0"`
	LineWidth         float64 `json:"line_width" validate:"gte=0,lte=100000"`
	StopRadius        float64 `json:"stop_radius" validate:"gte=0,lte=100000"`
	BusLabelFontSize  int     `json:"bus_label_font_size" validate:"gte=0,lte=100000"`
	BusLabelOffset    Offset  `json:"bus_label_offset"`
	StopLabelFontSize int     `json:"stop_label_font_size" validate:"gte=0,lte=100000"`
	StopLabelOffset   Offset  `json:"stop_label_offset"`
	UnderlayerColor   Color   `json:"underlayer_color"`
	UnderlayerWidth   float64 `json:"underlayer_width" validate:"gte=0,lte=100000"`
	ColorPalette      []Color `json:"color_palette"`
}

// Settings converts the document form into renderer settings. A missing
// underlayer color renders as none.
func (rs *RenderSettings) Settings() renderer.Settings {
	underlayer := rs.UnderlayerColor.Color
	if underlayer == nil {
		underlayer = svg.NoneColor
	}
	palette := make([]svg.Color, 0, len(rs.ColorPalette))
	for _, c := range rs.ColorPalette {
		palette = append(palette, c.OrNone())
	}
	return renderer.Settings{
		Width:             rs.Width,
		Height:            rs.Height,
		Padding:           rs.Padding,
		LineWidth:         rs.LineWidth,
		StopRadius:        rs.StopRadius,
		BusLabelFontSize:  rs.BusLabelFontSize,
		BusLabelOffset:    rs.BusLabelOffset.Point(),
		StopLabelFontSize: rs.StopLabelFontSize,
		StopLabelOffset:   rs.StopLabelOffset.Point(),
		UnderlayerColor:   underlayer,
		UnderlayerWidth:   rs.UnderlayerWidth,
		ColorPalette:      palette,
	}
}

type RoutingSettings struct {
	BusWaitTime float64 `json:"bus_wait_time" validate:"gte=0,lte=1000"`
	BusVelocity float64 `json:"bus_velocity" validate:"gt=0,lte=1000"`
}

func (rs *RoutingSettings) Settings() router.Settings {
	return router.Settings{BusWaitTime: rs.BusWaitTime, BusVelocity: rs.BusVelocity}
}

type SerializationSettings struct {
	File string `json:"file" validate:"required"`
}

// StatRequest is one query of process_requests.
type StatRequest struct {
	ID   int64  `json:"id"`
	Type string `json:"type" validate:"required,oneof=Stop Bus Map Route"`
	Name string `json:"name" validate:"required_if=Type Stop,required_if=Type Bus"`
	From string `json:"from" validate:"required_if=Type Route"`
	To   string `json:"to" validate:"required_if=Type Route"`
}

// MakeBaseDocument is the input of make_base.
type MakeBaseDocument struct {
	BaseRequests          []BaseRequest         `json:"base_requests" validate:"dive"`
	RenderSettings        *RenderSettings       `json:"render_settings,omitempty" validate:"omitempty"`
	RoutingSettings       *RoutingSettings      `json:"routing_settings,omitempty" validate:"omitempty"`
	SerializationSettings SerializationSettings `json:"serialization_settings"`
}

// ProcessRequestsDocument is the input of process_requests.
type ProcessRequestsDocument struct {
	SerializationSettings SerializationSettings `json:"serialization_settings"`
	StatRequests          []StatRequest         `json:"stat_requests" validate:"dive"`
}

var validate = validator.New()

func decode(r io.Reader, doc any) error {
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// DecodeMakeBase reads and validates a make_base document.
func DecodeMakeBase(r io.Reader) (*MakeBaseDocument, error) {
	var doc MakeBaseDocument
	if err := decode(r, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeProcessRequests reads and validates a process_requests document.
func DecodeProcessRequests(r io.Reader) (*ProcessRequestsDocument, error) {
	var doc ProcessRequestsDocument
	if err := decode(r, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
