package requests

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/formatter"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
	"github.com/theoremus-urban-solutions/transport-catalogue/snapshot"
)

const notFound = "not found"

// Handler answers stat requests over a read-only catalogue. The route
// engine is created on the first Route request and reused afterwards.
type Handler struct {
	cat     *catalogue.Catalogue
	render  renderer.Settings
	routing *router.Settings
	state   *router.State
	router  *router.TransportRouter
}

// NewHandler serves a restored snapshot.
func NewHandler(s *snapshot.Snapshot) *Handler {
	h := &Handler{cat: s.Catalogue, render: s.RenderSettings, state: s.Router}
	if s.Router != nil {
		settings := s.Router.Settings
		h.routing = &settings
	}
	return h
}

// WithRoutingSettings lets a handler without routing state build the graph
// itself when the first Route request arrives.
func (h *Handler) WithRoutingSettings(settings router.Settings) *Handler {
	h.routing = &settings
	return h
}

// Process answers the requests in order and returns the response array.
func (h *Handler) Process(reqs []StatRequest) (any, error) {
	b := formatter.NewBuilder()
	b.StartArray()
	for _, req := range reqs {
		if err := h.answer(b, req); err != nil {
			return nil, fmt.Errorf("request %d: %w", req.ID, err)
		}
	}
	b.EndArray()
	return b.Build()
}

func (h *Handler) answer(b *formatter.Builder, req StatRequest) error {
	b.StartDict().Key("request_id").Value(req.ID)
	switch req.Type {
	case TypeStop:
		h.answerStop(b, req.Name)
	case TypeBus:
		h.answerBus(b, req.Name)
	case TypeMap:
		if err := h.answerMap(b); err != nil {
			return err
		}
	case TypeRoute:
		if err := h.answerRoute(b, req.From, req.To); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown request type %q", ErrInvalidDocument, req.Type)
	}
	b.EndDict()
	return nil
}

func (h *Handler) answerStop(b *formatter.Builder, name string) {
	if !h.cat.CheckStop(name) {
		b.Key("error_message").Value(notFound)
		return
	}
	b.Key("buses").StartArray()
	for _, bus := range h.cat.GetBusesInStop(name) {
		b.Value(bus)
	}
	b.EndArray()
}

func (h *Handler) answerBus(b *formatter.Builder, name string) {
	info := h.cat.GetBusInfo(name)
	if !info.Found {
		b.Key("error_message").Value(notFound)
		return
	}
	b.Key("curvature").Value(info.Curvature()).
		Key("route_length").Value(info.RoadLength).
		Key("stop_count").Value(info.StopCount).
		Key("unique_stop_count").Value(info.UniqueStopCount)
}

func (h *Handler) answerMap(b *formatter.Builder) error {
	var svg strings.Builder
	if err := renderer.New(h.render, h.cat).Render(&svg); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	b.Key("map").Value(svg.String())
	return nil
}

func (h *Handler) answerRoute(b *formatter.Builder, from, to string) error {
	tr, err := h.transportRouter()
	if err != nil {
		return err
	}
	if tr == nil {
		b.Key("error_message").Value(notFound)
		return nil
	}
	info, ok := tr.GetRouteInfo(from, to)
	if !ok {
		b.Key("error_message").Value(notFound)
		return nil
	}

	b.Key("total_time").Value(info.TotalTime)
	b.Key("items").StartArray()
	for _, item := range info.Items {
		b.StartDict().Key("type").Value(string(item.Type))
		switch item.Type {
		case router.ItemWait:
			b.Key("stop_name").Value(item.StopName)
		case router.ItemBus:
			b.Key("bus").Value(item.BusName).Key("span_count").Value(item.SpanCount)
		}
		b.Key("time").Value(item.Time).EndDict()
	}
	b.EndArray()
	return nil
}

// transportRouter returns the route engine, building it on first use. It
// returns nil when neither routing state nor settings are available.
func (h *Handler) transportRouter() (*router.TransportRouter, error) {
	if h.router != nil {
		return h.router, nil
	}
	if h.state == nil {
		if h.routing == nil {
			log.Warn().Msg("No routing settings, route requests will not be found")
			return nil, nil
		}
		state, err := router.BuildState(h.cat, *h.routing)
		if err != nil {
			return nil, err
		}
		h.state = state
	}
	h.router = router.New(h.cat, h.state)
	return h.router, nil
}
