package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/logx"
	"envio-courier-tracking/internal/tracking"
	"envio-courier-tracking/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type geoDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type viewDTO struct {
	EntityID    string            `json:"entity_id"`
	Kind        domain.EntityKind `json:"kind"`
	Badge       badgeDTO          `json:"badge"`
	HasLocation bool              `json:"has_location"`
	Center      *geoDTO           `json:"center,omitempty"`
	Zoom        int               `json:"zoom,omitempty"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
	ETA         *time.Time        `json:"eta,omitempty"`
}

// stateMessage is the full session state pushed on every accepted change.
type stateMessage struct {
	Type     string        `json:"type"`
	Drivers  []driverDTO   `json:"drivers,omitempty"`
	Shipment *shipmentDTO  `json:"shipment,omitempty"`
	Timeline []timelineDTO `json:"timeline,omitempty"`
	Selected *viewDTO      `json:"selected,omitempty"`
}

// WSHandler upgrades tracking stream connections and binds each one to its
// own live session.
type WSHandler struct {
	sessions sessionFactory
	hub      *ws.Hub
	logger   logx.Logger
}

// NewWSHandler wires the session factory and hub into the stream endpoints.
func NewWSHandler(sessions sessionFactory, hub *ws.Hub, logger logx.Logger) *WSHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &WSHandler{sessions: sessions, hub: hub, logger: logger}
}

// StreamDrivers handles GET /ws/drivers?status={filter}. The connection
// receives the current driver board immediately and a fresh copy after every
// accepted change.
func (h *WSHandler) StreamDrivers(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	if filter != "" && filter != "all" && !domain.DriverStatus(filter).Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown status filter")
		return
	}
	h.stream(w, r, func(ctx context.Context) (*tracking.Session, error) {
		return h.sessions.NewDriverSession(ctx, filter)
	})
}

// StreamShipment handles GET /ws/tracking/{orderID}.
func (h *WSHandler) StreamShipment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	h.stream(w, r, func(ctx context.Context) (*tracking.Session, error) {
		return h.sessions.NewShipmentSession(ctx, orderID)
	})
}

func (h *WSHandler) stream(w http.ResponseWriter, r *http.Request, open func(context.Context) (*tracking.Session, error)) {
	loadCtx, cancel := withDBTimeout(r.Context())
	sess, err := open(loadCtx)
	cancel()
	if err != nil {
		h.logger.Warn("tracking session open failed",
			logx.String("req_id", reqID(r.Context())),
			logx.Any("err", err),
		)
		writeError(h.logger, w, r, http.StatusBadGateway, "tracking unavailable")
		return
	}
	defer sess.Close()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the handshake error
		h.logger.Debug("ws upgrade failed", logx.Any("err", err))
		return
	}

	client := ws.NewClient(uuid.NewString(), conn, h.logger)
	if !h.hub.Add(client) {
		conn.Close()
		return
	}
	defer h.hub.Remove(client.ID)

	push := func() {
		b, err := json.Marshal(h.stateOf(sess))
		if err != nil {
			h.logger.Error("state marshal failed", logx.Any("err", err))
			return
		}
		if !client.Send(b) {
			h.logger.Warn("ws send buffer full", logx.String("client_id", client.ID))
		}
	}
	sess.SetOnChange(push)

	go client.WritePump()
	push()

	client.ReadPump(func(cmd ws.Command) {
		switch cmd.Type {
		case ws.CommandSelect:
			sess.Select(cmd.ID)
		case ws.CommandRefresh:
			ctx, cancel := withDBTimeout(context.Background())
			defer cancel()
			if err := sess.Refresh(ctx); err != nil {
				h.logger.Warn("session refresh failed",
					logx.String("session", sess.ID()),
					logx.Any("err", err),
				)
			}
		}
	})
}

func (h *WSHandler) stateOf(sess *tracking.Session) stateMessage {
	msg := stateMessage{Type: "state"}

	for _, e := range sess.Entities() {
		switch c := e.(type) {
		case domain.Driver:
			msg.Drivers = append(msg.Drivers, driverToResponse(c))
		case domain.Shipment:
			dto := shipmentToResponse(c)
			msg.Shipment = &dto
		}
	}
	if sess.Kind() == domain.KindShipment {
		msg.Timeline = timelineToResponse(sess.Timeline())
	}
	if v, ok := sess.SelectedView(); ok {
		msg.Selected = viewToResponse(v)
	}
	return msg
}

func viewToResponse(v tracking.View) *viewDTO {
	dto := &viewDTO{
		EntityID:    v.EntityID,
		Kind:        v.Kind,
		Badge:       badgeToResponse(v.Badge),
		HasLocation: v.HasLocation,
		ETA:         v.ETA,
	}
	if v.HasLocation {
		dto.Center = &geoDTO{Latitude: v.Center.Lat, Longitude: v.Center.Lng}
		dto.Zoom = v.Zoom
		ts := v.UpdatedAt
		dto.UpdatedAt = &ts
	}
	return dto
}
