package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"envio-courier-tracking/internal/apperr"
	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/logx"
)

// TrackingHandler serves the read side of entity tracking.
type TrackingHandler struct {
	uc       trackingUsecase
	timeline timelineWriter
	logger   logx.Logger
}

// NewTrackingHandler wires the tracking usecase into HTTP handlers.
func NewTrackingHandler(uc trackingUsecase, timeline timelineWriter, logger logx.Logger) *TrackingHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &TrackingHandler{uc: uc, timeline: timeline, logger: logger}
}

// ListDrivers handles GET /api/v1/drivers?status={filter}.
func (h *TrackingHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	if filter != "" && filter != "all" && !domain.DriverStatus(filter).Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown status filter")
		return
	}

	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	drivers, err := h.uc.Drivers(ctx, filter)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driversToResponse(drivers))
}

// GetShipment handles GET /api/v1/tracking/{orderID}.
func (h *TrackingHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	s, err := h.uc.Shipment(ctx, orderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, shipmentToResponse(s))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetTimeline handles GET /api/v1/tracking/{orderID}/updates.
func (h *TrackingHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	updates, err := h.uc.Timeline(ctx, orderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, timelineToResponse(updates))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// AppendTimeline handles POST /api/v1/tracking/{orderID}/updates.
func (h *TrackingHandler) AppendTimeline(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req appendTimelineRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	err := h.timeline.RecordTimelineUpdate(ctx, orderID, req.toModel())
	switch {
	case err == nil:
		h.uc.InvalidateOrder(orderID)
		writeJSON(h.logger, w, r, http.StatusCreated, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
