package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"envio-courier-tracking/internal/http/handlers"
	mw "envio-courier-tracking/internal/http/middleware"
	"envio-courier-tracking/internal/http/middleware/ratelimit"
	"envio-courier-tracking/internal/logx"
)

// New constructs the chi-based http.Handler with base middleware and routes.
// The websocket routes stay outside the timeout middleware; a stream is
// expected to outlive any sane request deadline.
func New(h *handlers.Handlers, tr *handlers.TrackingHandler, wsH *handlers.WSHandler, rl *ratelimit.Middleware, logger logx.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.Observability(logger))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(http.HandlerFunc(h.NotFound))

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(5 * time.Second))
		if rl != nil {
			r.Use(rl.Handler())
		}

		r.Get("/api/v1/drivers", tr.ListDrivers)
		r.Get("/api/v1/tracking/{orderID}", tr.GetShipment)
		r.Get("/api/v1/tracking/{orderID}/updates", tr.GetTimeline)
		r.Post("/api/v1/tracking/{orderID}/updates", tr.AppendTimeline)
	})

	if wsH != nil {
		r.Get("/ws/drivers", wsH.StreamDrivers)
		r.Get("/ws/tracking/{orderID}", wsH.StreamShipment)
	}

	return r
}
