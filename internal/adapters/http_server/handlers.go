package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"trip_planner/internal/app"
	"trip_planner/internal/domain"
)

const maxBody = 1 << 20

// Planner is the upward contract served over HTTP.
type Planner interface {
	PlanItinerary(ctx context.Context, req app.PlanRequest) (domain.Itinerary, error)
	EnrichItinerary(ctx context.Context, it domain.Itinerary, destination string) (domain.Itinerary, error)
	ClearPlaceCache(ctx context.Context)
	CacheStats() domain.CacheStats
}

type Handlers struct{ P Planner }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type enrichRequest struct {
	Destination string           `json:"destination"`
	Itinerary   domain.Itinerary `json:"itinerary"`
}

type statsResponse struct {
	Size       int  `json:"size"`
	Capacity   int  `json:"capacity"`
	TTLSeconds int  `json:"ttl_seconds"`
	Shared     bool `json:"shared"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/itineraries", h.planItinerary)
	s.mux.Post("/v1/itineraries/enrich", h.enrichItinerary)
	s.mux.Delete("/v1/cache/places", h.clearPlaceCache)
	s.mux.Get("/v1/cache/stats", h.cacheStats)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps pipeline errors; only bad input is the caller's fault.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusServiceUnavailable, "Request abandoned", err.Error())
	default:
		log.Error().Err(err).Msg("planner request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal error", "")
	}
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) planItinerary(w http.ResponseWriter, r *http.Request) {
	var req app.PlanRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	it, err := h.P.PlanItinerary(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, it)
}

func (h *Handlers) enrichItinerary(w http.ResponseWriter, r *http.Request) {
	var req enrichRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if req.Destination == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "destination is required")
		return
	}
	it, err := h.P.EnrichItinerary(r.Context(), req.Itinerary, req.Destination)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, it)
}

func (h *Handlers) clearPlaceCache(w http.ResponseWriter, r *http.Request) {
	h.P.ClearPlaceCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) cacheStats(w http.ResponseWriter, r *http.Request) {
	st := h.P.CacheStats()
	writeJSON(w, r, statsResponse{
		Size:       st.Size,
		Capacity:   st.Capacity,
		TTLSeconds: int(st.TTL.Seconds()),
		Shared:     st.Shared,
	})
}
