package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/go-click-counter/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

// maxBodyBytes matches the 4.5 MB request limit of the serverless host.
const maxBodyBytes = 4500 << 10

type HTTPHandler struct {
	service ports.ClickService
}

func NewHTTPHandler(service ports.ClickService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Log records a click event
func (h *HTTPHandler) Log(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || !json.Valid(body) {
		writeText(w, http.StatusBadRequest, "bad json")
		return
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		writeText(w, http.StatusBadRequest, "bad json")
		return
	}
	// non-object JSON carries no fields
	payload, _ := decoded.(map[string]any)

	event, err := h.service.LogClick(r.Context(), payload)
	if errors.Is(err, domain.ErrMissingAdID) {
		writeText(w, http.StatusBadRequest, "missing ad_id")
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("log click failed")
		writeText(w, http.StatusInternalServerError, "internal error")
		return
	}

	zerolog.Ctx(r.Context()).Debug().Str("ad_id", event.AdID).Str("day", event.Day()).Msg("click logged")
	writeText(w, http.StatusOK, "ok")
}

// Stats returns click totals per ad_id for the last `days` days
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days := domain.ParseDays(r.URL.Query().Get("days"))

	stats, err := h.service.Stats(r.Context(), days)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("days", days).Msg("stats failed")
		writeText(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

// NotFound answers every unmatched route
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, "not found")
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
