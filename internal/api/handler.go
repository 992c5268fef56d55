// Package api exposes the framing engine over HTTP for on-demand requests.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/argus/internal/framing"
	"github.com/UnknownOlympus/argus/internal/models"
	polyline "github.com/twpayne/go-polyline"
)

// FramingPath is the route of the framing endpoint.
const FramingPath = "/v1/framing"

// maxBodyBytes bounds the size of a framing request body.
const maxBodyBytes = 1 << 20

// Framer computes a camera pose for a framing request.
type Framer interface {
	Frame(ctx context.Context, req framing.Request) (models.CameraPose, error)
}

// FramingRequest is the JSON body of a framing request.
type FramingRequest struct {
	Points   []models.Point `json:"points"`
	Polyline string         `json:"polyline,omitempty"` // Encoded polyline, appended after Points.
	Heading  float64        `json:"heading"`
	Padding  []float64      `json:"padding,omitempty"` // Ordered (top, right, bottom, left).
	Sequence *int64         `json:"sequence,omitempty"`
}

// FramingResponse is the camera pose plus the echoed request sequence.
type FramingResponse struct {
	models.CameraPose

	Sequence *int64 `json:"sequence,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves framing requests.
type Handler struct {
	log    *slog.Logger
	framer Framer
}

// NewHandler creates a new Handler backed by the given framer.
func NewHandler(log *slog.Logger, framer Framer) *Handler {
	return &Handler{log: log, framer: framer}
}

// Register mounts the handler on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle(FramingPath, h)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.sendError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body FramingRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&body); err != nil {
		h.sendError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	req, err := body.toRequest()
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pose, err := h.framer.Frame(r.Context(), req)
	if err != nil {
		if isCallerError(err) {
			h.sendError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "Failed to frame request", "error", err)
		h.sendError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	h.sendJSON(w, r, http.StatusOK, FramingResponse{CameraPose: pose, Sequence: body.Sequence})
}

// toRequest converts the wire body into an engine request.
func (b FramingRequest) toRequest() (framing.Request, error) {
	points := b.Points
	if b.Polyline != "" {
		coords, _, err := polyline.DecodeCoords([]byte(b.Polyline))
		if err != nil {
			return framing.Request{}, fmt.Errorf("invalid polyline: %w", err)
		}
		for _, coord := range coords {
			points = append(points, models.Point{Latitude: coord[0], Longitude: coord[1]})
		}
	}

	var padding models.Padding
	if b.Padding != nil {
		var err error
		if padding, err = models.PaddingFromSlice(b.Padding); err != nil {
			return framing.Request{}, err
		}
	}

	return framing.Request{Points: points, Heading: b.Heading, Padding: padding}, nil
}

func isCallerError(err error) bool {
	return errors.Is(err, framing.ErrEmptyInput) ||
		errors.Is(err, framing.ErrInvalidPadding) ||
		errors.Is(err, framing.ErrInvalidPoint) ||
		errors.Is(err, framing.ErrInvalidHeading)
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, code int, message string) {
	h.log.DebugContext(r.Context(), "Framing request rejected", "status", code, "error", message)
	h.sendJSON(w, r, code, ErrorResponse{Error: message})
}

func (h *Handler) sendJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}
