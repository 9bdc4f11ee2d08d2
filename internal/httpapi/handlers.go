package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hailam/minishare/internal/logging"
	"github.com/hailam/minishare/internal/preview"
	"github.com/hailam/minishare/internal/share"
	"github.com/hailam/minishare/internal/storage"
)

// maxBodyBytes bounds request bodies; a board is a few hundred bytes.
const maxBodyBytes = 16 << 10

// Handlers holds the HTTP handlers and their collaborators.
// Store and Renderer are optional; their endpoints answer 503 without them.
type Handlers struct {
	Store    storage.Store
	Renderer *preview.Renderer
	BaseURL  string
	Version  string
	Logger   *zap.Logger
}

// writeJSON writes a JSON response with the given status code.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.OrNop(h.Logger).Warn("write response", zap.Int("status", status), zap.Error(err))
	}
}

// writeError writes an error response.
func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// writeFailure maps an error to a status: codec errors are the client's
// fault, unknown codes are 404, anything else is logged and reported as 500.
func (h *Handlers) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var se *share.SharingError
	switch {
	case errors.As(err, &se):
		h.writeError(w, http.StatusBadRequest, se.Message, se.Kind.String())
	case errors.Is(err, storage.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error(), "NotFound")
	default:
		logging.OrNop(h.Logger).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error", "Internal")
	}
}

func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), "InvalidRequest")
		return false
	}
	return true
}

// shareURL returns the link for code, or "" when no base URL is configured.
func (h *Handlers) shareURL(code string) string {
	if h.BaseURL == "" {
		return ""
	}
	u, err := share.ShareURL(h.BaseURL, code)
	if err != nil {
		return ""
	}
	return u
}

// Health handles GET /api/health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.Version,
		Storage: h.Store != nil,
	})
}

// Encode handles POST /api/encode.
func (h *Handlers) Encode(w http.ResponseWriter, r *http.Request) {
	var req BoardRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	code, err := share.Encode(req.Board)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, EncodeResponse{Code: code, URL: h.shareURL(code)})
}

// Decode handles GET /api/decode?position=<code>.
func (h *Handlers) Decode(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get(share.PositionParam)

	b, err := share.Decode(code)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, DecodeResponse{
		Code:      code,
		Board:     b.Rows(),
		Placement: b.Placement(),
		Pieces:    b.Count(),
	})
}

// Stats handles POST /api/stats.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	var req BoardRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, share.SharingStatistics(req.Board))
}

// Preview handles GET /api/preview.png?position=<code>.
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	if h.Renderer == nil {
		h.writeError(w, http.StatusServiceUnavailable, "previews are disabled", "Unavailable")
		return
	}

	code := r.URL.Query().Get(share.PositionParam)
	b, err := share.Decode(code)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	// A code always names the same board.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if err := h.Renderer.WritePNG(w, b, code); err != nil {
		logging.OrNop(h.Logger).Warn("write preview", zap.String("code", code), zap.Error(err))
	}
}

// SavePosition handles POST /api/positions.
func (h *Handlers) SavePosition(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var req SaveRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	b, err := share.ValidateBoard(req.Board)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	pos, err := h.Store.Save(req.Name, b)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	resp, err := positionToResponse(pos, h.shareURL(pos.Code))
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

// ListPositions handles GET /api/positions.
func (h *Handlers) ListPositions(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	positions, err := h.Store.List()
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	resp := PositionsResponse{Positions: make([]PositionResponse, 0, len(positions))}
	for _, p := range positions {
		pr, err := positionToResponse(p, h.shareURL(p.Code))
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		resp.Positions = append(resp.Positions, pr)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// GetPosition handles GET /api/positions/{code}.
func (h *Handlers) GetPosition(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	pos, err := h.Store.Get(r.PathValue("code"))
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	resp, err := positionToResponse(pos, h.shareURL(pos.Code))
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// DeletePosition handles DELETE /api/positions/{code}.
func (h *Handlers) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	if err := h.Store.Delete(r.PathValue("code")); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) requireStore(w http.ResponseWriter) bool {
	if h.Store == nil {
		h.writeError(w, http.StatusServiceUnavailable, "saved positions are disabled", "Unavailable")
		return false
	}
	return true
}
