// Package httpapi serves the sharing codec, previews and saved positions
// over HTTP/JSON and WebSocket.
package httpapi

import (
	"time"

	"github.com/hailam/minishare/internal/share"
	"github.com/hailam/minishare/internal/storage"
)

// BoardRequest carries a board in wire form.
type BoardRequest struct {
	Board [][]string `json:"board"`
}

// SaveRequest is the request body for saving a position.
type SaveRequest struct {
	Name  string     `json:"name,omitempty"`
	Board [][]string `json:"board"`
}

// DecodeRequest is the WebSocket payload for decoding a code.
type DecodeRequest struct {
	Position string `json:"position"`
}

// EncodeResponse is the response for encoding a board.
type EncodeResponse struct {
	Code string `json:"code"`
	URL  string `json:"url,omitempty"` // Shareable link, when a base URL is configured
}

// DecodeResponse is the response for decoding a code.
type DecodeResponse struct {
	Code      string     `json:"code"`
	Board     [][]string `json:"board"`
	Placement string     `json:"placement"`
	Pieces    int        `json:"pieces"` // Occupied squares
}

// PositionResponse is a saved position.
type PositionResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Placement string     `json:"placement"`
	Board     [][]string `json:"board"`
	URL       string     `json:"url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// PositionsResponse lists saved positions.
type PositionsResponse struct {
	Positions []PositionResponse `json:"positions"`
}

// StatsResponse is share.Statistics as served.
type StatsResponse = share.Statistics

// ErrorResponse is returned when an error occurs. For codec failures Code
// is the error kind: InvalidBoardShape, InvalidPieceSymbol,
// InvalidCodeCharset, InvalidCodeLength, CodeOverflow or NonCanonicalCode.
// Other values are InvalidRequest, NotFound, Unavailable and Internal.
type ErrorResponse struct {
	Error string `json:"error"`          // Error message
	Code  string `json:"code,omitempty"` // Error kind
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string `json:"status"`  // "ok"
	Version string `json:"version"` // Server version
	Storage bool   `json:"storage"` // Whether saved positions are available
}

func positionToResponse(p *storage.Position, url string) (PositionResponse, error) {
	b, err := p.Board()
	if err != nil {
		return PositionResponse{}, err
	}
	return PositionResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Placement: p.Placement,
		Board:     b.Rows(),
		URL:       url,
		CreatedAt: p.CreatedAt,
	}, nil
}
