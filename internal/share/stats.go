package share

import (
	"errors"
	"net/url"
)

// Statistics describes how a board fares through a full encode/decode cycle.
type Statistics struct {
	SharingCode      string        `json:"sharingCode"`
	CodeLength       int           `json:"codeLength"`
	RoundTripSuccess bool          `json:"roundTripSuccess"`
	URLSafe          bool          `json:"urlSafe"`
	Error            *SharingError `json:"error,omitempty"`
}

// SharingStatistics encodes rows, decodes the result and compares it with
// the input. It never fails: a codec error is reported in Statistics.Error
// and the remaining fields keep whatever was computed before it.
func SharingStatistics(rows [][]string) Statistics {
	var stats Statistics

	code, err := Encode(rows)
	if err != nil {
		stats.Error = asSharingError(err)
		return stats
	}
	stats.SharingCode = code
	stats.CodeLength = len(code)
	stats.URLSafe = IsURLSafe(code)

	decoded, err := Decode(code)
	if err != nil {
		stats.Error = asSharingError(err)
		return stats
	}
	stats.RoundTripSuccess = ComparePositions(rows, decoded.Rows())

	return stats
}

// IsURLSafe reports whether s survives query escaping unchanged.
func IsURLSafe(s string) bool {
	return s != "" && url.QueryEscape(s) == s
}

func asSharingError(err error) *SharingError {
	var se *SharingError
	if errors.As(err, &se) {
		return se
	}
	return &SharingError{Message: err.Error()}
}
