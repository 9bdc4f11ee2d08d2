package share

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies a SharingError.
type ErrorKind uint8

const (
	// InvalidBoardShape: the board is not exactly 5 rows of 4 cells.
	InvalidBoardShape ErrorKind = iota + 1
	// InvalidPieceSymbol: a cell is neither empty nor a canonical piece symbol.
	InvalidPieceSymbol
	// InvalidCodeCharset: the code contains a character outside the alphabet.
	InvalidCodeCharset
	// InvalidCodeLength: the code is empty or longer than MaxCodeLength.
	InvalidCodeLength
	// CodeOverflow: the board index needs more than MaxCodeLength symbols.
	CodeOverflow
	// NonCanonicalCode: the code has a leading zero symbol.
	NonCanonicalCode
)

var kindNames = [...]string{
	InvalidBoardShape:  "InvalidBoardShape",
	InvalidPieceSymbol: "InvalidPieceSymbol",
	InvalidCodeCharset: "InvalidCodeCharset",
	InvalidCodeLength:  "InvalidCodeLength",
	CodeOverflow:       "CodeOverflow",
	NonCanonicalCode:   "NonCanonicalCode",
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SharingError is the only error type returned by the codec.
type SharingError struct {
	Kind    ErrorKind
	Message string
}

func (e *SharingError) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// Is matches any SharingError of the same kind, so the Err* sentinels work
// with errors.Is.
func (e *SharingError) Is(target error) bool {
	t, ok := target.(*SharingError)
	return ok && t.Kind == e.Kind
}

// MarshalJSON encodes the error as {"kind": ..., "message": ...}.
func (e *SharingError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    ErrorKind `json:"kind"`
		Message string    `json:"message"`
	}{e.Kind, e.Message})
}

// Sentinels for errors.Is.
var (
	ErrInvalidBoardShape  = &SharingError{Kind: InvalidBoardShape}
	ErrInvalidPieceSymbol = &SharingError{Kind: InvalidPieceSymbol}
	ErrInvalidCodeCharset = &SharingError{Kind: InvalidCodeCharset}
	ErrInvalidCodeLength  = &SharingError{Kind: InvalidCodeLength}
	ErrCodeOverflow       = &SharingError{Kind: CodeOverflow}
	ErrNonCanonicalCode   = &SharingError{Kind: NonCanonicalCode}
)

func newError(kind ErrorKind, format string, args ...any) *SharingError {
	return &SharingError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
