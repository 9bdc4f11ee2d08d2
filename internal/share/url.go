package share

import (
	"fmt"
	"net/url"
)

// PositionParam is the query parameter carrying a sharing code.
const PositionParam = "position"

// ShareURL returns base with the position parameter set to code. Other
// query parameters of base are kept.
func ShareURL(base, code string) (string, error) {
	code, err := ValidateCode(code)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set(PositionParam, code)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// CodeFromURL extracts and validates the sharing code of a shared URL.
func CodeFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	return ValidateCode(u.Query().Get(PositionParam))
}
