package geocode

import (
	"context"
	"errors"
)

// ErrUnavailable wraps per-lookup transport failures. Callers degrade the
// lookup to zero candidates rather than aborting the run.
var ErrUnavailable = errors.New("geocoding backend unavailable")

// Result is one coordinate proposed by a backend for a query string.
type Result struct {
	PlaceName  string  `json:"place_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Confidence float64 `json:"confidence"`
	// Exact reports that the backend matched the query as a whole name
	// rather than fuzzily.
	Exact bool `json:"exact"`
}

// Client is the geocoding oracle. Implementations must return an empty slice
// (not an error) for names they simply don't know.
type Client interface {
	Lookup(ctx context.Context, query string) ([]Result, error)
	Ready() bool
}
