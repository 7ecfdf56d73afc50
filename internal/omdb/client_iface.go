package omdb

import "context"

// Provider is the port for fetching movie metadata from the OMDb API.
// Implementations return (nil, nil) when no lookup was possible or the title
// is unknown; an error only signals a transport or decode failure.
type Provider interface {
	Lookup(ctx context.Context, apiKey, title, imdbID, year string) (*Metadata, error)
}
