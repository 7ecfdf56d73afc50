package omdb

import "strings"

// Metadata is the normalized enrichment record handed to the catalog.
type Metadata struct {
	Title      string
	Year       string
	ImdbID     string
	Runtime    string
	Genres     string
	Director   string
	Actors     string
	Plot       string
	Poster     string
	ImdbRating string
	Rated      string
	Released   string
	Language   string
	Country    string
	Awards     string
}

// toMetadata normalizes a raw OMDb payload. The "N/A" poster sentinel maps
// to empty.
func toMetadata(m movieResponse) *Metadata {
	poster := strings.TrimSpace(m.Poster)
	if poster == "N/A" {
		poster = ""
	}
	return &Metadata{
		Title:      strings.TrimSpace(m.Title),
		Year:       strings.TrimSpace(m.Year),
		ImdbID:     strings.TrimSpace(m.ImdbID),
		Runtime:    strings.TrimSpace(m.Runtime),
		Genres:     strings.TrimSpace(m.Genre),
		Director:   strings.TrimSpace(m.Director),
		Actors:     strings.TrimSpace(m.Actors),
		Plot:       strings.TrimSpace(m.Plot),
		Poster:     poster,
		ImdbRating: strings.TrimSpace(m.ImdbRating),
		Rated:      strings.TrimSpace(m.Rated),
		Released:   strings.TrimSpace(m.Released),
		Language:   strings.TrimSpace(m.Language),
		Country:    strings.TrimSpace(m.Country),
		Awards:     strings.TrimSpace(m.Awards),
	}
}
