package library

import (
	"math"
	"strconv"
	"strings"

	"github.com/example/dvd-catalog/internal/omdb"
)

// Item is one catalog record. Text fields use "" as absent; Box is nil when
// the item has no assigned storage box. The JSON shape doubles as the
// persisted document entry and the API representation.
type Item struct {
	Title   string `json:"title,omitempty"`
	Year    string `json:"year,omitempty"`
	Barcode string `json:"barcode,omitempty"`
	ImdbID  string `json:"imdb_id,omitempty"`
	AddedBy string `json:"added_by,omitempty"`
	Box     *int   `json:"box,omitempty"`

	// Metadata fields, populated only by OMDb enrichment.
	Runtime    string `json:"runtime,omitempty"`
	Genres     string `json:"genres,omitempty"`
	Director   string `json:"director,omitempty"`
	Actors     string `json:"actors,omitempty"`
	Plot       string `json:"plot,omitempty"`
	Poster     string `json:"poster,omitempty"`
	ImdbRating string `json:"imdb_rating,omitempty"`
	Rated      string `json:"rated,omitempty"`
	Released   string `json:"released,omitempty"`
	Language   string `json:"language,omitempty"`
	Country    string `json:"country,omitempty"`
	Awards     string `json:"awards,omitempty"`
}

// IsEmpty reports whether the item carries none of its identity fields.
// Metadata and box do not count: an item with only a poster is still empty.
func (it Item) IsEmpty() bool {
	return isBlank(it.Title) && isBlank(it.Year) && isBlank(it.Barcode) && isBlank(it.ImdbID)
}

// hasNaturalKey reports whether the item is valid for persistence.
func (it Item) hasNaturalKey() bool {
	return it.ImdbID != "" || it.Barcode != "" || !isBlank(it.Title)
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// ParseBox normalizes a box value from loosely-typed input. nil maps to nil,
// numbers are accepted as-is (integral only), strings are trimmed and must be
// pure digits; everything else is a validation error.
func ParseBox(v any) (*int, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return nil, nil
		}
		for _, r := range x {
			if r < '0' || r > '9' {
				return nil, Validationf("box must be an integer")
			}
		}
		n, err := strconv.Atoi(x)
		if err != nil {
			return nil, Validationf("box must be an integer")
		}
		return &n, nil
	case int:
		return &x, nil
	case int64:
		n := int(x)
		return &n, nil
	case float64:
		if x != math.Trunc(x) {
			return nil, Validationf("box must be an integer")
		}
		n := int(x)
		return &n, nil
	default:
		return nil, Validationf("box must be an integer")
	}
}

// stringifyYear normalizes a year value to text. Blank-ish input maps to "".
func stringifyYear(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10), nil
		}
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", Validationf("year must be a string or number")
	}
}

// mergeNonBlank folds every non-blank field of src into dst, excluding box.
// Blank source fields never erase existing data.
func mergeNonBlank(dst *Item, src Item) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Title, src.Title)
	set(&dst.Year, src.Year)
	set(&dst.Barcode, src.Barcode)
	set(&dst.ImdbID, src.ImdbID)
	set(&dst.AddedBy, src.AddedBy)
	set(&dst.Runtime, src.Runtime)
	set(&dst.Genres, src.Genres)
	set(&dst.Director, src.Director)
	set(&dst.Actors, src.Actors)
	set(&dst.Plot, src.Plot)
	set(&dst.Poster, src.Poster)
	set(&dst.ImdbRating, src.ImdbRating)
	set(&dst.Rated, src.Rated)
	set(&dst.Released, src.Released)
	set(&dst.Language, src.Language)
	set(&dst.Country, src.Country)
	set(&dst.Awards, src.Awards)
}

// foldMetadata folds a non-nil enrichment result into the item. Only
// non-blank provider fields overwrite.
func foldMetadata(it *Item, m *omdb.Metadata) {
	if m == nil {
		return
	}
	mergeNonBlank(it, Item{
		Title:      m.Title,
		Year:       m.Year,
		ImdbID:     m.ImdbID,
		Runtime:    m.Runtime,
		Genres:     m.Genres,
		Director:   m.Director,
		Actors:     m.Actors,
		Plot:       m.Plot,
		Poster:     m.Poster,
		ImdbRating: m.ImdbRating,
		Rated:      m.Rated,
		Released:   m.Released,
		Language:   m.Language,
		Country:    m.Country,
		Awards:     m.Awards,
	})
}
