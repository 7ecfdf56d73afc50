package library

// fieldRef maps a patchable text field name to its storage. box and year are
// handled separately because they are not plain text.
func fieldRef(it *Item, key string) *string {
	switch key {
	case "title":
		return &it.Title
	case "barcode":
		return &it.Barcode
	case "imdb_id":
		return &it.ImdbID
	case "added_by":
		return &it.AddedBy
	case "runtime":
		return &it.Runtime
	case "genres":
		return &it.Genres
	case "director":
		return &it.Director
	case "actors":
		return &it.Actors
	case "plot":
		return &it.Plot
	case "poster":
		return &it.Poster
	case "imdb_rating":
		return &it.ImdbRating
	case "rated":
		return &it.Rated
	case "released":
		return &it.Released
	case "language":
		return &it.Language
	case "country":
		return &it.Country
	case "awards":
		return &it.Awards
	}
	return nil
}

// applyPatch overwrites every field named in the patch, including to null,
// which clears the field. All values are validated before anything is
// written, so a bad box or year never half-applies.
func applyPatch(it *Item, p Patch) error {
	ops := make([]func(), 0, len(p))
	for key, value := range p {
		switch key {
		case "box":
			box, err := ParseBox(value)
			if err != nil {
				return err
			}
			ops = append(ops, func() { it.Box = box })
		case "year":
			year, err := stringifyYear(value)
			if err != nil {
				return err
			}
			ops = append(ops, func() { it.Year = year })
		default:
			ref := fieldRef(it, key)
			if ref == nil {
				return Validationf("unknown field %q", key)
			}
			switch v := value.(type) {
			case nil:
				ops = append(ops, func() { *ref = "" })
			case string:
				ops = append(ops, func() { *ref = v })
			default:
				return Validationf("field %q must be a string", key)
			}
		}
	}
	for _, op := range ops {
		op()
	}
	return nil
}

// patchTouchesIdentity reports whether the patch names any field that feeds
// the enrichment lookup. Presence counts, not whether the value changed.
func patchTouchesIdentity(p Patch) bool {
	for _, key := range []string{"title", "year", "imdb_id"} {
		if _, ok := p[key]; ok {
			return true
		}
	}
	return false
}
