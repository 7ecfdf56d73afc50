package library

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/example/dvd-catalog/internal/omdb"
)

// Store is the persistence port. Load returns (nil, nil) when no prior data
// exists; Save rewrites the full collection.
type Store interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// Notifier is the fire-and-forget change broadcast port. Subscribers carry no
// payload and re-read current state.
type Notifier interface {
	Notify(topic string)
}

// AddInput carries a loosely-typed add payload. Year and Box accept strings
// or JSON numbers.
type AddInput struct {
	Title   string `json:"title"`
	Year    any    `json:"year"`
	Barcode string `json:"barcode"`
	ImdbID  string `json:"imdb_id"`
	AddedBy string `json:"added_by"`
	Box     any    `json:"box"`
}

// Selector identifies an existing item for update/remove/refresh. Resolution
// precedence is imdb_id, then barcode, then title.
type Selector struct {
	ImdbID  string `json:"imdb_id"`
	Barcode string `json:"barcode"`
	Title   string `json:"title"`
}

func (s Selector) isZero() bool {
	return s.ImdbID == "" && s.Barcode == "" && s.Title == ""
}

// Patch is an explicit update payload. A key present in the map overwrites
// the field, including a JSON null, which clears it.
type Patch map[string]any

type BoxCount struct {
	Box   int `json:"box"`
	Count int `json:"count"`
}

// Library is one catalog instance: the in-memory ordered collection plus the
// reconciliation, box and enrichment logic on top of it. All mutating
// operations serialize on the instance mutex; the OMDb lookup is the only
// blocking call made while holding it.
type Library struct {
	ID string

	mu       sync.Mutex
	log      *zap.Logger
	store    Store
	notifier Notifier
	provider omdb.Provider
	apiKey   string
	items    []Item
}

type Options struct {
	ID       string
	Store    Store
	Notifier Notifier
	Provider omdb.Provider
	APIKey   string
	Logger   *zap.Logger
}

func New(opts Options) *Library {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ID == "" {
		opts.ID = "default"
	}
	return &Library{
		ID:       opts.ID,
		log:      opts.Logger,
		store:    opts.Store,
		notifier: opts.Notifier,
		provider: opts.Provider,
		apiKey:   opts.APIKey,
	}
}

func (l *Library) topic() string { return fmt.Sprintf("library.%s.updated", l.ID) }

// Load populates the collection from the store. Absent or unreadable backing
// data yields an empty collection, never an error.
func (l *Library) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.store.Load(ctx)
	if err != nil {
		l.log.Warn("library load failed, starting empty", zap.String("library", l.ID), zap.Error(err))
		items = nil
	}
	l.items = items
	l.log.Debug("library loaded", zap.String("library", l.ID), zap.Int("items", len(l.items)))
}

// saveAndNotify persists the full collection and then broadcasts the change.
// Observers never see a mutation that failed to persist.
func (l *Library) saveAndNotify(ctx context.Context) error {
	if err := l.store.Save(ctx, l.items); err != nil {
		return fmt.Errorf("save library %s: %w", l.ID, err)
	}
	if l.notifier != nil {
		l.notifier.Notify(l.topic())
	}
	return nil
}

func (l *Library) findIndex(field func(*Item) string, value string) int {
	if value == "" {
		return -1
	}
	for i := range l.items {
		if field(&l.items[i]) == value {
			return i
		}
	}
	return -1
}

func byImdbID(it *Item) string  { return it.ImdbID }
func byBarcode(it *Item) string { return it.Barcode }
func byTitle(it *Item) string   { return it.Title }

// resolve locates an item by selector precedence: imdb_id, then barcode,
// then title. First populated key that matches wins; an unmatched populated
// key falls through to the next.
func (l *Library) resolve(sel Selector) int {
	for _, probe := range []struct {
		field func(*Item) string
		value string
	}{
		{byImdbID, sel.ImdbID},
		{byBarcode, sel.Barcode},
		{byTitle, sel.Title},
	} {
		if idx := l.findIndex(probe.field, probe.value); idx >= 0 {
			return idx
		}
	}
	return -1
}

// enrich performs a best-effort OMDb lookup. Failures degrade to no metadata.
func (l *Library) enrich(ctx context.Context, title, imdbID, year string) *omdb.Metadata {
	meta, err := l.provider.Lookup(ctx, l.apiKey, title, imdbID, year)
	if err != nil {
		l.log.Warn("omdb lookup failed", zap.String("library", l.ID), zap.Error(err))
		return nil
	}
	return meta
}

func displayName(it *Item) string {
	if it.Title != "" {
		return it.Title
	}
	if it.ImdbID != "" {
		return it.ImdbID
	}
	return it.Barcode
}

// Add normalizes the input into a candidate item, enriches it best-effort,
// and either merges it into a matching existing item or appends it. A
// candidate with no usable key is dropped with a warning, not an error.
func (l *Library) Add(ctx context.Context, in AddInput) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	year, err := stringifyYear(in.Year)
	if err != nil {
		return err
	}
	box, err := ParseBox(in.Box)
	if err != nil {
		return err
	}
	cand := Item{
		Title:   in.Title,
		Year:    year,
		Barcode: in.Barcode,
		ImdbID:  in.ImdbID,
		AddedBy: in.AddedBy,
		Box:     box,
	}

	if l.apiKey != "" {
		foldMetadata(&cand, l.enrich(ctx, cand.Title, cand.ImdbID, cand.Year))
	} else {
		l.log.Debug("skipping omdb enrichment: no api key configured")
	}

	if !cand.hasNaturalKey() {
		l.log.Warn("skipping add: no imdb_id, barcode or title", zap.String("library", l.ID))
		return nil
	}

	idx := l.findIndex(byImdbID, cand.ImdbID)
	if idx < 0 {
		idx = l.findIndex(byBarcode, cand.Barcode)
	}
	if idx < 0 && cand.Title != "" {
		for i := range l.items {
			if l.items[i].Title == cand.Title && (cand.Year == "" || l.items[i].Year == cand.Year) {
				idx = i
				break
			}
		}
	}

	if idx >= 0 {
		// Box is preserve-on-absence: only an explicit value overwrites.
		if cand.Box != nil {
			l.items[idx].Box = cand.Box
		}
		mergeNonBlank(&l.items[idx], cand)
		l.log.Debug("updated existing item", zap.Int("index", idx), zap.String("item", displayName(&cand)))
	} else {
		l.items = append(l.items, cand)
		l.log.Debug("added new item", zap.String("item", displayName(&cand)))
	}

	return l.saveAndNotify(ctx)
}

// Update applies an explicit patch to the item the selector resolves to.
// A box parse failure aborts the whole update with no partial merge. Patching
// any identity field re-runs enrichment with the post-update values.
func (l *Library) Update(ctx context.Context, sel Selector, patch Patch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.resolve(sel)
	if idx < 0 {
		return fmt.Errorf("%w for selector", ErrNotFound)
	}

	if err := applyPatch(&l.items[idx], patch); err != nil {
		return err
	}

	if patchTouchesIdentity(patch) && l.apiKey != "" {
		it := &l.items[idx]
		foldMetadata(it, l.enrich(ctx, it.Title, it.ImdbID, it.Year))
	}

	return l.saveAndNotify(ctx)
}

// Remove deletes the item the selector resolves to.
func (l *Library) Remove(ctx context.Context, sel Selector) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if sel.isZero() {
		return Validationf("provide imdb_id, barcode or title")
	}
	idx := l.resolve(sel)
	if idx < 0 {
		return ErrNotFound
	}
	removed := l.items[idx]
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.log.Debug("removed item", zap.Int("index", idx), zap.String("item", displayName(&removed)))
	return l.saveAndNotify(ctx)
}

// RemoveIndex deletes the item at a position in the current order.
func (l *Library) RemoveIndex(ctx context.Context, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("%w: index out of range", ErrNotFound)
	}
	removed := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.log.Debug("removed item by index", zap.Int("index", index), zap.String("item", displayName(&removed)))
	return l.saveAndNotify(ctx)
}

// RefreshMetadata re-runs enrichment. A selector that resolves narrows the
// batch to that item; otherwise every item is refreshed. Without an API key
// this is a no-op, not an error. One persist+notify covers the whole batch.
func (l *Library) RefreshMetadata(ctx context.Context, sel *Selector) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var targets []int
	if sel != nil && !sel.isZero() {
		if idx := l.resolve(*sel); idx >= 0 {
			targets = []int{idx}
		}
	}
	if len(targets) == 0 {
		targets = make([]int, len(l.items))
		for i := range l.items {
			targets[i] = i
		}
	}
	if l.apiKey == "" {
		l.log.Debug("skipping omdb refresh: no api key configured")
		return nil
	}

	for _, idx := range targets {
		it := &l.items[idx]
		foldMetadata(it, l.enrich(ctx, it.Title, it.ImdbID, it.Year))
	}
	return l.saveAndNotify(ctx)
}

// PurgeEmpty removes every item with no identity fields and returns the
// count removed.
func (l *Library) PurgeEmpty(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0]
	for _, it := range l.items {
		if !it.IsEmpty() {
			kept = append(kept, it)
		}
	}
	removed := len(l.items) - len(kept)
	l.items = kept
	if err := l.saveAndNotify(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}

// MoveBox retags every item in box from to box to and returns the count
// touched. Nothing is persisted when no item matched.
func (l *Library) MoveBox(ctx context.Context, from, to any) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fromBox, err := ParseBox(from)
	if err != nil {
		return 0, err
	}
	toBox, err := ParseBox(to)
	if err != nil {
		return 0, err
	}
	if fromBox == nil || toBox == nil {
		return 0, Validationf("both from_box and to_box must be integers")
	}

	moved := 0
	for i := range l.items {
		if l.items[i].Box != nil && *l.items[i].Box == *fromBox {
			b := *toBox
			l.items[i].Box = &b
			moved++
		}
	}
	if moved == 0 {
		return 0, nil
	}
	if err := l.saveAndNotify(ctx); err != nil {
		return 0, err
	}
	return moved, nil
}

// ListBoxes aggregates item counts per box, ascending by box number.
func (l *Library) ListBoxes() []BoxCount {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := make(map[int]int)
	for i := range l.items {
		if l.items[i].Box != nil {
			counts[*l.items[i].Box]++
		}
	}
	out := make([]BoxCount, 0, len(counts))
	for box, n := range counts {
		out = append(out, BoxCount{Box: box, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Box < out[j].Box })
	return out
}

// Items returns a snapshot copy of the collection in insertion order.
func (l *Library) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
