package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/products"
	"golang.org/x/text/language"
)

// colorFilterID is the additional filter id the API expects for color codes.
const colorFilterID = "color"

// ProductSource fetches product pages of a collection.
type ProductSource interface {
	GetProducts(
		ctx context.Context,
		token string,
		collectionID int,
		req models.ProductPageRequest,
	) (*models.ProductPage, error)
}

// State is the phase of an editing session.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFiltering
	StateDirty
	StateConfirmingSave
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFiltering:
		return "filtering"
	case StateDirty:
		return "dirty"
	case StateConfirmingSave:
		return "confirming-save"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EmptyReason tells why the displayed list is empty.
type EmptyReason int

const (
	EmptyNone EmptyReason = iota
	// EmptyNoProducts means the collection page itself has no products.
	EmptyNoProducts
	// EmptyNoMatches means products exist but none passes the filters.
	EmptyNoMatches
)

// Options tune an editing session.
type Options struct {
	PageSize int
	Language language.Tag
}

// Snapshot is a consistent read of an editing session.
type Snapshot struct {
	State      State
	Collection models.Collection
	Filters    models.FilterState
	// Products is the displayed view: the current order filtered and sorted.
	Products []models.Product
	// Order is the complete current order, including filtered out products.
	Order      []models.Product
	Changes    []products.Position
	Meta       models.PageMeta
	ColorCodes []string
	Dirty      bool
	Error      string
	Empty      EmptyReason
	Header     models.Header
}

// Session is the editing session of one collection.
//
// The session owns the product lists: the snapshot captured at fetch time
// (original) and the current order (base). The displayed view is derived from
// base on every read and never stored.
type Session struct {
	log        *slog.Logger
	source     ProductSource
	collection models.Collection
	token      string
	opts       Options

	mu         sync.Mutex
	filters    models.FilterState
	base       []models.Product
	original   []models.Product
	colors     []string
	meta       models.PageMeta
	fetching   bool
	pending    State
	confirming bool
	lastErr    error

	ticket      uint64
	cancelFetch context.CancelFunc
}

// NewSession creates an editing session. Call Load to fetch the first page.
func NewSession(
	log *slog.Logger,
	source ProductSource,
	collection models.Collection,
	token string,
	opts Options,
) *Session {
	if opts.PageSize <= 0 {
		opts.PageSize = 18
	}

	return &Session{
		log:        log.With("collection", collection.ID),
		source:     source,
		collection: collection,
		token:      token,
		opts:       opts,
		fetching:   true,
		pending:    StateLoading,
	}
}

// CollectionID returns the id of the edited collection.
func (s *Session) CollectionID() int {
	return s.collection.ID
}

// Load fetches the product page with the current server side filters.
func (s *Session) Load(ctx context.Context) error {
	return s.fetch(ctx, StateLoading)
}

// SetSearch sets the free-text search term. It only changes the displayed view.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters.SearchTerm = term
}

// SetSort sets the sort key. It only changes the displayed view.
func (s *Session) SetSort(key models.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters.SortBy = key
}

// SetColor selects a color code and refetches the page filtered by it on the server.
func (s *Session) SetColor(ctx context.Context, code string) error {
	s.mu.Lock()
	if s.filters.ColorCode == code && !s.fetching && s.lastErr == nil {
		s.mu.Unlock()
		return nil
	}
	s.filters.ColorCode = code
	s.mu.Unlock()

	return s.fetch(ctx, StateFiltering)
}

// ClearFilters resets search, color and sort. A page is refetched only when a color was selected.
func (s *Session) ClearFilters(ctx context.Context) error {
	s.mu.Lock()
	hadColor := s.filters.ColorCode != ""
	s.filters = models.FilterState{}
	s.mu.Unlock()

	if !hadColor {
		return nil
	}

	return s.fetch(ctx, StateFiltering)
}

// Move moves the product displayed at position from to position to (both zero based).
//
// The move is applied to the displayed view and the result becomes the new
// current order: the view's products first, then the filtered out products in
// their previous relative order. A sort key is cleared, since the manual order
// replaces it.
func (s *Session) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirming {
		return ErrSaveDialogOpen
	}

	view := products.Apply(s.base, s.filters, s.opts.Language)
	if from < 0 || to < 0 || from >= len(view) || to >= len(view) {
		return fmt.Errorf("move %d to %d of %d: %w", from+1, to+1, len(view), ErrInvalidPosition)
	}
	if from == to {
		return nil
	}

	s.base = products.Rebase(s.base, products.Move(view, from, to))
	s.filters.SortBy = models.SortNone

	s.log.Debug("Moved product", "op", "editor.Move", "from", from, "to", to, "dirty", products.Dirty(s.base, s.original))

	return nil
}

// Cancel restores the order captured by the last fetch.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirming {
		return ErrSaveDialogOpen
	}

	s.base = slices.Clone(s.original)

	return nil
}

// RequestSave opens the save confirmation. It requires pending changes.
func (s *Session) RequestSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetching || s.lastErr != nil || !products.Dirty(s.base, s.original) {
		return ErrNothingToSave
	}
	s.confirming = true

	return nil
}

// DismissSave closes the save confirmation without saving.
func (s *Session) DismissSave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.confirming = false
}

// ConfirmSave closes the save confirmation. The remote API offers no endpoint to
// store a product order, so the order is kept in the session and ErrSaveNotImplemented
// is returned.
func (s *Session) ConfirmSave(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.confirming {
		return ErrNoPendingSave
	}
	s.confirming = false

	s.log.WarnContext(
		ctx,
		"Product order save requested but no persistence endpoint exists",
		"op", "editor.ConfirmSave",
		"products", len(s.base),
		"changed", len(products.Changes(s.base, s.original)),
	)

	return ErrSaveNotImplemented
}

// Close cancels an in-flight fetch.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticket++
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
}

// View returns a consistent snapshot of the session.
func (s *Session) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := products.Apply(s.base, s.filters, s.opts.Language)
	dirty := products.Dirty(s.base, s.original)

	snap := Snapshot{
		State:      s.stateLocked(dirty),
		Collection: s.collection,
		Filters:    s.filters,
		Products:   view,
		Order:      slices.Clone(s.base),
		Meta:       s.meta,
		ColorCodes: slices.Clone(s.colors),
		Dirty:      dirty,
		Error:      Describe(s.lastErr),
		Header: models.Header{
			CollectionName: s.collection.Info.Name,
			ProductCount:   len(view),
		},
	}
	if dirty {
		snap.Changes = products.Changes(s.base, s.original)
	}

	if !s.fetching && s.lastErr == nil {
		switch {
		case len(s.base) == 0:
			snap.Empty = EmptyNoProducts
		case len(view) == 0:
			snap.Empty = EmptyNoMatches
		}
	}

	return snap
}

func (s *Session) stateLocked(dirty bool) State {
	switch {
	case s.fetching:
		return s.pending
	case s.lastErr != nil:
		return StateError
	case s.confirming:
		return StateConfirmingSave
	case dirty:
		return StateDirty
	default:
		return StateReady
	}
}

// fetch requests a page with the current server side filters. Every call takes
// a new ticket and cancels the fetch it supersedes; a response whose ticket is
// no longer current is discarded.
func (s *Session) fetch(ctx context.Context, pending State) error {
	const opn = "editor.fetch"

	s.mu.Lock()
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.ticket++
	ticket := s.ticket
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancelFetch = cancel
	s.fetching = true
	s.pending = pending
	s.confirming = false
	req := s.pageRequestLocked()
	s.mu.Unlock()
	defer cancel()

	s.log.DebugContext(ctx, "Fetching product page", "op", opn, "ticket", ticket, "filters", len(req.AdditionalFilters))

	page, err := s.source.GetProducts(fetchCtx, s.token, s.collection.ID, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.ticket {
		s.log.DebugContext(ctx, "Discarding superseded product page", "op", opn, "ticket", ticket, "current", s.ticket)
		return ErrSuperseded
	}

	s.cancelFetch = nil
	s.fetching = false

	if err != nil {
		s.lastErr = err
		s.base, s.original = nil, nil
		s.meta = models.PageMeta{}
		if !errors.Is(err, context.Canceled) {
			s.log.WarnContext(ctx, "Failed to fetch product page", "op", opn, "error", err)
		}
		return fmt.Errorf("%s: %w", opn, err)
	}

	s.lastErr = nil
	s.base = slices.Clone(page.Products)
	s.original = slices.Clone(page.Products)
	s.meta = page.Meta
	if len(req.AdditionalFilters) == 0 {
		s.colors = products.ColorCodes(page.Products)
	}

	s.log.InfoContext(ctx, "Loaded product page", "op", opn, "count", len(page.Products), "total", page.Meta.TotalProduct)

	return nil
}

func (s *Session) pageRequestLocked() models.ProductPageRequest {
	req := models.ProductPageRequest{
		AdditionalFilters: []models.ProductFilter{},
		Page:              1,
		PageSize:          s.opts.PageSize,
	}
	if s.filters.ColorCode != "" {
		req.AdditionalFilters = append(req.AdditionalFilters, models.ProductFilter{
			ID:             colorFilterID,
			Value:          s.filters.ColorCode,
			ComparisonType: models.ComparisonUnspecified,
		})
	}
	return req
}
