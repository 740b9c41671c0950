package editor_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/Houeta/collection-desk/internal/commerce"
	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/services/editor"
	"github.com/Houeta/collection-desk/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const token = "token-1"

func ptr(s string) *string { return &s }

func product(code, name, color string) models.Product {
	p := models.Product{ProductCode: code, ImageURL: code + ".jpg"}
	if name != "" {
		p.Name = ptr(name)
	}
	if color != "" {
		p.ColorCode = ptr(color)
	}
	return p
}

func page(items ...models.Product) *models.ProductPage {
	if items == nil {
		items = []models.Product{}
	}
	return &models.ProductPage{
		Meta:     models.PageMeta{Page: 1, PageSize: 18, TotalProduct: len(items)},
		Products: items,
	}
}

func codes(items []models.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ProductCode)
	}
	return out
}

func noFilter() any {
	return mock.MatchedBy(func(req models.ProductPageRequest) bool {
		return len(req.AdditionalFilters) == 0 && req.Page == 1 && req.PageSize == 18
	})
}

func colorFilter(code string) any {
	return mock.MatchedBy(func(req models.ProductPageRequest) bool {
		return len(req.AdditionalFilters) == 1 &&
			req.AdditionalFilters[0].ID == "color" &&
			req.AdditionalFilters[0].Value == code
	})
}

var (
	prodA = product("A", "Coat", "RED")
	prodB = product("B", "Abiye", "BLUE")
	prodC = product("C", "Bluz", "RED")
	prodD = product("D", "Dress", "BLUE")

	collection = models.Collection{ID: 7, Info: models.CollectionInfo{ID: 7, Name: "Summer"}}
)

func newSession(t *testing.T, src *mocks.Source) *editor.Session {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return editor.NewSession(logger, src, collection, token, editor.Options{PageSize: 18, Language: language.Turkish})
}

func loadedSession(t *testing.T, items ...models.Product) (*editor.Session, *mocks.Source) {
	t.Helper()

	src := mocks.NewSource(t)
	src.On("GetProducts", mock.Anything, token, 7, noFilter()).Return(page(items...), nil).Once()

	s := newSession(t, src)
	require.NoError(t, s.Load(t.Context()))

	return s, src
}

func TestSession_Load(t *testing.T) {
	t.Run("fresh session is loading", func(t *testing.T) {
		s := newSession(t, mocks.NewSource(t))
		assert.Equal(t, editor.StateLoading, s.View().State)
	})

	t.Run("success", func(t *testing.T) {
		s, _ := loadedSession(t, prodA, prodB, prodC)

		view := s.View()

		assert.Equal(t, editor.StateReady, view.State)
		assert.Equal(t, []string{"A", "B", "C"}, codes(view.Products))
		assert.Equal(t, []string{"RED", "BLUE"}, view.ColorCodes)
		assert.False(t, view.Dirty)
		assert.Equal(t, editor.EmptyNone, view.Empty)
		assert.Equal(t, models.Header{CollectionName: "Summer", ProductCount: 3}, view.Header)
		assert.Equal(t, 3, view.Meta.TotalProduct)
	})

	t.Run("empty collection", func(t *testing.T) {
		s, _ := loadedSession(t)

		view := s.View()

		assert.Equal(t, editor.EmptyNoProducts, view.Empty)
		assert.Empty(t, view.Products)
	})

	t.Run("transport error", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("GetProducts", mock.Anything, token, 7, noFilter()).
			Return(nil, &commerce.StatusError{StatusCode: http.StatusInternalServerError}).Once()
		s := newSession(t, src)

		err := s.Load(t.Context())

		require.Error(t, err)
		view := s.View()
		assert.Equal(t, editor.StateError, view.State)
		assert.Equal(t, "HTTP error, status: 500", view.Error)
		assert.Empty(t, view.Products)
		assert.Equal(t, editor.EmptyNone, view.Empty)
	})

	t.Run("application error", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("GetProducts", mock.Anything, token, 7, noFilter()).
			Return(nil, &commerce.APIError{Status: 400, Message: "collection is archived"}).Once()
		s := newSession(t, src)

		require.Error(t, s.Load(t.Context()))
		assert.Equal(t, "collection is archived", s.View().Error)
	})
}

func TestSession_ReorderScenario(t *testing.T) {
	s, _ := loadedSession(t, prodA, prodB, prodC)

	require.NoError(t, s.Move(0, 2))

	view := s.View()
	assert.Equal(t, []string{"B", "C", "A"}, codes(view.Products))
	assert.True(t, view.Dirty)
	assert.Equal(t, editor.StateDirty, view.State)
	assert.Len(t, view.Changes, 3)

	require.NoError(t, s.Cancel())

	view = s.View()
	assert.Equal(t, []string{"A", "B", "C"}, codes(view.Products))
	assert.False(t, view.Dirty)
	assert.Equal(t, editor.StateReady, view.State)
	assert.Empty(t, view.Changes)
}

func TestSession_ClientSideFilters(t *testing.T) {
	t.Run("search without matches", func(t *testing.T) {
		s, _ := loadedSession(t, prodA, prodB)

		s.SetSearch("zzz")

		view := s.View()
		assert.Empty(t, view.Products)
		assert.Equal(t, editor.EmptyNoMatches, view.Empty)
		assert.Equal(t, 0, view.Header.ProductCount)
		assert.False(t, view.Dirty, "filtering alone does not change the order")
	})

	t.Run("sort only changes the view", func(t *testing.T) {
		s, _ := loadedSession(t, prodA, prodB, prodC)

		s.SetSort(models.SortByName)

		view := s.View()
		assert.Equal(t, []string{"B", "C", "A"}, codes(view.Products))
		assert.Equal(t, []string{"A", "B", "C"}, codes(view.Order))
		assert.False(t, view.Dirty)
	})

	t.Run("move under a sort adopts the sorted order", func(t *testing.T) {
		s, _ := loadedSession(t, prodA, prodB, prodC)
		s.SetSort(models.SortByName)

		require.NoError(t, s.Move(2, 0))

		view := s.View()
		assert.Equal(t, models.SortNone, view.Filters.SortBy)
		assert.Equal(t, []string{"A", "B", "C"}, codes(view.Products))
		assert.False(t, view.Dirty, "sorted order with the move lands on the original order")
	})

	t.Run("move under a search keeps hidden products at the end", func(t *testing.T) {
		s, _ := loadedSession(t, prodA, prodB, prodC, prodD)
		s.SetSearch("e")
		require.Equal(t, []string{"B", "D"}, codes(s.View().Products))

		require.NoError(t, s.Move(1, 0))

		view := s.View()
		assert.Equal(t, []string{"D", "B"}, codes(view.Products))
		assert.Equal(t, []string{"D", "B", "A", "C"}, codes(view.Order))
		assert.True(t, view.Dirty)
		assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, codes(view.Order))
	})

	t.Run("invalid positions", func(t *testing.T) {
		s, _ := loadedSession(t, prodA, prodB)

		require.ErrorIs(t, s.Move(0, 2), editor.ErrInvalidPosition)
		require.ErrorIs(t, s.Move(-1, 0), editor.ErrInvalidPosition)
		require.NoError(t, s.Move(1, 1))
		assert.False(t, s.View().Dirty)
	})
}

func TestSession_ServerSideColorFilter(t *testing.T) {
	s, src := loadedSession(t, prodA, prodB, prodC)
	src.On("GetProducts", mock.Anything, token, 7, colorFilter("RED")).Return(page(prodA, prodC), nil).Once()

	require.NoError(t, s.Move(0, 1))
	require.NoError(t, s.SetColor(t.Context(), "RED"))

	view := s.View()
	assert.Equal(t, editor.StateReady, view.State)
	assert.Equal(t, []string{"A", "C"}, codes(view.Products))
	assert.False(t, view.Dirty, "a new fetch replaces the snapshot")
	assert.Equal(t, []string{"RED", "BLUE"}, view.ColorCodes, "options come from the unfiltered page")

	t.Run("selecting the same color again does not refetch", func(t *testing.T) {
		require.NoError(t, s.SetColor(t.Context(), "RED"))
	})

	t.Run("clearing filters refetches without color", func(t *testing.T) {
		src.On("GetProducts", mock.Anything, token, 7, noFilter()).Return(page(prodA, prodB, prodC), nil).Once()
		s.SetSearch("coat")

		require.NoError(t, s.ClearFilters(t.Context()))

		view := s.View()
		assert.Equal(t, models.FilterState{}, view.Filters)
		assert.Equal(t, []string{"A", "B", "C"}, codes(view.Products))
	})

	t.Run("clearing without color does not refetch", func(t *testing.T) {
		s.SetSort(models.SortByCode)
		require.NoError(t, s.ClearFilters(t.Context()))
		assert.Equal(t, models.FilterState{}, s.View().Filters)
	})
}

func TestSession_StaleResponseIsDiscarded(t *testing.T) {
	s, src := loadedSession(t, prodA, prodB, prodC)

	started := make(chan struct{})
	release := make(chan struct{})
	src.On("GetProducts", mock.Anything, token, 7, colorFilter("RED")).
		Return(func(context.Context, string, int, models.ProductPageRequest) (*models.ProductPage, error) {
			close(started)
			<-release
			return page(prodA, prodC), nil
		}).Once()
	src.On("GetProducts", mock.Anything, token, 7, colorFilter("BLUE")).Return(page(prodB), nil).Once()

	errCh := make(chan error, 1)
	go func() { errCh <- s.SetColor(t.Context(), "RED") }()
	<-started

	assert.Equal(t, editor.StateFiltering, s.View().State)
	require.NoError(t, s.SetColor(t.Context(), "BLUE"))
	close(release)

	require.ErrorIs(t, <-errCh, editor.ErrSuperseded)
	view := s.View()
	assert.Equal(t, []string{"B"}, codes(view.Products))
	assert.Equal(t, "BLUE", view.Filters.ColorCode)
	assert.Equal(t, editor.StateReady, view.State)
}

func TestSession_SupersededFetchIsCanceled(t *testing.T) {
	s, src := loadedSession(t, prodA, prodB, prodC)

	started := make(chan struct{})
	src.On("GetProducts", mock.Anything, token, 7, colorFilter("RED")).
		Return(func(ctx context.Context, _ string, _ int, _ models.ProductPageRequest) (*models.ProductPage, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()
	src.On("GetProducts", mock.Anything, token, 7, colorFilter("BLUE")).Return(page(prodB), nil).Once()

	errCh := make(chan error, 1)
	go func() { errCh <- s.SetColor(t.Context(), "RED") }()
	<-started

	require.NoError(t, s.SetColor(t.Context(), "BLUE"))

	require.ErrorIs(t, <-errCh, editor.ErrSuperseded)
	view := s.View()
	assert.Empty(t, view.Error)
	assert.Equal(t, []string{"B"}, codes(view.Products))
}

func TestSession_SaveFlow(t *testing.T) {
	s, _ := loadedSession(t, prodA, prodB, prodC)

	require.ErrorIs(t, s.RequestSave(), editor.ErrNothingToSave)
	require.ErrorIs(t, s.ConfirmSave(t.Context()), editor.ErrNoPendingSave)

	require.NoError(t, s.Move(2, 0))
	require.NoError(t, s.RequestSave())
	assert.Equal(t, editor.StateConfirmingSave, s.View().State)

	require.ErrorIs(t, s.Move(0, 1), editor.ErrSaveDialogOpen)
	require.ErrorIs(t, s.Cancel(), editor.ErrSaveDialogOpen)

	s.DismissSave()
	assert.Equal(t, editor.StateDirty, s.View().State)

	require.NoError(t, s.RequestSave())
	require.ErrorIs(t, s.ConfirmSave(t.Context()), editor.ErrSaveNotImplemented)

	view := s.View()
	assert.Equal(t, editor.StateDirty, view.State, "nothing was committed remotely")
	assert.Equal(t, []string{"C", "A", "B"}, codes(view.Order))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", editor.StateLoading.String())
	assert.Equal(t, "confirming-save", editor.StateConfirmingSave.String())
	assert.Equal(t, "state(42)", editor.State(42).String())
}
