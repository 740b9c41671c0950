package editor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Houeta/collection-desk/internal/models"
)

// CollectionSource lists collections.
type CollectionSource interface {
	GetCollections(ctx context.Context, token string) ([]models.Collection, error)
}

// Source is everything the workspace needs from the commerce API.
type Source interface {
	CollectionSource
	ProductSource
}

// Workspace keeps one editing session per owner (a login session or a chat).
type Workspace struct {
	log    *slog.Logger
	source Source
	opts   Options

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(log *slog.Logger, source Source, opts Options) *Workspace {
	return &Workspace{
		log:      log,
		source:   source,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Collections returns every collection visible to the token holder.
func (w *Workspace) Collections(ctx context.Context, token string) ([]models.Collection, error) {
	collections, err := w.source.GetCollections(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("editor.Collections: %w", err)
	}
	return collections, nil
}

// Open starts editing a collection for owner, replacing the owner's previous session.
//
// The collection is resolved from a fresh collection list. When loading the first
// product page fails the session is still registered, in the error state, and
// returned together with the error.
func (w *Workspace) Open(ctx context.Context, owner, token string, collectionID int) (*Session, error) {
	const opn = "editor.Open"
	log := w.log.With("op", opn, "collection", collectionID)

	collections, err := w.source.GetCollections(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get collections: %w", opn, err)
	}

	idx := slices.IndexFunc(collections, func(c models.Collection) bool { return c.ID == collectionID })
	if idx < 0 {
		log.InfoContext(ctx, "Requested collection does not exist", "available", len(collections))
		return nil, fmt.Errorf("%s: collection %d: %w", opn, collectionID, ErrCollectionNotFound)
	}

	session := NewSession(w.log, w.source, collections[idx], token, w.opts)

	w.mu.Lock()
	if previous, ok := w.sessions[owner]; ok {
		previous.Close()
	}
	w.sessions[owner] = session
	w.mu.Unlock()

	log.InfoContext(ctx, "Opened editing session", "name", collections[idx].Info.Name)

	if err = session.Load(ctx); err != nil {
		return session, fmt.Errorf("%s: %w", opn, err)
	}

	return session, nil
}

// Session returns the owner's session when it edits collectionID.
func (w *Workspace) Session(owner string, collectionID int) (*Session, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	session, ok := w.sessions[owner]
	if !ok || session.CollectionID() != collectionID {
		return nil, false
	}
	return session, true
}

// Current returns the owner's session, whatever collection it edits.
func (w *Workspace) Current(owner string) (*Session, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	session, ok := w.sessions[owner]
	return session, ok
}

// Close drops the owner's session.
func (w *Workspace) Close(owner string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if session, ok := w.sessions[owner]; ok {
		session.Close()
		delete(w.sessions, owner)
	}
}
