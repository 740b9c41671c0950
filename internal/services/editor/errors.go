package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Houeta/collection-desk/internal/commerce"
)

var (
	// ErrCollectionNotFound is returned when the requested id is absent from the fetched collections.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrSuperseded is returned by a fetch whose response arrived after a newer fetch was started.
	ErrSuperseded = errors.New("product page request was superseded by a newer request")
	// ErrNothingToSave is returned when a save is requested without pending changes.
	ErrNothingToSave = errors.New("product order has no changes")
	// ErrNoPendingSave is returned when confirming a save while no confirmation is open.
	ErrNoPendingSave = errors.New("no save confirmation is open")
	// ErrSaveNotImplemented is returned by a confirmed save: the remote API has no endpoint
	// that accepts a product order, so nothing is persisted.
	ErrSaveNotImplemented = errors.New("saving the product order is not implemented yet")
	// ErrSaveDialogOpen is returned when the order is changed while a save confirmation is open.
	ErrSaveDialogOpen = errors.New("close the save confirmation first")
	// ErrInvalidPosition is returned by a move whose positions are outside the displayed list.
	ErrInvalidPosition = errors.New("position is outside the displayed product list")
	// ErrNoSession is returned when no editing session is open for the collection.
	ErrNoSession = errors.New("no editing session is open for this collection")
)

var messages = []struct {
	err error
	msg string
}{
	{ErrCollectionNotFound, "Collection not found"},
	{ErrSuperseded, "A newer request replaced this one"},
	{ErrNothingToSave, "There are no changes to save"},
	{ErrNoPendingSave, "There is no save waiting for confirmation"},
	{ErrSaveNotImplemented, "Saving the product order is not available yet, your order was kept but not stored"},
	{ErrSaveDialogOpen, "Close the save confirmation first"},
	{ErrInvalidPosition, "That position is not in the displayed list"},
	{ErrNoSession, "Open the collection first"},
	{commerce.ErrUnauthorized, "You need to log in again"},
}

// Describe turns an error into the message shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	var (
		apiErr    *commerce.APIError
		statusErr *commerce.StatusError
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &statusErr):
		return fmt.Sprintf("HTTP error, status: %d", statusErr.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		return "The commerce API did not answer in time"
	default:
		return "An unknown error occurred"
	}
}
