// Package store provides the catalog and reaction storage interface and its
// SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/seriesmark/internal/catalog"
	"github.com/rcliao/seriesmark/internal/model"
)

// ErrNotFound is returned when a series, movie or user does not exist.
var ErrNotFound = errors.New("not found")

// SetReactionParams holds parameters for marking a single movie.
type SetReactionParams struct {
	UserID   string
	Series   string
	MovieID  string
	Reaction model.Reaction // ReactionNone clears the mark
}

// SaveReactionsParams holds parameters for storing a whole reaction map.
type SaveReactionsParams struct {
	UserID    string
	Series    string
	Reactions model.ReactionMap
	Replace   bool // drop the user's existing marks for the series first
}

// SearchParams holds parameters for searching a series catalog.
type SearchParams struct {
	Series string
	Query  string
	Limit  int
}

// Store defines the storage interface.
type Store interface {
	// ImportCatalog replaces the catalog of a series. Returns the number of
	// movies stored after deduplication.
	ImportCatalog(ctx context.Context, series string, movies []model.Movie) (int, error)

	// Catalog returns the stably ordered catalog of a series.
	Catalog(ctx context.Context, series string) (*catalog.Catalog, error)

	// AddUser creates a user with a fresh id.
	AddUser(ctx context.Context, name string) (*model.User, error)

	// GetUser finds a user by id or name.
	GetUser(ctx context.Context, ref string) (*model.User, error)

	// SetReaction marks or clears one movie for a user.
	SetReaction(ctx context.Context, p SetReactionParams) error

	// SaveReactions stores a reaction map. Returns the number of marks saved.
	SaveReactions(ctx context.Context, p SaveReactionsParams) (int, error)

	// Reactions returns a user's marks for a series.
	Reactions(ctx context.Context, userID, series string) (model.ReactionMap, error)

	// Close closes the store.
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
