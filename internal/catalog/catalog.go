// Package catalog assembles the ordered movie list a share token is resolved against.
//
// Tokens store catalog indices, not ids, so the sharer and the recipient must
// see the same order. Build is the only supported way to get one: it sorts
// deterministically and drops duplicates.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/cases"

	"github.com/rcliao/seriesmark/internal/model"
)

// Catalog is an immutable, stably ordered list of movies.
type Catalog struct {
	movies []model.Movie
	index  map[string]int
}

// Build assigns missing ids, merges duplicates (first wins, showtimes are
// combined) and sorts by case-folded title, then id.
func Build(movies []model.Movie) *Catalog {
	byID := make(map[string]int, len(movies))
	var out []model.Movie
	for _, m := range movies {
		if m.ID == "" {
			m.ID = Slug(m.Title)
		}
		if m.ID == "" {
			continue
		}
		if i, ok := byID[m.ID]; ok {
			out[i].Showtimes = append(out[i].Showtimes, m.Showtimes...)
			continue
		}
		m.Showtimes = append([]model.Showtime(nil), m.Showtimes...)
		byID[m.ID] = len(out)
		out = append(out, m)
	}

	fold := cases.Fold()
	keys := make(map[string]string, len(out))
	for _, m := range out {
		keys[m.ID] = fold.String(m.Title)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := keys[out[i].ID], keys[out[j].ID]
		if ki != kj {
			return ki < kj
		}
		return out[i].ID < out[j].ID
	})

	c := &Catalog{movies: out, index: make(map[string]int, len(out))}
	for i := range out {
		sort.SliceStable(out[i].Showtimes, func(a, b int) bool {
			return out[i].Showtimes[a].Start.Before(out[i].Showtimes[b].Start)
		})
		c.index[out[i].ID] = i
	}
	return c
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.movies)
}

// ID returns the id of the movie at position i.
func (c *Catalog) ID(i int) string { return c.movies[i].ID }

// At returns the movie at position i.
func (c *Catalog) At(i int) model.Movie { return c.movies[i] }

// Movies returns the movies in catalog order. Callers must not modify it.
func (c *Catalog) Movies() []model.Movie {
	if c == nil {
		return nil
	}
	return c.movies
}

// IDs returns the movie ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, c.Len())
	for i := range ids {
		ids[i] = c.movies[i].ID
	}
	return ids
}

// Index returns the position of id in the catalog.
func (c *Catalog) Index(id string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[id]
	return i, ok
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.Index(id)
	return ok
}

// LoadFile reads a showtime dataset: a JSON array of movie records as
// produced by the scraper. The series field of each record is overwritten.
func LoadFile(path, series string) ([]model.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var movies []model.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	for i := range movies {
		movies[i].Series = series
	}
	return movies, nil
}
