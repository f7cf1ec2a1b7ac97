package store

import (
	"context"
	"strings"

	"github.com/rcliao/seriesmark/internal/model"
)

// SeriesInfo summarizes one imported series.
type SeriesInfo struct {
	Series    string `json:"series"`
	Movies    int    `json:"movies"`
	Reactions int    `json:"reactions"`
}

// SearchMovies finds movies in a series whose title, id or director contains
// the query, case-insensitively. Results are in catalog order.
func (s *SQLiteStore) SearchMovies(ctx context.Context, p SearchParams) ([]model.Movie, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	cat, err := s.Catalog(ctx, p.Series)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(p.Query))
	var results []model.Movie
	for _, m := range cat.Movies() {
		if len(results) >= limit {
			break
		}
		if q == "" ||
			strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(m.ID, q) ||
			strings.Contains(strings.ToLower(m.Director), q) {
			results = append(results, m)
		}
	}
	return results, nil
}

// ListSeries returns every imported series with movie and reaction counts.
func (s *SQLiteStore) ListSeries(ctx context.Context) ([]SeriesInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.series, COUNT(*) AS movies,
		       (SELECT COUNT(*) FROM reactions r WHERE r.series = m.series) AS reactions
		FROM movies m
		GROUP BY m.series ORDER BY m.series`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SeriesInfo
	for rows.Next() {
		var si SeriesInfo
		if err := rows.Scan(&si.Series, &si.Movies, &si.Reactions); err != nil {
			return nil, err
		}
		out = append(out, si)
	}
	return out, rows.Err()
}
