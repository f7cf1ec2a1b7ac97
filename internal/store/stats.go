package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string       `json:"db_path"`
	DBSizeBytes int64        `json:"db_size_bytes"`
	Movies      int          `json:"movies"`
	Users       int          `json:"users"`
	Reactions   int          `json:"reactions"`
	Series      []SeriesInfo `json:"series"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&st.Movies)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.Users)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reactions`).Scan(&st.Reactions)

	series, err := s.ListSeries(ctx)
	if err != nil {
		return st, err
	}
	st.Series = series
	return st, nil
}
