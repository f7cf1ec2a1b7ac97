package store

import (
	"context"
	"strings"

	"github.com/rcliao/seriesmark/internal/model"
)

// ReactionSet is one user's marks for one series, as exported.
type ReactionSet struct {
	User      string            `json:"user"`
	Series    string            `json:"series"`
	Reactions model.ReactionMap `json:"reactions"`
}

// ExportReactions returns every user's reactions, optionally filtered by series.
func (s *SQLiteStore) ExportReactions(ctx context.Context, series string) ([]ReactionSet, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}
	if series != "" {
		where = append(where, "r.series = ?")
		args = append(args, series)
	}

	query := `SELECT u.name, r.series, r.movie_id, r.reaction
	          FROM reactions r INNER JOIN users u ON u.id = r.user_id
	          WHERE ` + strings.Join(where, " AND ") + `
	          ORDER BY u.name, r.series, r.movie_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []ReactionSet
	for rows.Next() {
		var user, ser, id, r string
		if err := rows.Scan(&user, &ser, &id, &r); err != nil {
			return nil, err
		}
		if n := len(sets); n == 0 || sets[n-1].User != user || sets[n-1].Series != ser {
			sets = append(sets, ReactionSet{User: user, Series: ser, Reactions: model.ReactionMap{}})
		}
		sets[len(sets)-1].Reactions[id] = model.Reaction(r)
	}
	return sets, rows.Err()
}

// ImportReactions stores exported reaction sets, creating users by name as
// needed. Marks on movies missing from the catalog are skipped.
func (s *SQLiteStore) ImportReactions(ctx context.Context, sets []ReactionSet) (int, error) {
	imported := 0
	for _, set := range sets {
		u, err := s.EnsureUser(ctx, set.User)
		if err != nil {
			return imported, err
		}
		n, err := s.SaveReactions(ctx, SaveReactionsParams{
			UserID:    u.ID,
			Series:    set.Series,
			Reactions: set.Reactions,
		})
		if err != nil {
			return imported, err
		}
		imported += n
	}
	return imported, nil
}
