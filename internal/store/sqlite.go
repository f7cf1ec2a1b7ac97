package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rcliao/seriesmark/internal/catalog"
	"github.com/rcliao/seriesmark/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	log     *zap.Logger
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
// A nil logger disables diagnostics.
func NewSQLiteStore(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	s := &SQLiteStore{
		db:      db,
		log:     log.Named("store"),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Debug("store opened", zap.String("path", dbPath))
	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS movies (
		series      TEXT NOT NULL,
		id          TEXT NOT NULL,
		title       TEXT NOT NULL,
		year        INTEGER NOT NULL DEFAULT 0,
		director    TEXT,
		runtime     INTEGER NOT NULL DEFAULT 0,
		showtimes   TEXT,
		imported_at TEXT NOT NULL,
		PRIMARY KEY (series, id)
	);

	CREATE TABLE IF NOT EXISTS users (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reactions (
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		series      TEXT NOT NULL,
		movie_id    TEXT NOT NULL,
		reaction    TEXT NOT NULL CHECK (reaction IN ('yes', 'maybe', 'no')),
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (user_id, series, movie_id)
	);
	CREATE INDEX IF NOT EXISTS idx_reactions_series ON reactions(series);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ImportCatalog replaces the catalog of a series in a single transaction.
// Existing reactions are kept; marks on movies that disappeared are hidden
// until the movie comes back.
func (s *SQLiteStore) ImportCatalog(ctx context.Context, series string, movies []model.Movie) (int, error) {
	if strings.TrimSpace(series) == "" {
		return 0, errors.New("series is required")
	}
	cat := catalog.Build(movies)
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE series = ?`, series); err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}

	for _, m := range cat.Movies() {
		var showtimes *string
		if len(m.Showtimes) > 0 {
			b, _ := json.Marshal(m.Showtimes)
			st := string(b)
			showtimes = &st
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO movies (series, id, title, year, director, runtime, showtimes, imported_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			series, m.ID, m.Title, m.Year, m.Director, m.Runtime, showtimes, now)
		if err != nil {
			return 0, fmt.Errorf("insert movie %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.log.Info("catalog imported",
		zap.String("series", series),
		zap.Int("records", len(movies)),
		zap.Int("movies", cat.Len()))
	return cat.Len(), nil
}

// Catalog loads a series and rebuilds its canonical order.
func (s *SQLiteStore) Catalog(ctx context.Context, series string) (*catalog.Catalog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT series, id, title, year, director, runtime, showtimes
		 FROM movies WHERE series = ?`, series)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("series %q: %w", series, ErrNotFound)
	}
	return catalog.Build(movies), nil
}

func (s *SQLiteStore) AddUser(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("user name is required")
	}
	u := &model.User{ID: s.newID(), Name: name, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
		u.ID, u.Name, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert user %q: %w", name, err)
	}
	return u, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, ref string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM users WHERE id = ? OR name = ?
		 ORDER BY id = ? DESC LIMIT 1`, ref, ref, ref)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureUser returns the user named name, creating it if needed.
func (s *SQLiteStore) EnsureUser(ctx context.Context, name string) (*model.User, error) {
	u, err := s.GetUser(ctx, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.AddUser(ctx, name)
}

// ListUsers returns every user, oldest first.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) SetReaction(ctx context.Context, p SetReactionParams) error {
	if !model.ValidReactions[p.Reaction] {
		return fmt.Errorf("invalid reaction %q", p.Reaction)
	}
	if err := s.movieExists(ctx, s.db, p.Series, p.MovieID); err != nil {
		return err
	}

	if p.Reaction == model.ReactionNone {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM reactions WHERE user_id = ? AND series = ? AND movie_id = ?`,
			p.UserID, p.Series, p.MovieID)
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reactions (user_id, series, movie_id, reaction, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, series, movie_id)
		 DO UPDATE SET reaction = excluded.reaction, updated_at = excluded.updated_at`,
		p.UserID, p.Series, p.MovieID, string(p.Reaction), now)
	if err != nil {
		return fmt.Errorf("set reaction: %w", err)
	}
	return nil
}

// SaveReactions stores p.Reactions, skipping none values and movies that
// are not in the series.
func (s *SQLiteStore) SaveReactions(ctx context.Context, p SaveReactionsParams) (int, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if p.Replace {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM reactions WHERE user_id = ? AND series = ?`, p.UserID, p.Series)
		if err != nil {
			return 0, err
		}
	}

	saved := 0
	for id, r := range p.Reactions.Sparse() {
		if !model.ValidReactions[r] {
			return 0, fmt.Errorf("invalid reaction %q for %s", r, id)
		}
		if err := s.movieExists(ctx, tx, p.Series, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				s.log.Debug("skipping reaction for unknown movie",
					zap.String("series", p.Series), zap.String("movie", id))
				continue
			}
			return 0, err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO reactions (user_id, series, movie_id, reaction, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (user_id, series, movie_id)
			 DO UPDATE SET reaction = excluded.reaction, updated_at = excluded.updated_at`,
			p.UserID, p.Series, id, string(r), now)
		if err != nil {
			return 0, fmt.Errorf("save reaction %s: %w", id, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return saved, nil
}

// Reactions returns the user's marks on movies currently in the series.
func (s *SQLiteStore) Reactions(ctx context.Context, userID, series string) (model.ReactionMap, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.movie_id, r.reaction FROM reactions r
		 INNER JOIN movies m ON m.series = r.series AND m.id = r.movie_id
		 WHERE r.user_id = ? AND r.series = ?`, userID, series)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reactions := model.ReactionMap{}
	for rows.Next() {
		var id, r string
		if err := rows.Scan(&id, &r); err != nil {
			return nil, err
		}
		reactions[id] = model.Reaction(r)
	}
	return reactions, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *SQLiteStore) movieExists(ctx context.Context, q queryer, series, id string) error {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies WHERE series = ? AND id = ?`, series, id).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("movie %s/%s: %w", series, id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row scanner) (model.Movie, error) {
	var m model.Movie
	var director, showtimes sql.NullString

	err := row.Scan(&m.Series, &m.ID, &m.Title, &m.Year, &director, &m.Runtime, &showtimes)
	if err != nil {
		return m, err
	}
	if director.Valid {
		m.Director = director.String
	}
	if showtimes.Valid {
		json.Unmarshal([]byte(showtimes.String), &m.Showtimes)
	}
	return m, nil
}

func scanUser(row scanner) (model.User, error) {
	var u model.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &createdAt); err != nil {
		return u, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return u, nil
}
