package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/seriesmark/internal/model"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Vertigo", "vertigo"},
		{"Amélie (2001)", "amelie-2001"},
		{"  The 400 Blows  ", "the-400-blows"},
		{"Crouching Tiger, Hidden Dragon", "crouching-tiger-hidden-dragon"},
		{"8½", "8"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildSortsAndIndexes(t *testing.T) {
	c := Build([]model.Movie{
		{Title: "vertigo"},
		{Title: "Alien"},
		{Title: "Metropolis"},
	})
	want := []string{"alien", "metropolis", "vertigo"}
	got := c.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
		if idx, ok := c.Index(want[i]); !ok || idx != i {
			t.Errorf("Index(%q) = %d,%v, want %d,true", want[i], idx, ok, i)
		}
	}
	if c.Contains("missing") {
		t.Error("expected missing id to be absent")
	}
}

func TestBuildIsOrderIndependent(t *testing.T) {
	a := Build([]model.Movie{{Title: "B"}, {Title: "a"}, {Title: "C"}, {ID: "x", Title: "a"}})
	b := Build([]model.Movie{{ID: "x", Title: "a"}, {Title: "C"}, {Title: "a"}, {Title: "B"}})
	ia, ib := a.IDs(), b.IDs()
	if len(ia) != len(ib) {
		t.Fatalf("length mismatch: %v vs %v", ia, ib)
	}
	for i := range ia {
		if ia[i] != ib[i] {
			t.Errorf("position %d: %q vs %q", i, ia[i], ib[i])
		}
	}
}

func TestBuildDedupesAndMergesShowtimes(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 2, 1, 19, 0, 0, 0, time.UTC)
	c := Build([]model.Movie{
		{Title: "Vertigo", Year: 1958, Showtimes: []model.Showtime{{Start: t1}}},
		{Title: "VERTIGO", Showtimes: []model.Showtime{{Start: t2}}},
		{Title: ""},
	})
	if c.Len() != 1 {
		t.Fatalf("expected 1 movie, got %d", c.Len())
	}
	m := c.At(0)
	if m.Year != 1958 {
		t.Errorf("expected first record to win, got year %d", m.Year)
	}
	if len(m.Showtimes) != 2 || !m.Showtimes[0].Start.Equal(t2) {
		t.Errorf("expected 2 showtimes sorted by start, got %v", m.Showtimes)
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	if c.Len() != 0 || c.Movies() != nil {
		t.Error("expected nil catalog to be empty")
	}
	if _, ok := c.Index("a"); ok {
		t.Error("expected no index on nil catalog")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noir.json")
	data := `[{"title":"Double Indemnity","year":1944,"showtimes":[{"start":"2026-03-01T19:00:00Z","venue":"Main"}]},{"title":"Laura"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	movies, err := LoadFile(path, "noir")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].Series != "noir" || movies[0].Showtimes[0].Venue != "Main" {
		t.Errorf("unexpected record: %+v", movies[0])
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json"), "noir"); err == nil {
		t.Error("expected error for missing file")
	}
}
