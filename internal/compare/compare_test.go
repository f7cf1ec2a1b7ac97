package compare

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/seriesmark/internal/model"
)

const (
	yes   = model.ReactionYes
	maybe = model.ReactionMaybe
	no    = model.ReactionNo
	none  = model.ReactionNone
)

func catalog(n int) []model.Movie {
	movies := make([]model.Movie, n)
	for i := range movies {
		movies[i] = model.Movie{ID: fmt.Sprintf("m%d", i), Title: fmt.Sprintf("Movie %d", i)}
	}
	return movies
}

func TestCategorizeAllPairs(t *testing.T) {
	tests := []struct {
		a, b model.Reaction
		want model.Category
	}{
		{yes, yes, model.CategoryStrong},
		{yes, maybe, model.CategoryPossible},
		{maybe, yes, model.CategoryPossible},
		{maybe, maybe, model.CategoryPossible},
		{no, no, model.CategoryPass},
		{yes, no, model.CategoryDisagree},
		{no, yes, model.CategoryDisagree},
		{maybe, no, model.CategoryDisagree},
		{no, maybe, model.CategoryDisagree},
		{none, none, model.CategoryUnreviewed},
		{none, yes, model.CategoryUnreviewed},
		{none, maybe, model.CategoryUnreviewed},
		{none, no, model.CategoryUnreviewed},
		{yes, none, model.CategoryUnreviewed},
		{maybe, none, model.CategoryUnreviewed},
		{no, none, model.CategoryUnreviewed},
	}
	require.Len(t, tests, 16)

	movies := catalog(1)
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.a, tt.b), func(t *testing.T) {
			a, b := model.ReactionMap{}, model.ReactionMap{}
			if tt.a != none {
				a["m0"] = tt.a
			}
			if tt.b != none {
				b["m0"] = tt.b
			}
			items := Categorize(movies, a, b)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Category)
			assert.Equal(t, tt.a, items[0].A)
			assert.Equal(t, tt.b, items[0].B)
		})
	}
}

func TestCategorizeExplicitNone(t *testing.T) {
	items := Categorize(catalog(1), model.ReactionMap{"m0": none}, model.ReactionMap{"m0": yes})
	assert.Equal(t, model.CategoryUnreviewed, items[0].Category)
}

func TestCategorizePreservesOrder(t *testing.T) {
	movies := catalog(5)
	a := model.ReactionMap{"m4": yes, "m0": no, "m2": maybe}
	b := model.ReactionMap{"m2": yes, "m4": yes, "m0": no}

	items := Categorize(movies, a, b)
	require.Len(t, items, 5)
	for i, it := range items {
		assert.Equal(t, movies[i].ID, it.Movie.ID)
	}
	assert.Equal(t, model.CategoryPass, items[0].Category)
	assert.Equal(t, model.CategoryUnreviewed, items[1].Category)
	assert.Equal(t, model.CategoryPossible, items[2].Category)
	assert.Equal(t, model.CategoryUnreviewed, items[3].Category)
	assert.Equal(t, model.CategoryStrong, items[4].Category)
}

func TestCategorizeScenario(t *testing.T) {
	movies := catalog(5)
	allYes := model.ReactionMap{}
	allNo := model.ReactionMap{}
	for _, m := range movies {
		allYes[m.ID] = yes
		allNo[m.ID] = no
	}

	for _, it := range Categorize(movies, allYes, allYes) {
		assert.Equal(t, model.CategoryStrong, it.Category)
	}
	for _, it := range Categorize(movies, allYes, allNo) {
		assert.Equal(t, model.CategoryDisagree, it.Category)
	}
}

func TestCategorizeEmpty(t *testing.T) {
	items := Categorize(nil, nil, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	for _, it := range Categorize(catalog(3), model.ReactionMap{"x": yes}, nil) {
		assert.Equal(t, model.CategoryUnreviewed, it.Category)
	}
}

func TestCategorizeDoesNotMutateInputs(t *testing.T) {
	movies := catalog(2)
	a := model.ReactionMap{"m0": yes}
	b := model.ReactionMap{}
	Categorize(movies, a, b)
	assert.Equal(t, model.ReactionMap{"m0": yes}, a)
	assert.Empty(t, b)
}

func TestFilter(t *testing.T) {
	movies := catalog(4)
	a := model.ReactionMap{"m0": yes, "m1": maybe, "m2": no, "m3": yes}
	b := model.ReactionMap{"m0": yes, "m1": yes, "m2": yes}
	items := Categorize(movies, a, b)

	agreed := Filter(items, model.CategoryStrong, model.CategoryPossible)
	require.Len(t, agreed, 2)
	assert.Equal(t, "m0", agreed[0].Movie.ID)
	assert.Equal(t, "m1", agreed[1].Movie.ID)

	assert.Len(t, Filter(items), 4)
	assert.Empty(t, Filter(items, model.CategoryPass))
}

func TestSummarize(t *testing.T) {
	movies := catalog(5)
	a := model.ReactionMap{"m0": yes, "m1": maybe, "m2": no, "m3": no}
	b := model.ReactionMap{"m0": yes, "m1": yes, "m2": yes, "m3": no}

	s := Summarize(Categorize(movies, a, b))
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 4, s.Reviewed)
	assert.Equal(t, 1, s.Counts[model.CategoryStrong])
	assert.Equal(t, 1, s.Counts[model.CategoryPossible])
	assert.Equal(t, 1, s.Counts[model.CategoryDisagree])
	assert.Equal(t, 1, s.Counts[model.CategoryPass])
	assert.Equal(t, 1, s.Counts[model.CategoryUnreviewed])
	assert.InDelta(t, 0.75, s.Agreement, 1e-9)

	empty := Summarize(nil)
	assert.Zero(t, empty.Agreement)
	assert.Len(t, empty.Counts, len(model.Categories))
}
