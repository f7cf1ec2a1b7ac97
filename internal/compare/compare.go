// Package compare classifies a catalog by how two users' reactions line up.
package compare

import "github.com/rcliao/seriesmark/internal/model"

// Categorize returns one item per movie, in catalog order.
func Categorize(movies []model.Movie, a, b model.ReactionMap) []model.CompareItem {
	items := make([]model.CompareItem, len(movies))
	for i, m := range movies {
		ra, rb := a.Get(m.ID), b.Get(m.ID)
		items[i] = model.CompareItem{
			Movie:    m,
			A:        ra,
			B:        rb,
			Category: Classify(ra, rb),
		}
	}
	return items
}

// Classify applies the agreement rules in order; the first match wins.
func Classify(a, b model.Reaction) model.Category {
	switch {
	case a == model.ReactionNone || b == model.ReactionNone:
		return model.CategoryUnreviewed
	case a == model.ReactionYes && b == model.ReactionYes:
		return model.CategoryStrong
	case positive(a) && positive(b):
		return model.CategoryPossible
	case a == model.ReactionNo && b == model.ReactionNo:
		return model.CategoryPass
	}
	return model.CategoryDisagree
}

func positive(r model.Reaction) bool {
	return r == model.ReactionYes || r == model.ReactionMaybe
}

// Filter keeps the items whose category is one of cats, preserving order.
// With no categories every item is kept.
func Filter(items []model.CompareItem, cats ...model.Category) []model.CompareItem {
	if len(cats) == 0 {
		return items
	}
	want := make(map[model.Category]bool, len(cats))
	for _, c := range cats {
		want[c] = true
	}
	out := make([]model.CompareItem, 0, len(items))
	for _, it := range items {
		if want[it.Category] {
			out = append(out, it)
		}
	}
	return out
}

// Summary counts items per category.
type Summary struct {
	Total    int                    `json:"total"`
	Counts   map[model.Category]int `json:"counts"`
	Reviewed int                    `json:"reviewed"`
	// Agreement is the share of reviewed movies not in disagreement.
	Agreement float64 `json:"agreement"`
}

// Summarize tallies a comparison.
func Summarize(items []model.CompareItem) Summary {
	s := Summary{Total: len(items), Counts: make(map[model.Category]int, len(model.Categories))}
	for _, c := range model.Categories {
		s.Counts[c] = 0
	}
	for _, it := range items {
		s.Counts[it.Category]++
	}
	s.Reviewed = s.Total - s.Counts[model.CategoryUnreviewed]
	if s.Reviewed > 0 {
		s.Agreement = float64(s.Reviewed-s.Counts[model.CategoryDisagree]) / float64(s.Reviewed)
	}
	return s
}
