package model

// Category is the agreement class of a movie across two users' reactions.
type Category string

const (
	CategoryStrong     Category = "strong"
	CategoryPossible   Category = "possible"
	CategoryDisagree   Category = "disagree"
	CategoryPass       Category = "pass"
	CategoryUnreviewed Category = "unreviewed"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryStrong,
	CategoryPossible,
	CategoryDisagree,
	CategoryPass,
	CategoryUnreviewed,
}

// CompareItem is one row of a two-user comparison.
type CompareItem struct {
	Movie    Movie    `json:"movie"`
	A        Reaction `json:"a"`
	B        Reaction `json:"b"`
	Category Category `json:"category"`
}
