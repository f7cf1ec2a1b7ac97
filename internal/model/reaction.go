package model

import "fmt"

// Reaction is a user's disposition toward a movie.
type Reaction string

const (
	ReactionYes   Reaction = "yes"
	ReactionMaybe Reaction = "maybe"
	ReactionNo    Reaction = "no"
	// ReactionNone is never stored or serialized; absence means none.
	ReactionNone Reaction = "none"
)

// ValidReactions are the reactions a user can set explicitly.
var ValidReactions = map[Reaction]bool{
	ReactionYes:   true,
	ReactionMaybe: true,
	ReactionNo:    true,
	ReactionNone:  true,
}

// ParseReaction converts user input into a Reaction.
func ParseReaction(s string) (Reaction, error) {
	r := Reaction(s)
	if s == "" {
		return ReactionNone, nil
	}
	if !ValidReactions[r] {
		return ReactionNone, fmt.Errorf("invalid reaction %q (valid: yes, maybe, no, none)", s)
	}
	return r, nil
}

// ReactionMap maps movie id to reaction. Missing keys mean ReactionNone.
type ReactionMap map[string]Reaction

// Get returns the reaction for id, or ReactionNone when absent.
func (m ReactionMap) Get(id string) Reaction {
	if r, ok := m[id]; ok && r != "" {
		return r
	}
	return ReactionNone
}

// Sparse returns a copy of m without none entries.
func (m ReactionMap) Sparse() ReactionMap {
	out := make(ReactionMap, len(m))
	for id, r := range m {
		if r == ReactionNone || r == "" {
			continue
		}
		out[id] = r
	}
	return out
}
