package model

import "testing"

func TestParseReaction(t *testing.T) {
	tests := []struct {
		in      string
		want    Reaction
		wantErr bool
	}{
		{"yes", ReactionYes, false},
		{"maybe", ReactionMaybe, false},
		{"no", ReactionNo, false},
		{"none", ReactionNone, false},
		{"", ReactionNone, false},
		{"YES", ReactionNone, true},
		{"love", ReactionNone, true},
	}
	for _, tt := range tests {
		got, err := ParseReaction(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReaction(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseReaction(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReactionMapGetAndSparse(t *testing.T) {
	m := ReactionMap{"a": ReactionYes, "b": ReactionNone, "c": ""}
	if m.Get("a") != ReactionYes {
		t.Errorf("expected yes for a, got %q", m.Get("a"))
	}
	if m.Get("c") != ReactionNone || m.Get("missing") != ReactionNone {
		t.Error("expected none for empty and missing keys")
	}
	s := m.Sparse()
	if len(s) != 1 || s["a"] != ReactionYes {
		t.Errorf("expected only a in sparse map, got %v", s)
	}
}
