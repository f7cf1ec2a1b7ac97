package shareurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEscapesToken(t *testing.T) {
	got, err := Build("https://films.example/list", Link{Series: "noir", UserID: "01JABC", Token: "a+b/c=="})
	require.NoError(t, err)
	assert.Equal(t, "https://films.example/list?r=a%2Bb%2Fc%3D%3D&s=noir&u=01JABC", got)
}

func TestBuildKeepsOtherParams(t *testing.T) {
	got, err := Build("https://films.example/list?view=grid&r=old", Link{Token: "new"})
	require.NoError(t, err)
	assert.Equal(t, "https://films.example/list?r=new&view=grid", got)
}

func TestBuildBadBase(t *testing.T) {
	_, err := Build("://nope", Link{Token: "x"})
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	in := Link{Series: "noir", UserID: "01JABC", Token: "AwAF+/Cjk="}
	raw, err := Build("https://films.example/", in)
	require.NoError(t, err)

	out, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseForms(t *testing.T) {
	tests := []struct {
		raw  string
		want Link
	}{
		{"", Link{}},
		{"  AwAFCjk=  ", Link{Token: "AwAFCjk="}},
		{"?u=bob&r=AwAFCjk%3D", Link{UserID: "bob", Token: "AwAFCjk="}},
		{"r=AgACDQ%3D%3D&s=noir", Link{Series: "noir", Token: "AgACDQ=="}},
		{"https://x.example/p?s=noir&r=AgACDQ%3D%3D#top", Link{Series: "noir", Token: "AgACDQ=="}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestParseBadQuery(t *testing.T) {
	_, err := Parse("?r=%zz")
	assert.Error(t, err)
}
