package gift

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordForBudget(t *testing.T) {
	cases := []struct {
		budget float64
		want   string
	}{
		{0, KeywordPractical},
		{15, KeywordPractical},
		{15.01, KeywordFun},
		{25, KeywordFun},
		{25.5, KeywordLuxury},
		{35, KeywordLuxury},
		{35.01, KeywordPremium},
		{200, KeywordPremium},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KeywordForBudget(tc.budget), "budget %.2f", tc.budget)
	}
}

func TestResolveKeyword(t *testing.T) {
	assert.Equal(t, "gardening", ResolveKeyword("fun", "  gardening ", 10))
	assert.Equal(t, "luxury", ResolveKeyword("luxury", "", 10))
	assert.Equal(t, KeywordPremium, ResolveKeyword("", " ", 50))
}

func TestBuildPromptMentionsBand(t *testing.T) {
	prompt := BuildPrompt("fun", 20)
	assert.Contains(t, prompt, `"fun"`)
	assert.Contains(t, prompt, "$10.00 and $30.00")
	assert.Contains(t, prompt, "JSON array")

	low, high := PriceRange(4)
	assert.Equal(t, 0.0, low)
	assert.Equal(t, 14.0, high)
}

func TestParseSuggestionsFencedWithStringPrice(t *testing.T) {
	text := "```json\n[{\"name\":\"Mug\",\"description\":\"A mug\",\"price\":\"$25.00\",\"reason\":\"coffee\"}," +
		"{\"name\":\"Book\",\"description\":\"A book\",\"price\":19.5}]\n```"

	got, err := ParseSuggestions(text)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mug", got[0].Name)
	assert.Equal(t, 25.0, got[0].Price)
	assert.Equal(t, "coffee", got[0].Reason)
	assert.Equal(t, 19.5, got[1].Price)
}

func TestParseSuggestionsErrors(t *testing.T) {
	_, err := ParseSuggestions("Here are some ideas: a mug")
	assert.True(t, errors.Is(err, ErrMalformedResponse))

	_, err = ParseSuggestions("```\n[]\n```")
	assert.True(t, errors.Is(err, ErrEmptySuggestions))

	_, err = ParseSuggestions(`[{"name":"x","price":"cheap"}]`)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestNormalizePrice(t *testing.T) {
	cases := map[string]float64{
		"$25.00":   25.0,
		"€1,299":   1299,
		" £ 12.5 ": 12.5,
		"40":       40,
	}
	for in, want := range cases {
		got, err := NormalizePrice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := NormalizePrice("$")
	assert.Error(t, err)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[1]", StripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, "[1]", StripCodeFence("```\n[1]\n```"))
	assert.Equal(t, "[1]", StripCodeFence("  [1] "))
}

func TestFallbackPracticalPricedAtBudget(t *testing.T) {
	got := Fallback("Practical", 12)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 3)
	assert.GreaterOrEqual(t, len(got), 2)
	for _, s := range got {
		assert.Equal(t, 12.0, s.Price)
		assert.NotEmpty(t, s.Name)
	}
}

func TestFallbackPresetsHaveTwoOrThreeItems(t *testing.T) {
	for _, kw := range PresetKeywords {
		n := len(Fallback(kw, 30))
		assert.True(t, n >= 2 && n <= 3, "%s has %d items", kw, n)
	}
}

func TestFallbackUnknownKeywordIsTemplated(t *testing.T) {
	got := Fallback("Gardening", 40)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.True(t, strings.Contains(s.Name, "Gardening"), s.Name)
		assert.Equal(t, 40.0, s.Price)
	}
}

func TestResultJSONCarriesError(t *testing.T) {
	r := Result{Keyword: "fun", Budget: 20, Source: SourceFallback, Err: ErrNoGenerator}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"source":"fallback"`)
	assert.Contains(t, string(data), `"error":"no text generator configured"`)
	assert.True(t, r.Fallback())
}
