package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHashtagAgent(t *testing.T) *HashtagAgent {
	t.Helper()
	agent, err := NewHashtagAgent(16)
	require.NoError(t, err)
	return agent
}

func TestNewHashtagAgent_RejectsInvalidCacheSize(t *testing.T) {
	_, err := NewHashtagAgent(0)
	assert.Error(t, err)
}

func TestExtractHashtags_EmptyTextUsesFallbackPool(t *testing.T) {
	agent := newTestHashtagAgent(t)

	tags := agent.ExtractHashtags("", "Twitter", 2)
	assert.Equal(t, []string{"#innovation", "#digitaltransformation"}, tags)
}

func TestExtractHashtags_NonPositiveCount(t *testing.T) {
	agent := newTestHashtagAgent(t)

	assert.Empty(t, agent.ExtractHashtags("Teams love automation", "LinkedIn", 0))
	assert.Empty(t, agent.ExtractHashtags("Teams love automation", "LinkedIn", -3))
}

func TestExtractHashtags_TruncatesBeforeDeduplicating(t *testing.T) {
	agent := newTestHashtagAgent(t)

	// The pool repeats "growth" and "strategy", so 24 slots collapse to 22 tags.
	tags := agent.ExtractHashtags("   ", "Instagram", 24)
	assert.Len(t, tags, 22)
	assert.Equal(t, "#innovation", tags[0])
	assert.Contains(t, tags, "#AI")
	assert.Contains(t, tags, "#socialmedia")
}

func TestExtractHashtags_PrefersWordsFromText(t *testing.T) {
	agent := newTestHashtagAgent(t)

	tags := agent.ExtractHashtags("The developers shipped a brilliant product", "LinkedIn", 3)
	require.Len(t, tags, 3)
	assert.Contains(t, tags, "#developers")
	assert.Contains(t, tags, "#product")
	assert.NotContains(t, tags, "#innovation")
}

func TestExtractHashtags_NoDuplicates(t *testing.T) {
	agent := newTestHashtagAgent(t)

	texts := []string{
		"",
		"Growth growth growth strategy strategy",
		"Marketing teams build audience engagement through content and branding",
		"Hey everyone! 👋 Check out how automation! It's amazing how growth 🚀",
	}

	for _, text := range texts {
		tags := agent.ExtractHashtags(text, "Instagram", 25)
		seen := map[string]bool{}
		for _, tag := range tags {
			assert.False(t, seen[tag], "duplicate tag %s for %q", tag, text)
			seen[tag] = true
			assert.Equal(t, byte('#'), tag[0])
			assert.NotContains(t, tag, " ")
		}
		assert.LessOrEqual(t, len(tags), 25)
	}
}

func TestExtractHashtags_CachedCandidatesAreNotShared(t *testing.T) {
	agent := newTestHashtagAgent(t)
	text := "Engineers automate deployments"

	first := agent.ExtractHashtags(text, "Twitter", 2)
	first[0] = "#mutated"
	second := agent.ExtractHashtags(text, "Twitter", 2)

	assert.NotEqual(t, "#mutated", second[0])
	assert.Equal(t, 1, agent.candidates.Len())
}

func TestFallbackKeywords_FixedIndustryOrder(t *testing.T) {
	keywords := FallbackKeywords()
	require.Len(t, keywords, 24)
	assert.Equal(t, "innovation", keywords[0])
	assert.Equal(t, "growth", keywords[6])
	assert.Equal(t, "wellness", keywords[12])
	assert.Equal(t, "branding", keywords[18])
}
