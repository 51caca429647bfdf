package agents

import (
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jdkato/prose/v2"
)

const DefaultHashtagCount = 5

const minCandidateLength = 3

// HashtagAgent derives hashtags from free text with part-of-speech analysis.
// Candidate extraction is memoized per text because tagging dominates the cost.
type HashtagAgent struct {
	candidates *lru.Cache[string, []string]
}

func NewHashtagAgent(cacheSize int) (*HashtagAgent, error) {
	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &HashtagAgent{candidates: cache}, nil
}

// ExtractHashtags returns up to count tags for text. Extracted words come first,
// followed by the industry keyword pool. The list is cut to count before duplicates
// are removed, so fewer than count tags may come back. Pool keywords keep their
// case but lose inner whitespace, so "digital transformation" becomes
// "#digitaltransformation".
func (a *HashtagAgent) ExtractHashtags(text, platform string, count int) []string {
	tags := []string{}
	if count <= 0 {
		return tags
	}

	pool := append(a.extractCandidates(text), fallbackPool()...)
	if len(pool) > count {
		pool = pool[:count]
	}

	seen := make(map[string]bool, len(pool))
	for _, word := range pool {
		tag := "#" + word
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	return tags
}

func (a *HashtagAgent) extractCandidates(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if cached, ok := a.candidates.Get(text); ok {
		return append([]string(nil), cached...)
	}

	words := analyze(text)
	a.candidates.Add(text, words)
	return append([]string(nil), words...)
}

// analyze collects topics, noun phrases and verbs, in that order.
func analyze(text string) []string {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil
	}

	var topics, nouns, verbs []string
	for _, ent := range doc.Entities() {
		topics = append(topics, ent.Text)
	}

	var phrase []string
	flush := func() {
		if len(phrase) > 0 {
			nouns = append(nouns, strings.Join(phrase, " "))
			phrase = nil
		}
	}
	for _, tok := range doc.Tokens() {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			phrase = append(phrase, tok.Text)
		case strings.HasPrefix(tok.Tag, "VB"):
			flush()
			verbs = append(verbs, tok.Text)
		default:
			flush()
		}
	}
	flush()

	seen := make(map[string]bool)
	var words []string
	for _, group := range [][]string{topics, nouns, verbs} {
		for _, word := range group {
			if seen[word] {
				continue
			}
			seen[word] = true
			if utf8.RuneCountInString(word) <= minCandidateLength {
				continue
			}
			words = append(words, normalizeTag(strings.ToLower(word)))
		}
	}

	return words
}

func fallbackPool() []string {
	keywords := FallbackKeywords()
	for i, keyword := range keywords {
		keywords[i] = normalizeTag(keyword)
	}
	return keywords
}

func normalizeTag(word string) string {
	return strings.Join(strings.Fields(word), "")
}
