package agents

import "strings"

// Tone selects the phrasing family a post is written in
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneHumorous     Tone = "humorous"
)

// Industry is a themed keyword bucket used for placeholders and hashtag fallback
type Industry string

const (
	IndustryTech      Industry = "tech"
	IndustryBusiness  Industry = "business"
	IndustryLifestyle Industry = "lifestyle"
	IndustryMarketing Industry = "marketing"
)

// Placeholder tokens a template may contain.
const (
	placeholderTopic    = "{topic}"
	placeholderBenefit  = "{benefit}"
	placeholderIndustry = "{industry}"
)

var templates = map[Tone][]string{
	ToneProfessional: {
		"Excited to share that {topic}. Learn how {benefit} and stay ahead in {industry}.",
		"New insights: {topic}. Discover how {benefit} for your business growth.",
		"Industry update: {topic}. Find out how {benefit} in today's market.",
	},
	ToneCasual: {
		"Hey everyone! 👋 Check out how {topic}! It's amazing how {benefit} 🚀",
		"Can't believe how {topic}! Want to know how {benefit}? Let's chat! 💬",
		"Just discovered something cool about {topic}! Did you know you can {benefit}? 🤔",
	},
	ToneHumorous: {
		"Plot twist: {topic} 😅 Who knew you could {benefit}? #MindBlown",
		"Warning: {topic} might make you too awesome! Side effects include: {benefit} 😎",
		"Breaking news: {topic} just broke the internet! Apparently {benefit} 🤣",
	},
}

// industryOrder fixes iteration order for random selection and the fallback pool.
var industryOrder = []Industry{IndustryTech, IndustryBusiness, IndustryLifestyle, IndustryMarketing}

var industryKeywords = map[Industry][]string{
	IndustryTech:      {"innovation", "digital transformation", "technology", "automation", "AI", "future"},
	IndustryBusiness:  {"growth", "strategy", "success", "leadership", "management", "ROI"},
	IndustryLifestyle: {"wellness", "balance", "happiness", "health", "mindfulness", "growth"},
	IndustryMarketing: {"branding", "engagement", "audience", "strategy", "content", "social media"},
}

// Tones returns the supported tones in display order
func Tones() []Tone {
	return []Tone{ToneProfessional, ToneCasual, ToneHumorous}
}

// ParseTone matches a tone name case-insensitively
func ParseTone(name string) (Tone, error) {
	tone := Tone(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := templates[tone]; !ok {
		return "", &ValidationError{Err: ErrUnknownTone, Value: name}
	}
	return tone, nil
}

// Templates returns a copy of the templates owned by a tone
func Templates(tone Tone) []string {
	return append([]string(nil), templates[tone]...)
}

// Industries returns all industries in their fixed order
func Industries() []Industry {
	return append([]Industry(nil), industryOrder...)
}

// Keywords returns a copy of an industry's keyword list
func Keywords(industry Industry) []string {
	return append([]string(nil), industryKeywords[industry]...)
}

// FallbackKeywords flattens every industry keyword list in industry order.
// Duplicates across industries are kept.
func FallbackKeywords() []string {
	var all []string
	for _, industry := range industryOrder {
		all = append(all, industryKeywords[industry]...)
	}
	return all
}
