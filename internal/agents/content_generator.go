package agents

import (
	"fmt"
	"strings"
)

// GeneratedPost is one platform-tailored piece of content
type GeneratedPost struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

type hashtagExtractor interface {
	ExtractHashtags(text, platform string, count int) []string
}

type ContentGeneratorAgent struct {
	hashtags hashtagExtractor
	picker   Picker
}

func NewContentGeneratorAgent(hashtags hashtagExtractor, picker Picker) *ContentGeneratorAgent {
	if picker == nil {
		picker = RandomPicker{}
	}

	return &ContentGeneratorAgent{
		hashtags: hashtags,
		picker:   picker,
	}
}

// Generate builds one base text for the tone and tailors it to every requested platform.
// An empty topic is replaced by a keyword of the randomly chosen industry.
func (a *ContentGeneratorAgent) Generate(platforms []string, tone string, topic string) ([]GeneratedPost, error) {
	parsedTone, err := ParseTone(tone)
	if err != nil {
		return nil, err
	}

	profiles := make([]PlatformProfile, 0, len(platforms))
	for _, platform := range platforms {
		profile, err := ProfileFor(platform)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	base := a.composeBase(parsedTone, topic)

	posts := make([]GeneratedPost, 0, len(profiles))
	for _, profile := range profiles {
		posts = append(posts, GeneratedPost{
			Platform: profile.Name,
			Content:  a.tailor(base, profile),
		})
	}

	return posts, nil
}

func (a *ContentGeneratorAgent) composeBase(tone Tone, topic string) string {
	industry := pick(a.picker, industryOrder)
	keywords := industryKeywords[industry]

	benefit := pick(a.picker, keywords)
	template := pick(a.picker, templates[tone])

	topic = stripPlaceholders(topic)
	if strings.TrimSpace(topic) == "" {
		topic = pick(a.picker, keywords)
	}

	replacer := strings.NewReplacer(
		placeholderTopic, topic,
		placeholderBenefit, benefit,
		placeholderIndustry, string(industry),
	)
	return replacer.Replace(template)
}

var placeholderStripper = strings.NewReplacer(placeholderTopic, "", placeholderBenefit, "", placeholderIndustry, "")

// stripPlaceholders removes template tokens from caller text until none are left,
// so nested input like "{{topic}topic}" cannot rebuild one.
func stripPlaceholders(text string) string {
	for {
		stripped := placeholderStripper.Replace(text)
		if stripped == text {
			return stripped
		}
		text = stripped
	}
}

func (a *ContentGeneratorAgent) tailor(base string, profile PlatformProfile) string {
	content := profile.Format(base)

	tags := a.hashtags.ExtractHashtags(content, profile.Name, profile.HashtagCount)
	content = fmt.Sprintf("%s\n\n%s", content, strings.Join(tags, " "))

	return truncate(content, profile.MaxLength)
}

// truncate caps content at maxLength characters, marking the cut with "...".
func truncate(content string, maxLength int) string {
	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}
	if maxLength < 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}
