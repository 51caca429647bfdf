package agents

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderPattern = regexp.MustCompile(`\{(topic|benefit|industry)\}`)

func TestGenerate_FillsTemplateWithTopic(t *testing.T) {
	tags := &stubHashtags{tags: []string{"#launch", "#api", "#devtools"}}
	// industry=tech, benefit=innovation, template=0
	agent := NewContentGeneratorAgent(tags, &sequencePicker{values: []int{0, 0, 0}})

	posts, err := agent.Generate([]string{"LinkedIn"}, "professional", "our new API is live")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	assert.Equal(t, "LinkedIn", posts[0].Platform)
	assert.Equal(t,
		"Excited to share that our new API is live. Learn how innovation and stay ahead in tech.\n\n#launch #api #devtools",
		posts[0].Content)
	assert.Equal(t, []int{3}, tags.calls)
}

func TestGenerate_EmptyTopicUsesIndustryKeyword(t *testing.T) {
	tags := &stubHashtags{tags: []string{"#a", "#b"}}
	// industry=business, benefit=success, template=0, topic=ROI
	agent := NewContentGeneratorAgent(tags, &sequencePicker{values: []int{1, 2, 0, 5}})

	posts, err := agent.Generate([]string{"Twitter"}, "Professional", "")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	assert.Equal(t,
		"Excited to share that ROI. Learn how success and stay ahead in business.\n\n#a #b",
		posts[0].Content)
}

func TestGenerate_TopicCannotInjectPlaceholders(t *testing.T) {
	hashtags, err := NewHashtagAgent(16)
	require.NoError(t, err)

	topics := []string{
		"{benefit} rocks",
		"{industry} and {topic} news",
		"{{benefit}benefit} launch",
		"{benefit}{industry}",
	}

	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			agent := NewContentGeneratorAgent(hashtags, RandomPicker{})
			for _, tone := range Tones() {
				posts, err := agent.Generate(Platforms(), string(tone), topic)
				require.NoError(t, err)
				for _, post := range posts {
					assert.False(t, placeholderPattern.MatchString(post.Content), "unsubstituted placeholder in %q", post.Content)
				}
			}
		})
	}
}

func TestStripPlaceholders(t *testing.T) {
	assert.Equal(t, " rocks", stripPlaceholders("{benefit} rocks"))
	assert.Equal(t, " launch", stripPlaceholders("{{topic}topic} launch"))
	assert.Equal(t, "{other} stays", stripPlaceholders("{other} stays"))
	assert.Equal(t, "", stripPlaceholders("{benefit}{industry}"))
}

func TestGenerate_LinkedInCollapsesExclamations(t *testing.T) {
	tags := &stubHashtags{tags: []string{"#x"}}
	// industry=marketing, benefit=branding, template=0 (casual)
	agent := NewContentGeneratorAgent(tags, &sequencePicker{values: []int{3, 0, 0}})

	posts, err := agent.Generate([]string{"LinkedIn", "Facebook"}, "casual", "teams ship faster")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Hey everyone. 👋 Check out how teams ship faster. It's amazing how branding 🚀\n\n#x", posts[0].Content)
	assert.Equal(t, "Hey everyone! 👋 Check out how teams ship faster! It's amazing how branding 🚀\n\n#x", posts[1].Content)
}

func TestGenerate_SharesBaseTextAcrossPlatforms(t *testing.T) {
	tags := &stubHashtags{}
	agent := NewContentGeneratorAgent(tags, RandomPicker{})

	posts, err := agent.Generate([]string{"Twitter", "Facebook", "Instagram"}, "humorous", "")
	require.NoError(t, err)
	require.Len(t, posts, 3)

	base := strings.TrimSpace(posts[0].Content)
	for _, post := range posts[1:] {
		assert.Equal(t, base, strings.TrimSpace(post.Content))
	}
}

func TestGenerate_UnknownTone(t *testing.T) {
	agent := NewContentGeneratorAgent(&stubHashtags{}, nil)

	posts, err := agent.Generate([]string{"Twitter"}, "Inspirational", "")
	assert.ErrorIs(t, err, ErrUnknownTone)
	assert.Nil(t, posts)
	assert.True(t, IsValidationError(err))
}

func TestGenerate_UnknownPlatformFailsWholeCall(t *testing.T) {
	agent := NewContentGeneratorAgent(&stubHashtags{}, nil)

	posts, err := agent.Generate([]string{"Twitter", "MySpace", "LinkedIn"}, "casual", "")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	assert.Contains(t, err.Error(), "MySpace")
	assert.Nil(t, posts)
}

func TestGenerate_TruncatesToPlatformLimit(t *testing.T) {
	agent := NewContentGeneratorAgent(&stubHashtags{tags: []string{"#one", "#two"}}, &sequencePicker{values: []int{0}})
	topic := strings.Repeat("scaling content operations ", 20)

	posts, err := agent.Generate([]string{"Twitter", "LinkedIn"}, "professional", topic)
	require.NoError(t, err)

	twitter := posts[0].Content
	assert.Equal(t, 280, utf8.RuneCountInString(twitter))
	assert.True(t, strings.HasSuffix(twitter, "..."))

	linkedIn := posts[1].Content
	assert.Less(t, utf8.RuneCountInString(linkedIn), 1300)
	assert.False(t, strings.HasSuffix(linkedIn, "..."))
}

func TestGenerate_PropertiesHoldForEveryToneAndPlatform(t *testing.T) {
	hashtags, err := NewHashtagAgent(64)
	require.NoError(t, err)
	agent := NewContentGeneratorAgent(hashtags, RandomPicker{})

	for _, tone := range Tones() {
		for _, platform := range Platforms() {
			profile, err := ProfileFor(platform)
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				posts, err := agent.Generate([]string{platform}, string(tone), "")
				require.NoError(t, err)
				require.Len(t, posts, 1)

				content := posts[0].Content
				assert.False(t, placeholderPattern.MatchString(content), "unsubstituted placeholder in %q", content)
				length := utf8.RuneCountInString(content)
				assert.LessOrEqual(t, length, profile.MaxLength)
				if strings.HasSuffix(content, "...") && length == profile.MaxLength {
					continue
				}
				assert.Contains(t, content, "\n\n#")
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		max      int
		expected string
	}{
		{name: "short content untouched", content: "hello", max: 10, expected: "hello"},
		{name: "exact length untouched", content: "hello", max: 5, expected: "hello"},
		{name: "cut with ellipsis", content: "hello world", max: 8, expected: "hello..."},
		{name: "multibyte counted as characters", content: "🚀🚀🚀🚀🚀🚀", max: 5, expected: "🚀🚀..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.content, tt.max))
		})
	}
}
