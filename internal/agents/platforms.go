package agents

import (
	"regexp"
	"strings"
)

// PlatformProfile holds the formatting rules for one social network
type PlatformProfile struct {
	Name         string
	MaxLength    int
	HashtagCount int
	Style        Tone // informational only
	Format       func(string) string
}

var exclamations = regexp.MustCompile(`!+`)

func trimOnly(content string) string {
	return strings.TrimSpace(content)
}

func formalize(content string) string {
	return strings.TrimSpace(exclamations.ReplaceAllString(content, "."))
}

var platformProfiles = map[string]PlatformProfile{
	"Instagram": {Name: "Instagram", MaxLength: 2200, HashtagCount: 25, Style: ToneCasual, Format: trimOnly},
	"LinkedIn":  {Name: "LinkedIn", MaxLength: 1300, HashtagCount: 3, Style: ToneProfessional, Format: formalize},
	"Twitter":   {Name: "Twitter", MaxLength: 280, HashtagCount: 2, Style: ToneCasual, Format: trimOnly},
	"Facebook":  {Name: "Facebook", MaxLength: 63206, HashtagCount: 2, Style: ToneCasual, Format: trimOnly},
}

// Platforms returns the supported platform names
func Platforms() []string {
	return []string{"Instagram", "LinkedIn", "Twitter", "Facebook"}
}

// ProfileFor looks up a platform profile by its exact name
func ProfileFor(platform string) (PlatformProfile, error) {
	profile, ok := platformProfiles[platform]
	if !ok {
		return PlatformProfile{}, &ValidationError{Err: ErrUnknownPlatform, Value: platform}
	}
	return profile, nil
}
