package llm

import (
	"net/url"
	"regexp"
	"strings"

	"TrendPoster/internal/domain"
)

var hashtagExpr = regexp.MustCompile(`#\w+`)

var demoTemplates = map[domain.Tone][]string{
	domain.ToneFunny: {
		"Just discovered %s and my mind is blown!",
		"%s is trending and I'm here for it!",
		"Breaking: %s is taking over the internet!",
	},
	domain.ToneProfessional: {
		"Exploring the latest insights on %s. Key takeaways for professionals.",
		"%s: What this means for businesses and industry leaders.",
		"Deep dive into %s - trends and implications.",
	},
	domain.ToneInformative: {
		"Everything you need to know about %s",
		"%s explained: A comprehensive overview.",
		"Understanding %s: Facts and insights.",
	},
}

// demoContent produces deterministic template content when no API key is
// configured. The template is picked from the trend text so the same trend
// always yields the same draft.
func demoContent(trend string, tone domain.Tone, guideline platformGuideline) domain.GeneratedContent {
	templates, ok := demoTemplates[tone]
	if !ok {
		templates = demoTemplates[domain.ToneProfessional]
	}
	template := templates[len(trend)%len(templates)]
	content := strings.Replace(template, "%s", trend, 1)

	hashtags := []string{
		"#" + strings.ReplaceAll(trend, " ", ""),
		"#SocialMedia",
		"#Trending",
		"#Content",
		"#Digital",
	}

	return domain.GeneratedContent{
		Content:     truncateRunes(content, guideline.maxLength),
		Caption:     "Join the conversation about " + trend,
		Hashtags:    hashtags,
		ImagePrompt: "Professional social media graphic about " + trend + ", modern design, vibrant colors",
	}
}

// extractJSONObject pulls the first top-level {...} block out of a model
// reply, tolerating fenced or chatty wrappers.
func extractJSONObject(reply string) string {
	start := strings.IndexRune(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end <= start {
		return ""
	}
	return reply[start : end+1]
}

func extractHashtags(text string) []string {
	matches := hashtagExpr.FindAllString(text, 10)
	return matches
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func urlQueryEscape(s string) string {
	return url.QueryEscape(s)
}
