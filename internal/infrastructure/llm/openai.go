package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"TrendPoster/internal/config"
	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

// OpenAIClient implements ports.ContentGenerator backed by OpenAI-compatible
// APIs. Without an API key it runs in demo mode and produces template content.
type OpenAIClient struct {
	endpoint       string
	imagesEndpoint string
	model          string
	apiKey         string
	httpClient     *http.Client
}

var _ ports.ContentGenerator = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from configuration.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		endpoint:       cfg.Endpoint,
		imagesEndpoint: cfg.ImagesEndpoint,
		model:          cfg.Model,
		apiKey:         cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *OpenAIClient) demoMode() bool {
	return c.apiKey == "" || c.apiKey == "demo-mode"
}

type platformGuideline struct {
	maxLength int
	format    string
}

func guidelineFor(platform domain.Platform) platformGuideline {
	switch platform {
	case domain.PlatformTwitter:
		return platformGuideline{maxLength: 280, format: "short"}
	case domain.PlatformInstagram:
		return platformGuideline{maxLength: 2200, format: "medium"}
	case domain.PlatformYouTube:
		return platformGuideline{maxLength: 5000, format: "long"}
	case domain.PlatformThreads:
		return platformGuideline{maxLength: 500, format: "short"}
	default:
		return platformGuideline{maxLength: 500, format: "medium"}
	}
}

func toneStyle(tone domain.Tone) string {
	switch tone {
	case domain.ToneFunny:
		return "Use humor, wit, and playful language. Include emojis and make it entertaining."
	case domain.ToneInformative:
		return "Focus on facts, insights, and educational content. Be clear and helpful."
	default:
		return "Use formal, clear, and authoritative language. Be informative and credible."
	}
}

// GenerateContent asks the model for a structured post draft. The model is
// instructed to reply with JSON; a non-JSON reply degrades to the raw text
// plus extracted hashtags rather than failing.
func (c *OpenAIClient) GenerateContent(ctx context.Context, trend string, platform domain.Platform, tone domain.Tone, language string) (domain.GeneratedContent, error) {
	guideline := guidelineFor(platform)

	if c.demoMode() {
		return demoContent(trend, tone, guideline), nil
	}

	prompt := fmt.Sprintf(`Create a %s social media post for %s about: %q

Platform: %s
Tone: %s
Language: %s
Max length: %d characters

%s

Please provide:
1. Main post content (%d chars max)
2. A caption/description if needed
3. 5-10 relevant hashtags
4. A creative image generation prompt that would work well with this post

Format the response as JSON:
{"content": "main post text", "caption": "caption or description", "hashtags": ["tag1", "tag2"], "imagePrompt": "detailed image generation prompt"}`,
		tone, platform, trend, platform, tone, language, guideline.maxLength,
		toneStyle(tone), guideline.maxLength)

	reply, err := c.chat(ctx, "You are a social media content expert who creates engaging posts.", prompt, 0.8)
	if err != nil {
		return domain.GeneratedContent{}, fmt.Errorf("generate content: %w", err)
	}

	if raw := extractJSONObject(reply); raw != "" {
		var content domain.GeneratedContent
		if err := json.Unmarshal([]byte(raw), &content); err == nil && content.Content != "" {
			return content, nil
		}
	}

	return domain.GeneratedContent{
		Content:     truncateRunes(reply, guideline.maxLength),
		Hashtags:    extractHashtags(reply),
		ImagePrompt: trend + " - social media post visual",
	}, nil
}

// GenerateImage requests one image for the prompt and returns its URL.
// In demo mode a placeholder URL is returned instead.
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c.demoMode() {
		return "https://via.placeholder.com/1024x1024.png?text=" + urlQueryEscape(truncateRunes(prompt, 50)), nil
	}

	body, err := json.Marshal(map[string]any{
		"model":  "dall-e-3",
		"prompt": prompt,
		"n":      1,
		"size":   "1024x1024",
	})
	if err != nil {
		return "", fmt.Errorf("marshal image payload: %w", err)
	}

	var reply struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := c.post(ctx, c.imagesEndpoint, body, &reply); err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if len(reply.Data) == 0 {
		return "", nil
	}

	return reply.Data[0].URL, nil
}

func (c *OpenAIClient) chat(ctx context.Context, system, user string, temperature float64) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model":       c.model,
		"temperature": temperature,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	var reply struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := c.post(ctx, c.endpoint, body, &reply); err != nil {
		return "", err
	}
	if len(reply.Choices) == 0 || reply.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content generated")
	}

	return reply.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) post(ctx context.Context, endpoint string, body []byte, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("openai error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
