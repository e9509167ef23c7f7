package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"TrendPoster/internal/config"
	"TrendPoster/internal/domain"
)

func TestGenerateContentDemoModeDeterministic(t *testing.T) {
	t.Parallel()

	client := NewOpenAIClient(config.OpenAIConfig{APIKey: "demo-mode"})

	first, err := client.GenerateContent(context.Background(), "AI Revolution", domain.PlatformTwitter, domain.ToneFunny, "en")
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	second, err := client.GenerateContent(context.Background(), "AI Revolution", domain.PlatformTwitter, domain.ToneFunny, "en")
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("demo content should be deterministic: %+v vs %+v", first, second)
	}

	if !strings.Contains(first.Content, "AI Revolution") {
		t.Fatalf("content should mention the trend, got %q", first.Content)
	}
	if len(first.Hashtags) != 5 || first.Hashtags[0] != "#AIRevolution" {
		t.Fatalf("unexpected hashtags: %v", first.Hashtags)
	}
	if first.ImagePrompt == "" || first.Caption == "" {
		t.Fatalf("demo content incomplete: %+v", first)
	}
}

func TestGenerateContentDemoModeRespectsPlatformLimit(t *testing.T) {
	t.Parallel()

	client := NewOpenAIClient(config.OpenAIConfig{})

	long := strings.Repeat("trend ", 100)
	content, err := client.GenerateContent(context.Background(), long, domain.PlatformTwitter, domain.ToneInformative, "en")
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if n := len([]rune(content.Content)); n > 280 {
		t.Fatalf("twitter content exceeds 280 runes: %d", n)
	}
}

func TestGenerateContentParsesModelJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer real-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Model != "gpt-3.5-turbo" {
			t.Errorf("unexpected model %q", payload.Model)
		}

		reply := `Here is your post:
{"content": "Check out Go generics!", "caption": "New release", "hashtags": ["#golang", "#dev"], "imagePrompt": "gopher artwork"}`
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		Endpoint: server.URL,
		Model:    "gpt-3.5-turbo",
		APIKey:   "real-key",
	})

	content, err := client.GenerateContent(context.Background(), "Go generics", domain.PlatformTwitter, domain.ToneInformative, "en")
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if content.Content != "Check out Go generics!" {
		t.Fatalf("unexpected content %q", content.Content)
	}
	if content.Caption != "New release" {
		t.Fatalf("unexpected caption %q", content.Caption)
	}
	if !reflect.DeepEqual(content.Hashtags, []string{"#golang", "#dev"}) {
		t.Fatalf("unexpected hashtags %v", content.Hashtags)
	}
}

func TestGenerateContentFallsBackOnPlainText(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Big news about Go today! #golang #news"}},
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{Endpoint: server.URL, Model: "gpt-3.5-turbo", APIKey: "real-key"})

	content, err := client.GenerateContent(context.Background(), "Go", domain.PlatformTwitter, domain.ToneInformative, "en")
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if content.Content != "Big news about Go today! #golang #news" {
		t.Fatalf("unexpected content %q", content.Content)
	}
	if !reflect.DeepEqual(content.Hashtags, []string{"#golang", "#news"}) {
		t.Fatalf("unexpected hashtags %v", content.Hashtags)
	}
}

func TestGenerateContentUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{Endpoint: server.URL, Model: "gpt-3.5-turbo", APIKey: "real-key"})

	if _, err := client.GenerateContent(context.Background(), "Go", domain.PlatformTwitter, domain.ToneInformative, "en"); err == nil {
		t.Fatal("expected an error on upstream failure")
	}
}

func TestGenerateImageDemoMode(t *testing.T) {
	t.Parallel()

	client := NewOpenAIClient(config.OpenAIConfig{})

	url, err := client.GenerateImage(context.Background(), "a gopher on a beach")
	if err != nil {
		t.Fatalf("GenerateImage error: %v", err)
	}
	if !strings.HasPrefix(url, "https://via.placeholder.com/") {
		t.Fatalf("expected placeholder URL, got %q", url)
	}
}

func TestGenerateImageReturnsFirstURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://images.example.com/1.png"}},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{ImagesEndpoint: server.URL, APIKey: "real-key"})

	url, err := client.GenerateImage(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateImage error: %v", err)
	}
	if url != "https://images.example.com/1.png" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"prefix {\"a\":1} suffix", `{"a":1}`},
		{"no braces here", ""},
		{"}{", ""},
	}
	for _, tc := range cases {
		if got := extractJSONObject(tc.in); got != tc.want {
			t.Errorf("extractJSONObject(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractHashtagsCapsAtTen(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 15; i++ {
		b.WriteString("#tag ")
	}
	if got := extractHashtags(b.String()); len(got) != 10 {
		t.Fatalf("expected 10 hashtags, got %d", len(got))
	}
}
