package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "TRENDPOSTER_CONFIG"

	databaseDSNEnv = "DATABASE_DSN"
	serverPortEnv  = "PORT"
	openAIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv = "OPENAI_MODEL"

	facebookTokenEnv      = "FACEBOOK_ACCESS_TOKEN"
	instagramTokenEnv     = "INSTAGRAM_ACCESS_TOKEN"
	twitterAPIKeyEnv      = "TWITTER_API_KEY"
	twitterAPISecretEnv   = "TWITTER_API_SECRET"
	twitterTokenEnv       = "TWITTER_ACCESS_TOKEN"
	twitterSecretEnv      = "TWITTER_ACCESS_SECRET"
	threadsTokenEnv       = "THREADS_ACCESS_TOKEN"
	youtubeAPIKeyEnv      = "YOUTUBE_API_KEY"
	pinterestTokenEnv     = "PINTEREST_ACCESS_TOKEN"
	twitterTrendsKeyEnv   = "TWITTER_TRENDS_API_KEY"
	youtubeTrendingKeyEnv = "YOUTUBE_TRENDING_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Trends    TrendsConfig    `yaml:"trends"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Platforms PlatformConfig  `yaml:"platforms"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ServerConfig defines HTTP listener ports for the API and the dashboard.
type ServerConfig struct {
	Port          string `yaml:"port"`
	DashboardPort string `yaml:"dashboardPort"`
}

// SchedulerConfig defines how often due scheduled posts are dispatched.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// TrendsConfig groups settings for trend providers.
type TrendsConfig struct {
	Region          string        `yaml:"region"`
	Subreddit       string        `yaml:"subreddit"`
	Limit           int           `yaml:"limit"`
	Sources         []string      `yaml:"sources"`
	ProviderTimeout time.Duration `yaml:"providerTimeout"`
	UserAgent       string        `yaml:"userAgent"`
	TwitterAPIKey   string        `yaml:"twitterApiKey"`
	YouTubeAPIKey   string        `yaml:"youtubeApiKey"`
}

// OpenAIConfig defines how to contact the content-generation API.
type OpenAIConfig struct {
	Endpoint       string `yaml:"endpoint"`
	ImagesEndpoint string `yaml:"imagesEndpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
}

// PlatformConfig carries per-platform publishing secrets.
// Values normally arrive via environment, not the YAML file.
type PlatformConfig struct {
	FacebookAccessToken  string `yaml:"facebookAccessToken"`
	InstagramAccessToken string `yaml:"instagramAccessToken"`
	TwitterAPIKey        string `yaml:"twitterApiKey"`
	TwitterAPISecret     string `yaml:"twitterApiSecret"`
	TwitterAccessToken   string `yaml:"twitterAccessToken"`
	TwitterAccessSecret  string `yaml:"twitterAccessSecret"`
	ThreadsAccessToken   string `yaml:"threadsAccessToken"`
	YouTubeAPIKey        string `yaml:"youtubeApiKey"`
	PinterestAccessToken string `yaml:"pinterestAccessToken"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Trends.Sources) == 0 {
		cfg.Trends.Sources = defaultConfig().Trends.Sources
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(serverPortEnv); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(facebookTokenEnv); v != "" {
		c.Platforms.FacebookAccessToken = v
	}
	if v := os.Getenv(instagramTokenEnv); v != "" {
		c.Platforms.InstagramAccessToken = v
	}
	if v := os.Getenv(twitterAPIKeyEnv); v != "" {
		c.Platforms.TwitterAPIKey = v
	}
	if v := os.Getenv(twitterAPISecretEnv); v != "" {
		c.Platforms.TwitterAPISecret = v
	}
	if v := os.Getenv(twitterTokenEnv); v != "" {
		c.Platforms.TwitterAccessToken = v
	}
	if v := os.Getenv(twitterSecretEnv); v != "" {
		c.Platforms.TwitterAccessSecret = v
	}
	if v := os.Getenv(threadsTokenEnv); v != "" {
		c.Platforms.ThreadsAccessToken = v
	}
	if v := os.Getenv(youtubeAPIKeyEnv); v != "" {
		c.Platforms.YouTubeAPIKey = v
	}
	if v := os.Getenv(pinterestTokenEnv); v != "" {
		c.Platforms.PinterestAccessToken = v
	}
	if v := os.Getenv(twitterTrendsKeyEnv); v != "" {
		c.Trends.TwitterAPIKey = v
	}
	if v := os.Getenv(youtubeTrendingKeyEnv); v != "" {
		c.Trends.YouTubeAPIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Server.Port != "" {
		base.Server.Port = override.Server.Port
	}
	if override.Server.DashboardPort != "" {
		base.Server.DashboardPort = override.Server.DashboardPort
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	if override.Trends.Region != "" {
		base.Trends.Region = override.Trends.Region
	}
	if override.Trends.Subreddit != "" {
		base.Trends.Subreddit = override.Trends.Subreddit
	}
	if override.Trends.Limit > 0 {
		base.Trends.Limit = override.Trends.Limit
	}
	if len(override.Trends.Sources) > 0 {
		base.Trends.Sources = override.Trends.Sources
	}
	if override.Trends.ProviderTimeout > 0 {
		base.Trends.ProviderTimeout = override.Trends.ProviderTimeout
	}
	if override.Trends.UserAgent != "" {
		base.Trends.UserAgent = override.Trends.UserAgent
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.ImagesEndpoint != "" {
		base.OpenAI.ImagesEndpoint = override.OpenAI.ImagesEndpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database:  DatabaseConfig{DSN: ""},
		Server:    ServerConfig{Port: "8080", DashboardPort: "8081"},
		Scheduler: SchedulerConfig{Interval: time.Minute},
		Trends: TrendsConfig{
			Region:          "US",
			Subreddit:       "all",
			Limit:           10,
			Sources:         []string{"google", "reddit", "hackernews", "twitter", "youtube"},
			ProviderTimeout: 15 * time.Second,
			UserAgent:       "TrendPoster/1.0",
		},
		OpenAI: OpenAIConfig{
			Endpoint:       "https://api.openai.com/v1/chat/completions",
			ImagesEndpoint: "https://api.openai.com/v1/images/generations",
			Model:          "gpt-3.5-turbo",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
