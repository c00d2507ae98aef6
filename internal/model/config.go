package model

import "time"

// Config holds the full runtime configuration.
type Config struct {
	Generative GenerativeConfig `yaml:"generative" mapstructure:"generative"`
	Maps       MapsConfig       `yaml:"maps" mapstructure:"maps"`
	Discovery  DiscoveryConfig  `yaml:"discovery" mapstructure:"discovery"`
}

// GenerativeConfig configures the generative content provider.
type GenerativeConfig struct {
	// Provider name: "gemini" (default) or "openai"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model for text generation and judging
	Model string `yaml:"model" mapstructure:"model"`

	// VisionModel for proof verification (defaults to Model)
	VisionModel string `yaml:"vision_model" mapstructure:"vision_model"`

	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout per request, seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// MapsConfig configures the places/geocoding client.
type MapsConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout per request, seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// RequestsPerSecond and Burst bound outbound call rate
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// DiscoveryConfig tunes place discovery and its caches.
type DiscoveryConfig struct {
	// SearchRadius in meters used by quest generation
	SearchRadius int `yaml:"search_radius" mapstructure:"search_radius"`

	// MaxCandidates collected before ranking
	MaxCandidates int `yaml:"max_candidates" mapstructure:"max_candidates"`

	// GeocodeCacheSize bounds the reverse-geocode LRU cache
	GeocodeCacheSize int `yaml:"geocode_cache_size" mapstructure:"geocode_cache_size"`

	// SearchCacheTTL bounds how long nearby-search responses are reused
	SearchCacheTTL time.Duration `yaml:"search_cache_ttl" mapstructure:"search_cache_ttl"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Generative: GenerativeConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			VisionModel: "gemini-2.5-pro",
			Timeout:     30,
			MaxTokens:   2048,
		},
		Maps: MapsConfig{
			BaseURL:           "https://maps.googleapis.com/maps/api",
			Timeout:           10,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Discovery: DiscoveryConfig{
			SearchRadius:     3000,
			MaxCandidates:    5,
			GeocodeCacheSize: 1000,
			SearchCacheTTL:   time.Hour,
		},
	}
}
