package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-trends/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for the arXiv feed client.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the arXiv API query endpoint.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// MinInterval is the minimum delay between consecutive API requests.
	// arXiv asks clients to wait 3 seconds between calls.
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval" mapstructure:"min_interval"`

	// MaxRetries is the number of retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// ContactEmail, when set, is appended to the User-Agent as arXiv requests.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty" mapstructure:"contact_email"`
}

// CacheConfig holds settings for the on-disk feed cache.
type CacheConfig struct {
	// Dir is the directory holding the cache database.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// TTL is how long a cached feed is served before it is fetched again.
	// Zero disables cache reads; fetches are still recorded.
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`

	// Disabled bypasses the cache entirely.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// WordCloudConfig holds the render options handed to the external
// word-cloud renderer alongside the word-frequency text.
type WordCloudConfig struct {
	BackgroundColor string `json:"background_color" yaml:"background_color" mapstructure:"background_color"`
	Width           int    `json:"width" yaml:"width" mapstructure:"width"`
	Height          int    `json:"height" yaml:"height" mapstructure:"height"`
}

// Config groups all settings read from the configuration file.
type Config struct {
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Cache     CacheConfig     `json:"cache" yaml:"cache" mapstructure:"cache"`
	WordCloud WordCloudConfig `json:"wordcloud" yaml:"wordcloud" mapstructure:"wordcloud"`
}

// DefaultConfig returns the settings used when no configuration file
// overrides them.
func DefaultConfig() Config {
	return Config{
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   60 * time.Second,
				UserAgent: "arxiv-trends/0.1",
			},
			Endpoint:    "https://export.arxiv.org/api/query",
			MinInterval: 3 * time.Second,
			MaxRetries:  5,
		},
		Cache: CacheConfig{
			Dir: ".arxiv-trends",
			TTL: 24 * time.Hour,
		},
		WordCloud: WordCloudConfig{
			BackgroundColor: "white",
			Width:           800,
			Height:          600,
		},
	}
}
