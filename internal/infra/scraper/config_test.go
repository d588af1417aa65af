package scraper

import (
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "empty user agent", mutate: func(c *Config) { c.UserAgent = "" }, wantErr: true},
		{name: "tiny body limit", mutate: func(c *Config) { c.MaxBodySize = 10 }, wantErr: true},
		{name: "unnamed breaker", mutate: func(c *Config) { c.Breaker.Name = "" }, wantErr: true},
		{name: "short timeout", mutate: func(c *Config) { c.Timeout = time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHostOf(t *testing.T) {
	cases := map[string]string{
		"https://udn.com/news/rssfeed/7225":   "udn.com",
		"https://News.Google.com/rss/search": "news.google.com",
		"not a url":                          "invalid",
	}
	for in, want := range cases {
		if got := hostOf(in); got != want {
			t.Errorf("hostOf(%q) = %q, want %q", in, got, want)
		}
	}
}
