package middleware

import (
	"testing"
)

func TestLoadCORSConfig_Defaults(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("CORS_MAX_AGE", "")

	cfg, err := LoadCORSConfig()
	if err != nil {
		t.Fatalf("LoadCORSConfig() error = %v", err)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.MaxAge != 86400 {
		t.Errorf("MaxAge = %d, want 86400", cfg.MaxAge)
	}
}

func TestLoadCORSConfig_ExplicitOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://desk.example.com, http://localhost:3000")

	cfg, err := LoadCORSConfig()
	if err != nil {
		t.Fatalf("LoadCORSConfig() error = %v", err)
	}
	if !cfg.IsAllowed("http://localhost:3000") {
		t.Error("localhost origin should be allowed")
	}
	if cfg.IsAllowed("https://other.example.com") {
		t.Error("unlisted origin should be rejected")
	}
}

func TestCORSConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		wantErr bool
	}{
		{name: "wildcard", origins: []string{"*"}},
		{name: "bare origin", origins: []string{"https://desk.example.com"}},
		{name: "empty", origins: nil, wantErr: true},
		{name: "path", origins: []string{"https://desk.example.com/app"}, wantErr: true},
		{name: "trailing slash", origins: []string{"https://desk.example.com/"}, wantErr: true},
		{name: "ftp", origins: []string{"ftp://desk.example.com"}, wantErr: true},
		{name: "mixed wildcard", origins: []string{"*", "https://desk.example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = tt.origins
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
