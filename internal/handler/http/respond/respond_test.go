package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const jsonContentType = "application/json; charset=utf-8"

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{
			name:         "map",
			code:         http.StatusOK,
			data:         map[string]string{"status": "ok"},
			expectedBody: `{"status":"ok"}`,
		},
		{
			name:         "struct keeps CJK unescaped",
			code:         http.StatusOK,
			data:         struct{ Name string }{Name: "中央社"},
			expectedBody: `{"Name":"中央社"}`,
		},
		{
			name:         "nil body",
			code:         http.StatusNoContent,
			data:         nil,
			expectedBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			if w.Code != tt.code {
				t.Errorf("Code = %v, want %v", w.Code, tt.code)
			}
			if ct := w.Header().Get("Content-Type"); ct != jsonContentType {
				t.Errorf("Content-Type = %v, want %v", ct, jsonContentType)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tt.expectedBody {
				t.Errorf("Body = %v, want %v", body, tt.expectedBody)
			}
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))

	if w.Code != http.StatusOK {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusMethodNotAllowed)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["error"] != "method not allowed" {
		t.Errorf("error = %q, want %q", body["error"], "method not allowed")
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		err         error
		expectedMsg string
	}{
		{
			name:        "invalid column is shown",
			code:        http.StatusBadRequest,
			err:         errors.New(`column: invalid value "right"`),
			expectedMsg: `column: invalid value "right"`,
		},
		{
			name:        "rate limit is shown",
			code:        http.StatusTooManyRequests,
			err:         errors.New("rate limit exceeded"),
			expectedMsg: "rate limit exceeded",
		},
		{
			name:        "unknown client error is hidden",
			code:        http.StatusBadRequest,
			err:         errors.New("dial tcp 10.0.0.3:443: connection refused"),
			expectedMsg: "internal server error",
		},
		{
			name:        "5xx is always hidden",
			code:        http.StatusInternalServerError,
			err:         errors.New("required field missing"),
			expectedMsg: "internal server error",
		},
		{
			name:        "upstream credentials are hidden",
			code:        http.StatusBadGateway,
			err:         errors.New("GET https://bot:pw@feeds.example.com failed"),
			expectedMsg: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			if w.Code != tt.code {
				t.Errorf("Code = %v, want %v", w.Code, tt.code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body["error"] != tt.expectedMsg {
				t.Errorf("Error message = %v, want %v", body["error"], tt.expectedMsg)
			}
		})
	}
}

func TestSafeError_NilWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadRequest, nil)

	if w.Body.Len() != 0 {
		t.Errorf("Expected no body for nil error, but got: %v", w.Body.String())
	}
}

func TestCacheFor(t *testing.T) {
	w := httptest.NewRecorder()
	CacheFor(w, 5*time.Minute, 5*time.Minute)

	want := "s-maxage=300, stale-while-revalidate=300"
	if got := w.Header().Get("Cache-Control"); got != want {
		t.Errorf("Cache-Control = %q, want %q", got, want)
	}
}

func TestNoStore(t *testing.T) {
	w := httptest.NewRecorder()
	NoStore(w)

	if got := w.Header().Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}
