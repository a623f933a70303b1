package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
)

func TestBearerAuth(t *testing.T) {
	cfg := &config.Config{
		StatsToken: "testtoken",
	}
	mw := NewMiddleware(cfg, nil)

	tests := []struct {
		name           string
		token          string
		header         string
		expectedStatus int
	}{
		{
			name:           "No Header",
			token:          "testtoken",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Token",
			token:          "testtoken",
			header:         "Bearer nope",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Scheme",
			token:          "testtoken",
			header:         "Basic testtoken",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Lowercase Scheme",
			token:          "testtoken",
			header:         "bearer testtoken",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Trailing Space",
			token:          "testtoken",
			header:         "Bearer testtoken ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unset Secret",
			token:          "",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Token",
			token:          "testtoken",
			header:         "Bearer testtoken",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw.statsToken = []byte(tt.token)
			req := httptest.NewRequest("GET", "/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rr := httptest.NewRecorder()
			handler := mw.BearerAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					status, tt.expectedStatus)
			}
		})
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	mw := NewMiddleware(&config.Config{}, nil)
	handler := mw.RequestLogger(func(*http.Request) string { return "/log" }, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("POST", "/log", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("request id not echoed: got %q", got)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/log", nil))
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("request id not generated")
	}
}
