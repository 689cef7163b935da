package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", errors.New("429 Rate Limit exceeded"), true},
		{"internal server error", errors.New("500 Internal Server Error"), true},
		{"bad gateway", errors.New("502 Bad Gateway"), true},
		{"timeout", errors.New("request timeout"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"deadline", errors.New("context deadline exceeded"), true},
		{"bad request", errors.New("400 Bad Request"), false},
		{"auth failure", errors.New("invalid api key"), false},
		{"api error 503", &openai.APIError{HTTPStatusCode: 503, Message: "overloaded"}, true},
		{"api error 429", &openai.APIError{HTTPStatusCode: 429, Message: "slow down"}, true},
		{"api error 401", &openai.APIError{HTTPStatusCode: 401, Message: "unauthorized"}, false},
		{"wrapped api error", fmt.Errorf("caption call: %w", &openai.APIError{HTTPStatusCode: 500}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRetry(tt.err); got != tt.want {
				t.Errorf("ShouldRetry(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
