package auth

import "testing"

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health?format=json", true},
		{"/health/", true},
		{"/healthcheck", false},
		{"/ready", true},
		{"/live", true},
		{"/metrics", true},
		{"/auth/register", true},
		{"/auth/token", true},
		{"/auth/password-reset", true},
		{"/auth/password-reset/confirm", true},
		{"/articles", false},
		{"/subscriptions", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsPublicEndpoint(tt.path); got != tt.want {
				t.Errorf("IsPublicEndpoint(%q)=%v want %v", tt.path, got, tt.want)
			}
		})
	}
}
