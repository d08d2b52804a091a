package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3.4:8080", "1.2.3.4"},
		{"1.2.3.4", "1.2.3.4"},
		{"[::1]:8080", "::1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseHostNoPort(tt.in); got != tt.want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstForwardedFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3.4, 5.6.7.8", "1.2.3.4"},
		{" 1.2.3.4 ", "1.2.3.4"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FirstForwardedFor(tt.in); got != tt.want {
			t.Errorf("FirstForwardedFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "9.9.9.9:1234"
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")

	if got := ClientIP(r, false); got != "9.9.9.9" {
		t.Errorf("ClientIP(trustProxy=false) = %q, want 9.9.9.9", got)
	}
	if got := ClientIP(r, true); got != "1.2.3.4" {
		t.Errorf("ClientIP(trustProxy=true) = %q, want 1.2.3.4", got)
	}
}
