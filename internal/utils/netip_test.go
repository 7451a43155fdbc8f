package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{" 10.0.0.0/8", "192.168.1.10", "2001:db8::/32", "not-an-ip", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.20.30.40", true},
		{"192.168.1.10", true},
		{"::ffff:192.168.1.10", true},
		{"192.168.1.11", false},
		{"2001:db8::1", true},
		{"2001:db9::1", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := m.Allow(tt.ip); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("expected empty matcher")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote only", "1.2.3.4:5678", nil, false, "1.2.3.4"},
		{"untrusted proxy headers ignored", "1.2.3.4:5678", map[string]string{"X-Forwarded-For": "9.9.9.9"}, false, "1.2.3.4"},
		{"cloudflare first", "127.0.0.1:1", map[string]string{"CF-Connecting-IP": "5.5.5.5", "X-Forwarded-For": "9.9.9.9"}, true, "5.5.5.5"},
		{"left-most forwarded", "127.0.0.1:1", map[string]string{"X-Forwarded-For": " 9.9.9.9 , 10.0.0.1"}, true, "9.9.9.9"},
		{"real ip", "127.0.0.1:1", map[string]string{"X-Real-IP": "8.8.8.8"}, true, "8.8.8.8"},
		{"ipv6 remote", "[2001:db8::1]:443", nil, false, "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
