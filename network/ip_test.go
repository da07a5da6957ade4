package network

import (
	"net"
	"testing"
)

func TestLocalIP(t *testing.T) {
	ip := LocalIP()

	if ip == "" {
		t.Fatal("expected non-empty IP address")
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		t.Fatalf("expected valid IP address, got %q", ip)
	}
	if parsed.To4() == nil {
		t.Errorf("expected IPv4 address, got %q", ip)
	}
}
