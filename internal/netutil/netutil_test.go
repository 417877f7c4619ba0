package netutil

import "testing"

func TestNormalizeIP(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare ipv4", "192.0.2.4", "192.0.2.4", true},
		{"ipv4 with port", "192.0.2.4:1234", "192.0.2.4", true},
		{"bare ipv6", "2001:db8::1", "2001:db8::1", true},
		{"bracketed ipv6 with port", "[2001:db8::1]:443", "2001:db8::1", true},
		{"ipv6 zone stripped", "fe80::1%eth0", "fe80::1", true},
		{"whitespace trimmed", "  192.0.2.4  ", "192.0.2.4", true},
		{"empty", "", "", false},
		{"hostname", "example.com", "example.com", false},
		{"hostname with port", "example.com:80", "example.com:80", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeIP(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("NormalizeIP(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}
