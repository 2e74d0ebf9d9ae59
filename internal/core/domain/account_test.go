package domain

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A@B.com", "a@b.com"},
		{"  ada@example.com  ", "ada@example.com"},
		{"ADA@EXAMPLE.COM", "ada@example.com"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDefaultName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ada@example.com", "ada"},
		{"no-at-sign", "no-at-sign"},
		{"@leading", "@leading"},
	}
	for _, tc := range cases {
		if got := DefaultName(tc.in); got != tc.want {
			t.Errorf("DefaultName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
