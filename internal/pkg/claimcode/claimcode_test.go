package claimcode

import (
	"strings"
	"testing"
)

func TestNewFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := New()
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		if len(code) != Length+1 {
			t.Fatalf("code %q has length %d, want %d", code, len(code), Length+1)
		}
		if code[Length/2] != '-' {
			t.Fatalf("code %q missing dash at position %d", code, Length/2)
		}
		for _, part := range strings.Split(code, "-") {
			for _, r := range part {
				if !strings.ContainsRune(Alphabet, r) {
					t.Fatalf("code %q contains %q outside the alphabet", code, r)
				}
			}
		}
	}
}

func TestNewVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := New()
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		seen[code] = true
	}
	// 40 bits of entropy: 50 draws colliding would point at a broken source.
	if len(seen) < 50 {
		t.Fatalf("expected 50 distinct codes, got %d", len(seen))
	}
}
