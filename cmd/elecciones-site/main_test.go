package main

import (
	"os"
	"testing"

	"github.com/kevinburke/elecciones/selection"
)

func TestParseFilterMode(t *testing.T) {
	tests := []struct {
		in   string
		want selection.FilterMode
		err  bool
	}{
		{"", selection.FilterByName, false},
		{"name", selection.FilterByName, false},
		{"code", selection.FilterByCode, false},
		{"NAME", 0, true},
	}
	for _, tt := range tests {
		got, err := parseFilterMode(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("parseFilterMode(%q): got err %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFilterMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLockUnlock(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "lock")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := lock(f); err != nil {
		t.Fatal(err)
	}
	if err := unlock(f); err != nil {
		t.Fatal(err)
	}
}
