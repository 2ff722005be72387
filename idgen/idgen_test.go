package idgen

import (
	"strings"
	"testing"
)

func TestUUIDv7Unique(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen()
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true
		if len(id) != 36 {
			t.Fatalf("id %q has length %d, want 36", id, len(id))
		}
	}
}

func TestUUIDv7Sortable(t *testing.T) {
	gen := UUIDv7()
	prev := gen()
	for i := 0; i < 100; i++ {
		next := gen()
		if next < prev {
			t.Fatalf("ids not monotonically sortable: %s after %s", next, prev)
		}
		prev = next
	}
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("run_", UUIDv7())
	id := gen()
	if !strings.HasPrefix(id, "run_") {
		t.Fatalf("id %q missing prefix", id)
	}
}

func TestNewUsesDefault(t *testing.T) {
	if New() == New() {
		t.Fatal("New returned duplicate ids")
	}
}
