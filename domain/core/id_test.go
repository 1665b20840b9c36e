package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseSnapshotID tests snapshot ID parsing
func TestParseSnapshotID(t *testing.T) {
	tests := []struct {
		input    string
		expected SnapshotID
		hasError bool
	}{
		{"valid-id", SnapshotID("valid-id"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseSnapshotID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestComputeFilterHash(t *testing.T) {
	snap := SnapshotID("snap-1")

	a := ComputeFilterHash(snap, map[string]interface{}{
		"start":     "2024-01-01",
		"contracts": []string{"Monthly", "Annual"},
	})
	b := ComputeFilterHash(snap, map[string]interface{}{
		"contracts": []string{"Annual", "Monthly"},
		"start":     "2024-01-01",
	})
	if a != b {
		t.Errorf("Expected order-independent hash, got %s and %s", a, b)
	}

	c := ComputeFilterHash(SnapshotID("snap-2"), map[string]interface{}{
		"start":     "2024-01-01",
		"contracts": []string{"Monthly", "Annual"},
	})
	if a == c {
		t.Error("Expected different snapshots to hash differently")
	}

	d := ComputeFilterHash(snap, map[string]interface{}{
		"start":     "2024-01-02",
		"contracts": []string{"Monthly", "Annual"},
	})
	if a == d {
		t.Error("Expected different filter values to hash differently")
	}
}
