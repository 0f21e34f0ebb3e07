package uuid

import (
	"testing"
	"time"
)

func TestNewAtEmbedsTimestamp(t *testing.T) {
	at := time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC)
	id := NewAt(at)

	if !IsValid(id) {
		t.Fatalf("expected valid uuid, got %q", id)
	}
	got, ok := Timestamp(id)
	if !ok {
		t.Fatalf("expected v7 uuid, got %q", id)
	}
	if !got.Equal(at) {
		t.Errorf("timestamp = %s, want %s", got, at)
	}
}

func TestNewIsTimeOrdered(t *testing.T) {
	earlier := NewAt(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	later := NewAt(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))

	if !(earlier < later) {
		t.Errorf("expected %s < %s", earlier, later)
	}
}

func TestTimestampRejectsOtherVersions(t *testing.T) {
	if _, ok := Timestamp("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); ok {
		t.Error("expected v1 uuid to be rejected")
	}
	if _, ok := Timestamp("not-a-uuid"); ok {
		t.Error("expected garbage to be rejected")
	}
}
