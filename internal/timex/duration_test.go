package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var payload struct {
		TTL Duration `json:"ttl"`
	}

	if err := json.Unmarshal([]byte(`{"ttl":"10m"}`), &payload); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if payload.TTL.Duration != 10*time.Minute {
		t.Errorf("got %v, want 10m", payload.TTL.Duration)
	}

	if err := json.Unmarshal([]byte(`{"ttl":1000000000}`), &payload); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if payload.TTL.Duration != time.Second {
		t.Errorf("got %v, want 1s", payload.TTL.Duration)
	}

	if err := json.Unmarshal([]byte(`{"ttl":"bogus"}`), &payload); err == nil {
		t.Error("expected error for invalid duration string")
	}
}
