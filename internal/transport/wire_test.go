package transport

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEncodeChat_BroadcastOmitsRecipient(t *testing.T) {
	payload, err := EncodeChat("hello", "")
	if err != nil {
		t.Fatalf("EncodeChat: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if raw["type"] != "chat" || raw["message"] != "hello" {
		t.Fatalf("envelope fields unexpected: %v", raw)
	}
	if _, present := raw["recipient"]; present {
		t.Fatalf("broadcast envelope must omit recipient: %v", raw)
	}
}

func TestEncodeChat_DirectedCarriesRecipient(t *testing.T) {
	payload, err := EncodeChat("psst", "carol")
	if err != nil {
		t.Fatalf("EncodeChat: %v", err)
	}

	env, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Kind() != KindChat || env.Message != "psst" || env.Recipient != "carol" {
		t.Fatalf("round trip unexpected: %+v", env)
	}
}

func TestDecode_MalformedPayload(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestDecode_ForeignTypeIsUnrecognizedNotError(t *testing.T) {
	env, err := Decode([]byte(`{"type":"reaction","message":"👍"}`))
	if err != nil {
		t.Fatalf("well-formed foreign payload must not error: %v", err)
	}
	if env.Kind() != KindUnrecognized {
		t.Fatalf("Kind = %q; want unrecognized", env.Kind())
	}
}

func TestDecode_MissingTypeIsUnrecognized(t *testing.T) {
	env, err := Decode([]byte(`{"message":"hi"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Kind() != KindUnrecognized {
		t.Fatalf("envelope without type tag must be unrecognized, got %q", env.Kind())
	}
}
