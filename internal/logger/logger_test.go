package logger

import "testing"

func TestSanitizePayloadMasksSensitiveKeys(t *testing.T) {
	payload := map[string]any{
		"accountNumber": "111000112345678911",
		"pin":           "1234",
		"nested": map[string]any{
			"password": "hunter2",
			"amount":   "500",
		},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", SanitizePayload(payload))
	}

	if sanitized["pin"] != "******" {
		t.Fatalf("expected masked pin, got %v", sanitized["pin"])
	}
	if sanitized["accountNumber"] != "111000112345678911" {
		t.Fatalf("expected untouched account number, got %v", sanitized["accountNumber"])
	}

	nested, ok := sanitized["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", sanitized["nested"])
	}
	if nested["password"] != "******" {
		t.Fatalf("expected masked password, got %v", nested["password"])
	}
	if nested["amount"] != "500" {
		t.Fatalf("expected untouched amount, got %v", nested["amount"])
	}
}

func TestSanitizePayloadHandlesNonStructValues(t *testing.T) {
	if got := SanitizePayload("plain"); got != "plain" {
		t.Fatalf("expected pass-through for plain values, got %v", got)
	}
	if got := SanitizePayload(nil); got != nil {
		t.Fatalf("expected nil pass-through, got %v", got)
	}
}
