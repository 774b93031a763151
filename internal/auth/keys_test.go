package auth

import (
	"strings"
	"testing"
)

func TestGenerateAndParseAPIKey(t *testing.T) {
	id, rawKey, hash, err := GenerateAPIKey("live")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(rawKey, "ro_live_") {
		t.Errorf("unexpected key prefix: %s", rawKey)
	}
	if len(id) != 12 {
		t.Errorf("expected 12-char id, got %d", len(id))
	}

	env, parsedID, secret, ok := ParseAPIKey(rawKey)
	if !ok {
		t.Fatal("expected key to parse")
	}
	if env != "live" || parsedID != id {
		t.Errorf("parse mismatch: env=%s id=%s", env, parsedID)
	}
	if !VerifySecret(secret, hash) {
		t.Error("expected secret to verify against its hash")
	}
	if VerifySecret("wrong", hash) {
		t.Error("expected wrong secret to fail verification")
	}
}

func TestParseAPIKey_Invalid(t *testing.T) {
	for _, raw := range []string{"", "ro_live_short", "sc_live_abc_def", "ro-live-abc-def"} {
		if _, _, _, ok := ParseAPIKey(raw); ok {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}
