package auth

import (
	"testing"
	"time"
)

func TestJWTHandlerGenerateValidate(t *testing.T) {
	h, err := MakeJWTHandler([]byte("supersecretkey123"), time.Minute)
	if err != nil {
		t.Fatalf("make handler err: %v", err)
	}

	token, err := h.Generate(7, "alice", "admin")
	if err != nil {
		t.Fatalf("generate token err: %v", err)
	}

	claims, err := h.Validate(token)
	if err != nil {
		t.Fatalf("validate token err: %v", err)
	}

	if claims.UserID != 7 {
		t.Fatalf("expected user id 7 got %d", claims.UserID)
	}

	if claims.Username != "alice" {
		t.Fatalf("expected alice got %s", claims.Username)
	}

	if claims.Role != "admin" {
		t.Fatalf("expected admin got %s", claims.Role)
	}
}

func TestJWTHandlerShortSecret(t *testing.T) {
	if _, err := MakeJWTHandler([]byte("short"), time.Minute); err == nil {
		t.Fatalf("expected error for short secret")
	}
}

func TestJWTHandlerValidateFail(t *testing.T) {
	h, err := MakeJWTHandler([]byte("anothersecretkey"), time.Minute)
	if err != nil {
		t.Fatalf("make handler err: %v", err)
	}

	if _, err = h.Validate("invalid.token"); err == nil {
		t.Fatalf("expected error for invalid token")
	}
}

func TestJWTHandlerRejectsForeignSignature(t *testing.T) {
	issuer, _ := MakeJWTHandler([]byte("issuersecretkey1"), time.Minute)
	verifier, _ := MakeJWTHandler([]byte("verifiersecretkey"), time.Minute)

	token, err := issuer.Generate(1, "bob", "user")
	if err != nil {
		t.Fatalf("generate token err: %v", err)
	}

	if _, err = verifier.Validate(token); err == nil {
		t.Fatalf("expected error for token signed with a different key")
	}
}

func TestJWTHandlerExpiredToken(t *testing.T) {
	h, err := MakeJWTHandler([]byte("supersecretkey123"), -time.Minute)
	if err != nil {
		t.Fatalf("make handler err: %v", err)
	}

	token, err := h.Generate(2, "carol", "user")
	if err != nil {
		t.Fatalf("generate token err: %v", err)
	}

	if _, err = h.Validate(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}
