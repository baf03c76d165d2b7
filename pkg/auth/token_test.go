package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/chethan81/stockmonitor-backend/pkg/config"
	"github.com/chethan81/stockmonitor-backend/pkg/enums"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "stockmonitor",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()

	payload := AccessTokenPayload{
		UserID:   7,
		Username: "admin",
		Role:     enums.RoleAdmin,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != 7 {
		t.Fatalf("expected user_id 7, got %d", claims.UserID)
	}
	if claims.Username != "admin" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if claims.Role != enums.RoleAdmin {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if !claims.ExpiresAt.Time.After(now) {
		t.Fatalf("expiry not in the future: %v", claims.ExpiresAt.Time)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   1,
		Username: "admin",
		Role:     enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected parse with wrong secret to fail")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testConfig()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   1,
		Username: "staff1",
		Role:     enums.RoleStaff,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected parse with wrong issuer to fail")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testConfig()
	past := time.Now().Add(-2 * time.Hour)

	token, err := MintAccessToken(cfg, past, AccessTokenPayload{
		UserID:   1,
		Username: "admin",
		Role:     enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	cfg := testConfig()

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Username: "", Role: enums.RoleAdmin}); err == nil {
		t.Fatal("expected missing username to fail")
	}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Username: "admin", Role: "owner"}); err == nil {
		t.Fatal("expected invalid role to fail")
	}

	noSecret := cfg
	noSecret.Secret = ""
	if _, err := MintAccessToken(noSecret, time.Now(), AccessTokenPayload{Username: "admin", Role: enums.RoleAdmin}); err == nil {
		t.Fatal("expected missing secret to fail")
	}
}
