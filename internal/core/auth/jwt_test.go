package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "toodoo", TTL: time.Hour}

	token, err := j.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := j.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UID != "user-42" {
		t.Errorf("uid = %q, want user-42", claims.UID)
	}
	if claims.Issuer != "toodoo" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestParseWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "toodoo", TTL: time.Hour}
	token, err := j.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}

	other := &JWTer{Secret: []byte("different"), Issuer: "toodoo", TTL: time.Hour}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestParseWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	token, err := j.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}

	ours := &JWTer{Secret: []byte("test-secret"), Issuer: "toodoo", TTL: time.Hour}
	if _, err := ours.Parse(token); err == nil {
		t.Fatal("token with foreign issuer must not parse")
	}
}

func TestParseExpired(t *testing.T) {
	// TTL past the parse leeway so the token is firmly expired.
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "toodoo", TTL: -2 * time.Minute}
	token, err := j.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := j.Parse(token); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestParseGarbage(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "toodoo", TTL: time.Hour}
	if _, err := j.Parse("not.a.jwt"); err == nil {
		t.Fatal("garbage must not parse")
	}
}
