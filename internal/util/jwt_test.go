package util

import (
	"net/http"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(Identity{UserID: 42, Username: "alice"}, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	id, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if id.UserID != 42 || id.Username != "alice" {
		t.Errorf("identity = %+v, want {42 alice}", id)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(Identity{UserID: 1, Username: "bob"}, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(Identity{UserID: 1, Username: "bob"}, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("not.a.token", "secret"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
		{"Bearer a b", ""},
	}

	for _, c := range cases {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		if c.header != "" {
			r.Header.Set("Authorization", c.header)
		}
		if got := ExtractToken(r); got != c.want {
			t.Errorf("ExtractToken(%q) = %q, want %q", c.header, got, c.want)
		}
	}
}
