package token

import (
	"strings"
	"testing"
)

const testSecret = "test-signing-secret"

func TestIssueAndExtract(t *testing.T) {
	svc := NewService(testSecret, 3600000)

	tok, err := svc.Issue("alice", "ROLE_ADMIN")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if tok == "" {
		t.Fatal("Issue() returned empty token")
	}

	username, err := svc.ExtractUsername(tok)
	if err != nil {
		t.Fatalf("ExtractUsername() error = %v", err)
	}
	if username != "alice" {
		t.Errorf("ExtractUsername() = %q, want %q", username, "alice")
	}
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	svc := NewService(testSecret, 3600000)

	first, err := svc.Issue("alice", "ROLE_USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	second, err := svc.Issue("alice", "ROLE_USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if first == second {
		t.Error("two tokens issued for the same subject are identical")
	}
}

func TestExtractUsernameExpired(t *testing.T) {
	svc := NewService(testSecret, -1000)

	tok, err := svc.Issue("alice", "ROLE_USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	username, err := svc.ExtractUsername(tok)
	if err != nil {
		t.Fatalf("ExtractUsername() on expired token error = %v, want nil", err)
	}
	if username != "" {
		t.Errorf("ExtractUsername() on expired token = %q, want empty", username)
	}
}

func TestExtractUsernameTampered(t *testing.T) {
	svc := NewService(testSecret, 3600000)

	tok, err := svc.Issue("alice", "ROLE_USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// flip the last character of the signature segment
	raw := []byte(tok)
	last := len(raw) - 1
	if raw[last] == 'A' {
		raw[last] = 'B'
	} else {
		raw[last] = 'A'
	}

	if _, err := svc.ExtractUsername(string(raw)); err == nil {
		t.Error("ExtractUsername() accepted a tampered token")
	}
}

func TestExtractUsernameWrongSecret(t *testing.T) {
	svc := NewService(testSecret, 3600000)
	other := NewService("a-different-secret", 3600000)

	tok, err := svc.Issue("alice", "ROLE_USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := other.ExtractUsername(tok); err == nil {
		t.Error("ExtractUsername() accepted a token signed with another secret")
	}
}

func TestExtractUsernameMalformed(t *testing.T) {
	svc := NewService(testSecret, 3600000)

	for _, tok := range []string{"", "not.a.jwt", "garbage", strings.Repeat("x", 512)} {
		if _, err := svc.ExtractUsername(tok); err == nil {
			t.Errorf("ExtractUsername(%q) accepted a malformed token", tok)
		}
	}
}

func TestIsValid(t *testing.T) {
	svc := NewService(testSecret, 3600000)

	tok, err := svc.Issue("alice", "ROLE_USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// validation has no side effects, repeated checks agree
	for i := 0; i < 3; i++ {
		if !svc.IsValid(tok, "alice") {
			t.Fatalf("IsValid() = false on check %d, want true", i+1)
		}
	}

	if svc.IsValid(tok, "bob") {
		t.Error("IsValid() = true for the wrong subject")
	}
	if svc.IsValid("not.a.jwt", "alice") {
		t.Error("IsValid() = true for a malformed token")
	}
}

func TestIsValidExpired(t *testing.T) {
	svc := NewService(testSecret, -1000)

	tok, err := svc.Issue("alice", "ROLE_USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if svc.IsValid(tok, "alice") {
			t.Fatalf("IsValid() = true for an expired token on check %d", i+1)
		}
	}
}
