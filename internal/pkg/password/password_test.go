package password

import "testing"

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical")
	}
	if !Verify("secret-password", first) || !Verify("secret-password", second) {
		t.Error("Verify() rejected a matching password")
	}
}

func TestHashIsNotPlaintext(t *testing.T) {
	hash, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "secret-password" {
		t.Error("Hash() returned the plaintext unchanged")
	}
}

func TestVerifyMismatch(t *testing.T) {
	hash, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if Verify("wrong-password", hash) {
		t.Error("Verify() accepted the wrong password")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if Verify("secret-password", "not-a-bcrypt-hash") {
		t.Error("Verify() accepted a malformed hash")
	}
	if Verify("secret-password", "") {
		t.Error("Verify() accepted an empty hash")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"", false},
		{"12345", false},
		{"123456", true},
		{"a-much-longer-password", true},
	}
	for _, tc := range cases {
		if got := Validate(tc.password); got != tc.want {
			t.Errorf("Validate(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}
