package passhash

import "testing"

func TestHashAndVerify(t *testing.T) {
	h, err := HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyPassword(h, "password123")
	if err != nil || !ok {
		t.Fatalf("verify failed: %v", err)
	}
	ok, err = VerifyPassword(h, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch")
	}
}

func TestVerifyRejectsNonPHCValues(t *testing.T) {
	if _, err := VerifyPassword("plaintextpw", "plaintextpw"); err == nil {
		t.Fatalf("expected error for non-PHC stored value")
	}
	if _, err := VerifyPassword("", "x"); err == nil {
		t.Fatalf("expected error for empty stored value")
	}
}

func TestIsEncoded(t *testing.T) {
	h, err := HashPassword("pw")
	if err != nil {
		t.Fatal(err)
	}
	if !IsEncoded(h) {
		t.Fatalf("hash not recognized: %s", h)
	}
	if IsEncoded("plaintextpw") {
		t.Fatalf("plaintext recognized as hash")
	}
}
