package auth

import "testing"

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(4) // low cost for test speed

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if salt == "" {
		t.Fatal("expected non-empty salt")
	}

	hash, err := h.Hash(salt, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if err := h.Compare(hash, salt, "correct horse battery staple"); err != nil {
		t.Fatalf("Compare with right password: %v", err)
	}
	if err := h.Compare(hash, salt, "wrong password"); err == nil {
		t.Fatal("expected mismatch for wrong password")
	}
	if err := h.Compare(hash, "other-salt", "correct horse battery staple"); err == nil {
		t.Fatal("expected mismatch for wrong salt")
	}
}

func TestBcryptHasher_SaltsDiffer(t *testing.T) {
	h := NewBcryptHasher(4)
	a, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	b, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct salts")
	}
}
