package auth

import "testing"

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()
	password := "correct-horse-battery"

	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == password {
		t.Error("hash must not equal the plaintext password")
	}

	if !hasher.Verify(password, hash) {
		t.Error("Verify() should accept the correct password")
	}
	if hasher.Verify("wrong-password", hash) {
		t.Error("Verify() should reject a wrong password")
	}
}

func TestPasswordHasher_DistinctHashes(t *testing.T) {
	hasher := NewPasswordHasher()

	// bcrypt salts per call, so two hashes of the same password differ
	hash1, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash1 == hash2 {
		t.Error("expected different hashes for the same password")
	}
	if !hasher.Verify("same-password", hash1) || !hasher.Verify("same-password", hash2) {
		t.Error("both hashes should verify the original password")
	}
}

func TestPasswordHasher_TooLong(t *testing.T) {
	hasher := NewPasswordHasher()

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	// bcrypt rejects inputs over 72 bytes
	if _, err := hasher.Hash(string(long)); err == nil {
		t.Error("Hash() should fail for passwords over 72 bytes")
	}
}
