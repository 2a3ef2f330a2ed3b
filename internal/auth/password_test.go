package auth

import "testing"

func TestHashIsSaltedPerCall(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(4) // low cost keeps the test fast

	first, err := h.Hash("SecurePass123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := h.Hash("SecurePass123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ (fresh salt)")
	}

	if !h.Check("SecurePass123", first) {
		t.Fatalf("Check must accept the original password")
	}
	if !h.Check("SecurePass123", second) {
		t.Fatalf("Check must accept the original password for the second hash")
	}
}

func TestCheckRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(4)
	hash, err := h.Hash("SecurePass123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h.Check("securepass123", hash) {
		t.Fatalf("Check must reject a different password")
	}
}

func TestCheckRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(4)
	for _, bad := range []string{"", "not-a-bcrypt-hash", "$1$legacy$abcdef"} {
		if h.Check("anything", bad) {
			t.Fatalf("Check must return false for malformed hash %q", bad)
		}
	}
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(99)
	if _, err := h.Hash("SecurePass123"); err != nil {
		t.Fatalf("out-of-range cost should fall back to the default: %v", err)
	}
}
