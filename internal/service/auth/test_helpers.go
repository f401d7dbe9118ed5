package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// hashForTest hashes a plaintext password with the minimum bcrypt cost.
// Only for use in tests.
func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hashed)
}
