package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherAndVerifier(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hashed, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hashed, "stored hash must never equal the plaintext")

	assert.NoError(t, verifier.Compare(hashed, "secret"))
	assert.Error(t, verifier.Compare(hashed, "wrong"))
	assert.Error(t, verifier.Compare("not-a-hash", "secret"))
}

func TestNewBcryptHasherCostFallback(t *testing.T) {
	tests := []struct {
		name         string
		cost         int
		expectedCost int
	}{
		{name: "valid_cost", cost: 12, expectedCost: 12},
		{name: "zero_cost_uses_default", cost: 0, expectedCost: bcrypt.DefaultCost},
		{name: "cost_too_high_uses_default", cost: 32, expectedCost: bcrypt.DefaultCost},
		{name: "negative_cost_uses_default", cost: -1, expectedCost: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cost)
			assert.Equal(t, tt.expectedCost, hasher.cost)
		})
	}
}

func TestHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret")
	require.NoError(t, err)
	second, err := hasher.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ")
}
