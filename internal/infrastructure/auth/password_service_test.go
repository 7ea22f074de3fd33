package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("Sup3r$ecret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if hash == "Sup3r$ecret" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !svc.Verify(hash, "Sup3r$ecret") {
		t.Error("Verify should accept the original password")
	}
	if svc.Verify(hash, "wrong-password") {
		t.Error("Verify should reject a different password")
	}
}

func TestPasswordService_HashesDiffer(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	h1, err := svc.Hash("Sup3r$ecret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	h2, err := svc.Hash("Sup3r$ecret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestPasswordService_CostApplied(t *testing.T) {
	tests := []struct {
		name         string
		cost         int
		expectedCost int
	}{
		{name: "configured cost", cost: bcrypt.MinCost, expectedCost: bcrypt.MinCost},
		{name: "zero falls back to the default", cost: 0, expectedCost: bcrypt.DefaultCost},
		{name: "out of range falls back to the default", cost: 99, expectedCost: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPasswordService(tt.cost)
			hash, err := svc.Hash("Sup3r$ecret")
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}

			cost, err := bcrypt.Cost([]byte(hash))
			if err != nil {
				t.Fatalf("Cost() error: %v", err)
			}
			if cost != tt.expectedCost {
				t.Errorf("expected cost %d, got %d", tt.expectedCost, cost)
			}
		})
	}
}

func TestTokenGenerator_Generate(t *testing.T) {
	gen := NewTokenGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if len(token) < 40 {
			t.Fatalf("token %q too short", token)
		}
		if strings.ContainsAny(token, "+/=") {
			t.Errorf("token %q is not URL-safe", token)
		}
		if seen[token] {
			t.Fatal("duplicate token generated")
		}
		seen[token] = true
	}
}
