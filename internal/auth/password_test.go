package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword("wrong password", hash) {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ")
	}
	if !VerifyPassword("secret123", h1) || !VerifyPassword("secret123", h2) {
		t.Fatalf("both hashes must verify")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=1,p=4$short",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$!!!",
		"$bcrypt$whatever",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
	}
	for _, c := range cases {
		if VerifyPassword("anything", c) {
			t.Fatalf("malformed hash %q verified", c)
		}
	}
}
