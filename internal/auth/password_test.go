// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Fatalf("hash = %s", hash)
	}

	again, _ := HashPassword("changeme")
	if hash == again {
		t.Error("salts should differ between hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	argonHash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"argon2id match", "changeme", argonHash, true},
		{"argon2id mismatch", "changemf", argonHash, false},
		{"bcrypt match", "changeme", string(bcryptHash), true},
		{"bcrypt mismatch", "changemf", string(bcryptHash), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckPassword(tt.password, tt.hash)
			if err != nil {
				t.Fatalf("CheckPassword() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckPassword_UnusableHash(t *testing.T) {
	for _, hash := range []string{"", "plaintext", "$argon2id$v=19$broken", "$scrypt$a$b$c$d"} {
		if _, err := CheckPassword("changeme", hash); !errors.Is(err, ErrUnsupportedHash) {
			t.Errorf("CheckPassword(%q) error = %v, want ErrUnsupportedHash", hash, err)
		}
	}
	if _, err := CheckPassword("changeme", "$argon2id$v=16$m=1,t=1,p=1$AAAA$AAAA"); err == nil {
		t.Error("expected error for old argon2 version")
	}
}

func TestNeedsRehash(t *testing.T) {
	current, _ := HashPassword("changeme")
	bcryptHash, _ := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.MinCost)

	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"current argon2id", current, false},
		{"bcrypt", string(bcryptHash), true},
		{"weaker argon2id", "$argon2id$v=19$m=4096,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2U", true},
		{"garbage", "plaintext", false},
	}

	for _, tt := range tests {
		if got := NeedsRehash(tt.hash); got != tt.want {
			t.Errorf("%s: NeedsRehash() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
