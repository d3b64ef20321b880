package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndParseJWT(t *testing.T) {
	SetSigningKey("test-signing-key")

	userID := uuid.New()
	token, err := GenerateJWT(userID)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	parsedID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}

	if parsedID != userID {
		t.Errorf("parsed ID = %v, want %v", parsedID, userID)
	}
}

func TestParseJWTMalformed(t *testing.T) {
	SetSigningKey("test-signing-key")

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseJWT(tokenString); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseJWT(%q) error = %v, want ErrInvalidToken", tokenString, err)
		}
	}
}

func TestParseJWTWrongKey(t *testing.T) {
	SetSigningKey("key-one")
	token, err := GenerateJWT(uuid.New())
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	SetSigningKey("key-two")
	if _, err := ParseJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseJWT with wrong key error = %v, want ErrInvalidToken", err)
	}
}

func TestParseJWTExpired(t *testing.T) {
	SetSigningKey("test-signing-key")

	claims := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseJWT with expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestParseJWTNonUUIDSubject(t *testing.T) {
	SetSigningKey("test-signing-key")

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseJWT with non-UUID subject error = %v, want ErrInvalidToken", err)
	}
}
