package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	user := &domain.User{
		ID:    "user-123",
		Email: "user@example.com",
		Role:  domain.RoleAdmin,
	}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	got := claims.User()
	if got.ID != user.ID || got.Email != user.Email || got.Role != user.Role {
		t.Fatalf("expected claims to match user, got %+v", got)
	}
	if claims.Issuer != auth.Issuer {
		t.Fatalf("expected issuer %q, got %q", auth.Issuer, claims.Issuer)
	}
}

func TestJWTManagerGenerateRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	if _, err := manager.Generate(&domain.User{ID: "u", Role: "viewer"}); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
	if _, err := manager.Generate(&domain.User{Role: domain.RoleInvestor}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for missing id, got %v", err)
	}
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	sign := func(claims auth.Claims, key string) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		return token
	}

	expired := sign(auth.Claims{
		Role: domain.RoleInvestor,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			Subject:   "expired",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}, "secret")

	if _, err := manager.Verify(expired); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	otherManager := auth.NewJWTManager("other-secret", time.Minute)
	if _, err := otherManager.Verify(expired); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	foreignIssuer := sign(auth.Claims{
		Role: domain.RoleInvestor,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}, "secret")
	if _, err := manager.Verify(foreignIssuer); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected foreign issuer to be rejected, got %v", err)
	}

	noRole := sign(auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}, "secret")
	if _, err := manager.Verify(noRole); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected token without role to be rejected, got %v", err)
	}

	if _, err := manager.Verify("not-a-token"); err == nil {
		t.Fatalf("expected failure for malformed token")
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, err := auth.BearerToken(tt.header)
		if tt.ok && (err != nil || got != tt.want) {
			t.Fatalf("BearerToken(%q) = %q, %v; want %q", tt.header, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("BearerToken(%q) expected ErrUnauthorized, got %v", tt.header, err)
		}
	}
}
