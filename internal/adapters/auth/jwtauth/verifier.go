// Package jwtauth implementa auth.AuthVerifier con tokens HS256.
// El subject del token es el ID del hogar.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medicine-cabinet/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrNotConfigured  = errors.New("jwt verifier not configured")
	ErrMissingSubject = errors.New("token claims missing subject")
)

type householdClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewVerifier: issuer vacío = no se valida el iss.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &householdClaims{}, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	c, ok := parsed.Claims.(*householdClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, errors.New("jwt verify failed: invalid token")
	}

	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return auth.Claims{}, ErrMissingSubject
	}

	return auth.Claims{UserID: sub, Email: c.Email}, nil
}

// Issue firma un token para el hogar. Lo usan los tests y el tooling de dev.
func (v *Verifier) Issue(householdID, email string, ttl time.Duration) (string, error) {
	if v == nil || len(v.secret) == 0 {
		return "", ErrNotConfigured
	}
	now := v.now()
	claims := householdClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   householdID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
