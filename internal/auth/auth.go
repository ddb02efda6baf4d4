// Package auth verifies bearer tokens issued by the external identity
// provider. The service never mints tokens itself; it only holds the
// provider's RS256 public key.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

// ClaimsKey is the request context key under which verified claims are stored.
const ClaimsKey ctxKey = 1

// Claims carries the identity provider's token claims. Subject is the user id
// that store ownership rows are matched against.
type Claims struct {
	jwt.RegisteredClaims
}

type Keys struct {
	verificationKey *rsa.PublicKey
}

func NewKeys(verificationKey *rsa.PublicKey) (*Keys, error) {
	if verificationKey == nil {
		return nil, errors.New("verification key is nil")
	}
	return &Keys{verificationKey: verificationKey}, nil
}

// NewKeysFromFile loads the identity provider's PEM encoded public key.
func NewKeysFromFile(path string) (*Keys, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading public key file: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return NewKeys(key)
}

// ValidateToken parses and verifies a bearer token and returns its claims.
func (k *Keys) ValidateToken(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return k.verificationKey, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("parsing token: %w", err)
	}
	if !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return Claims{}, errors.New("token has no subject")
	}
	return claims, nil
}
