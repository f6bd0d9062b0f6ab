// Package auth issues and verifies the signed session tokens that prove a
// request is acting as a given vault.
package auth

import (
	"errors"
	"time"

	"github.com/cryptvault-io/cryptvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the subject vault id.
type Claims struct {
	jwt.RegisteredClaims
	VaultID string
}

// GenerateToken mints an HS256-signed token bound to vaultID, valid for
// validityDuration from now.
func GenerateToken(vaultID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		VaultID: vaultID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetVaultIDFromToken verifies tokenString against secretKey and returns the
// embedded vault id. An elapsed expiry yields common.ErrTokenExpired; a bad
// signature, wrong signing method, or malformed structure yields
// common.ErrInvalidToken. Callers depend on the distinction.
func GetVaultIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.VaultID, nil
}
