package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StudentClaims is the JWT payload issued to a signed-in student
type StudentClaims struct {
	StudentID   int64 `json:"sid"`
	ClassroomID int64 `json:"cid"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies student JWTs. Students get tokens instead
// of cookie sessions so the game client can hold one bearer credential.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewTokenIssuer creates an issuer with the given signing secret and expiry
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}
}

// Issue signs a token for the student
func (ti *TokenIssuer) Issue(studentID, classroomID int64) (string, error) {
	now := time.Now()
	claims := StudentClaims{
		StudentID:   studentID,
		ClassroomID: classroomID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// Verify parses a token and returns its claims
func (ti *TokenIssuer) Verify(tokenString string) (*StudentClaims, error) {
	claims := &StudentClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
