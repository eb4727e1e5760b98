package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssuanceMode how the subject identity was issued
type IssuanceMode string

const (
	// ModeAnonymous identity issued without credentials
	ModeAnonymous IssuanceMode = "anonymous"
	// ModeCredentialed identity backed by an email/password account
	ModeCredentialed IssuanceMode = "credentialed"
)

// Claims structure for custom claims in JWT
type Claims struct {
	SubjectID string       `json:"subject_id"`
	Mode      IssuanceMode `json:"mode"`
	jwt.RegisteredClaims
}

// Secret Key for JWT signing and validation
var (
	JWTSecret       = []byte("secure_secret_key")
	tokenExpiration = 24 * time.Hour
)

// GenerateJWT generates a JWT token carrying the stable subject id
func GenerateJWT(subjectID string, mode IssuanceMode, issuer string) (string, error) {
	claims := Claims{
		SubjectID: subjectID,
		Mode:      mode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseJWT parses a JWT and extracts the Claims
func ParseJWT(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
