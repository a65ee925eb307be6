package generates

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/legit-games/catalog-service/errors"
)

// JWTAccessClaims jwt claims
type JWTAccessClaims struct {
	jwt.RegisteredClaims
	ClientID    string   `json:"client_id,omitempty"`
	Scope       []string `json:"scope"`       // Always include, even if empty
	Authorities []string `json:"authorities"` // Role names, no prefix
	DisplayName string   `json:"displayName,omitempty"`
	PrincipalID *int64   `json:"principalId,omitempty"`
}

// NewJWTAccessGenerate create to generate the jwt access token instance
func NewJWTAccessGenerate(kid string, key []byte, method jwt.SigningMethod) *JWTAccessGenerate {
	return &JWTAccessGenerate{
		SignedKeyID:  kid,
		SignedKey:    key,
		SignedMethod: method,
	}
}

// JWTAccessGenerate signs and verifies symmetric-key access tokens.
// It holds no mutable state and is safe for concurrent use.
type JWTAccessGenerate struct {
	SignedKeyID  string
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	// Now overrides the clock used for expiry checks.
	Now func() time.Time
}

func (a *JWTAccessGenerate) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Sign encodes the claims with the shared secret.
func (a *JWTAccessGenerate) Sign(claims *JWTAccessClaims) (string, error) {
	if !a.isHs() {
		return "", errors.New("unsupported sign method")
	}
	if len(a.SignedKey) == 0 {
		return "", errors.New("empty signing key")
	}
	if claims.Scope == nil {
		claims.Scope = []string{}
	}
	if claims.Authorities == nil {
		claims.Authorities = []string{}
	}
	token := jwt.NewWithClaims(a.SignedMethod, claims)
	if a.SignedKeyID != "" {
		token.Header["kid"] = a.SignedKeyID
	}
	return token.SignedString(a.SignedKey)
}

// Verify checks the signature first and the expiry second, so a forged token is
// always reported as invalid even when its exp has passed.
func (a *JWTAccessGenerate) Verify(tokenString string) (*AccessToken, error) {
	claims, err := a.parse(tokenString, true)
	if err != nil {
		return nil, err
	}
	return newAccessToken(claims), nil
}

// Claims returns the verified claims without checking time-based validity.
func (a *JWTAccessGenerate) Claims(tokenString string) (*JWTAccessClaims, error) {
	return a.parse(tokenString, false)
}

func (a *JWTAccessGenerate) parse(tokenString string, validateClaims bool) (*JWTAccessClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, errors.ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{a.SignedMethod.Alg()}),
		jwt.WithTimeFunc(a.now),
	}
	if validateClaims {
		opts = append(opts, jwt.WithExpirationRequired())
	} else {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &JWTAccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrInvalidToken
		}
		return a.SignedKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrExpiredToken
		}
		return nil, errors.ErrInvalidToken
	}
	if !token.Valid {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}

func (a *JWTAccessGenerate) isHs() bool {
	return a.SignedMethod != nil && strings.HasPrefix(a.SignedMethod.Alg(), "HS")
}
