package generates

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/models"
)

// DefaultScopes are granted to every token issued by this service.
var DefaultScopes = []string{"read", "write"}

// CredentialStore resolves principals by e-mail. Implementations return an error
// wrapping errors.ErrResourceNotFound when no principal exists.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer runs the password-grant issuance pipeline:
// credential check, base claims, signing, enhancement.
type TokenIssuer struct {
	Generate *JWTAccessGenerate
	Enhancer TokenEnhancer
	Store    CredentialStore
	Encoder  PasswordEncoder
	ClientID string
	Duration time.Duration
	Scopes   []string

	dummyOnce sync.Once
	dummyHash string
}

// NewTokenIssuer wires the default pipeline with a PrincipalEnhancer.
func NewTokenIssuer(gen *JWTAccessGenerate, store CredentialStore, enc PasswordEncoder, clientID string, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{
		Generate: gen,
		Enhancer: NewPrincipalEnhancer(gen, store),
		Store:    store,
		Encoder:  enc,
		ClientID: clientID,
		Duration: duration,
		Scopes:   DefaultScopes,
	}
}

// Issue authenticates email/password and returns the enhanced, signed token.
// Unknown e-mail and wrong password fail identically with ErrInvalidCredentials.
func (i *TokenIssuer) Issue(ctx context.Context, email, password string) (*AccessToken, string, error) {
	principal, err := i.Store.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, errors.ErrResourceNotFound) {
			return nil, "", err
		}
		// keep the response time of unknown e-mails close to wrong passwords
		i.Encoder.Matches(password, i.dummy())
		return nil, "", errors.ErrInvalidCredentials
	}
	if !i.Encoder.Matches(password, principal.Password) {
		return nil, "", errors.ErrInvalidCredentials
	}

	signed, err := i.Generate.Sign(i.baseClaims(principal))
	if err != nil {
		return nil, "", err
	}
	if i.Enhancer != nil {
		if signed, err = i.Enhancer.Enhance(ctx, signed, principal); err != nil {
			return nil, "", err
		}
	}

	token, err := i.Generate.Verify(signed)
	if err != nil {
		return nil, "", err
	}
	return token, signed, nil
}

func (i *TokenIssuer) baseClaims(p *models.User) *JWTAccessClaims {
	now := i.Generate.now()
	scopes := i.Scopes
	if scopes == nil {
		scopes = DefaultScopes
	}
	return &JWTAccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.Duration)),
		},
		ClientID:    i.ClientID,
		Scope:       append([]string{}, scopes...),
		Authorities: p.RoleNames(),
	}
}

func (i *TokenIssuer) dummy() string {
	i.dummyOnce.Do(func() {
		i.dummyHash, _ = i.Encoder.Encode(uuid.NewString())
	})
	return i.dummyHash
}
