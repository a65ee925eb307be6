package generates

import (
	"context"

	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/models"
)

// TokenEnhancer post-processes a freshly signed token.
type TokenEnhancer interface {
	Enhance(ctx context.Context, signed string, principal *models.User) (string, error)
}

// EnhancerChain applies enhancers in order, feeding each the previous output.
type EnhancerChain []TokenEnhancer

func (c EnhancerChain) Enhance(ctx context.Context, signed string, principal *models.User) (string, error) {
	var err error
	for _, e := range c {
		if signed, err = e.Enhance(ctx, signed, principal); err != nil {
			return "", err
		}
	}
	return signed, nil
}

// PrincipalEnhancer embeds displayName and principalId into the token payload.
// The principal is re-resolved by e-mail; a token is never returned with only
// part of the extra claims.
type PrincipalEnhancer struct {
	Generate *JWTAccessGenerate
	Store    CredentialStore
}

// NewPrincipalEnhancer create a principal enhancer
func NewPrincipalEnhancer(gen *JWTAccessGenerate, store CredentialStore) *PrincipalEnhancer {
	return &PrincipalEnhancer{Generate: gen, Store: store}
}

func (e *PrincipalEnhancer) Enhance(ctx context.Context, signed string, principal *models.User) (string, error) {
	claims, err := e.Generate.Claims(signed)
	if err != nil {
		return "", err
	}
	if principal == nil || principal.Email != claims.Subject {
		return "", errors.Wrapf(errors.ErrPrincipalResolution, "token subject does not match the authenticated principal")
	}

	resolved, err := e.Store.FindByEmail(ctx, principal.Email)
	if err != nil || resolved == nil || resolved.ID != principal.ID {
		return "", errors.Wrapf(errors.ErrPrincipalResolution, "principal %q could not be resolved", principal.Email)
	}

	id := resolved.ID
	claims.DisplayName = resolved.FirstName
	claims.PrincipalID = &id
	return e.Generate.Sign(claims)
}
