package generates

import (
	"strings"
	"time"
)

// ExtraClaims are the non-standard claims added by the token enhancer.
type ExtraClaims struct {
	DisplayName string
	PrincipalID int64
}

// AccessToken is the verified, read-only view of a signed access token.
type AccessToken struct {
	ID        string
	Subject   string
	ClientID  string
	Scopes    []string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
	// Extra is nil when the token was never enhanced.
	Extra *ExtraClaims
}

func newAccessToken(c *JWTAccessClaims) *AccessToken {
	t := &AccessToken{
		ID:       c.ID,
		Subject:  c.Subject,
		ClientID: c.ClientID,
		Scopes:   append([]string{}, c.Scope...),
		Roles:    append([]string{}, c.Authorities...),
	}
	if c.IssuedAt != nil {
		t.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		t.ExpiresAt = c.ExpiresAt.Time
	}
	if c.PrincipalID != nil {
		t.Extra = &ExtraClaims{DisplayName: c.DisplayName, PrincipalID: *c.PrincipalID}
	}
	return t
}

// HasAnyRole reports whether the token carries at least one of roles.
func (t *AccessToken) HasAnyRole(roles ...string) bool {
	for _, have := range t.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Scope returns the space-delimited scope string used in token responses.
func (t *AccessToken) Scope() string {
	return strings.Join(t.Scopes, " ")
}

// ExpiresIn returns the remaining lifetime in whole seconds relative to now.
func (t *AccessToken) ExpiresIn(now time.Time) int64 {
	d := t.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return int64(d.Round(time.Second) / time.Second)
}
