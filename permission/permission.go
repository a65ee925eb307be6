package permission

import (
	"fmt"
	"path"
	"strings"
)

const (
	wildcard = "/**"
	// CatchAll is the pattern every rule table must end with.
	CatchAll = wildcard
)

type accessKind int

const (
	accessAny accessKind = iota
	accessAuthenticated
	accessRoles
)

// Access is the audience a rule admits: anyone, any authenticated caller,
// or callers holding at least one of a set of roles.
type Access struct {
	kind  accessKind
	roles []string
}

// PermitAll admits every request, with or without a token.
func PermitAll() Access { return Access{kind: accessAny} }

// Authenticated admits any caller presenting a valid token.
func Authenticated() Access { return Access{kind: accessAuthenticated} }

// HasAnyRole admits callers whose token carries one of roles.
func HasAnyRole(roles ...string) Access {
	return Access{kind: accessRoles, roles: append([]string{}, roles...)}
}

// Roles returns the role set for role-restricted access, nil otherwise.
func (a Access) Roles() []string { return append([]string(nil), a.roles...) }

func (a Access) String() string {
	switch a.kind {
	case accessAny:
		return "permitAll"
	case accessAuthenticated:
		return "authenticated"
	default:
		return "hasAnyRole(" + strings.Join(a.roles, ",") + ")"
	}
}

// Rule maps a request pattern to the audience allowed to reach it.
// Pattern is an exact path or "<prefix>/**", which matches the prefix itself
// and everything below it.
type Rule struct {
	Pattern string
	Methods Method
	Access  Access
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s -> %s", r.Methods, r.Pattern, r.Access)
}

// Matches reports whether the rule applies to method and an already-cleaned path.
func (r Rule) Matches(method, cleanPath string) bool {
	return r.Methods.Matches(method) && patternMatches(r.Pattern, cleanPath)
}

func (r Rule) isCatchAll() bool {
	return r.Pattern == CatchAll && r.Methods == AnyMethod && r.Access.kind == accessAuthenticated
}

func (r Rule) validate() error {
	if !strings.HasPrefix(r.Pattern, "/") {
		return fmt.Errorf("pattern %q must start with /", r.Pattern)
	}
	body := strings.TrimSuffix(r.Pattern, wildcard)
	if strings.Contains(body, "*") {
		return fmt.Errorf("pattern %q: wildcard only allowed as trailing /**", r.Pattern)
	}
	if body != "" && path.Clean(body) != body {
		return fmt.Errorf("pattern %q is not a clean path", r.Pattern)
	}
	if r.Access.kind == accessRoles && len(r.Access.roles) == 0 {
		return fmt.Errorf("rule %s: empty role set", r)
	}
	return nil
}

// patternMatches is an exact match, or a prefix match when the pattern ends with /**
func patternMatches(pattern, p string) bool {
	if pattern == wildcard {
		return true
	}
	if strings.HasSuffix(pattern, wildcard) {
		prefix := strings.TrimSuffix(pattern, wildcard)
		return p == prefix || strings.HasPrefix(p, prefix+"/")
	}
	return pattern == p
}

// CleanPath normalizes a request path before matching: dot segments and
// duplicate or trailing slashes are removed.
func CleanPath(p string) string {
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
