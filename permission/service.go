package permission

import (
	"fmt"

	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/generates"
	"github.com/legit-games/catalog-service/models"
)

// Table is an immutable, ordered list of rules. The first matching rule wins.
type Table struct {
	rules []Rule
}

// NewTable validates rules and returns them as a table. The final rule must be
// the /** catch-all requiring authentication, so unmatched routes never fall open.
func NewTable(rules ...Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("permission: empty rule table")
	}
	for i, r := range rules {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("permission: rule %d: %w", i, err)
		}
	}
	if last := rules[len(rules)-1]; !last.isCatchAll() {
		return nil, fmt.Errorf("permission: last rule must be %q with authenticated access, got %s", CatchAll, last)
	}
	cp := make([]Rule, len(rules))
	for i, r := range rules {
		r.Access.roles = r.Access.Roles()
		cp[i] = r
	}
	return &Table{rules: cp}, nil
}

// MustTable is NewTable that panics on an invalid table.
func MustTable(rules ...Rule) *Table {
	t, err := NewTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable is the catalog's route table: reads of products and categories
// are public, writes need OPERATOR or ADMIN, user management needs ADMIN.
func DefaultTable() *Table {
	return MustTable(
		Rule{Pattern: "/oauth/token", Access: PermitAll()},
		Rule{Pattern: "/products/**", Methods: GET, Access: PermitAll()},
		Rule{Pattern: "/categories/**", Methods: GET, Access: PermitAll()},
		Rule{Pattern: "/products/**", Access: HasAnyRole(models.RoleOperator, models.RoleAdmin)},
		Rule{Pattern: "/categories/**", Access: HasAnyRole(models.RoleOperator, models.RoleAdmin)},
		Rule{Pattern: "/users/**", Access: HasAnyRole(models.RoleAdmin)},
		Rule{Pattern: CatchAll, Access: Authenticated()},
	)
}

// Rules returns a copy of the table's rules in evaluation order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Reason explains a denial.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnauthenticated
	ReasonForbidden
)

func (r Reason) String() string {
	switch r {
	case ReasonUnauthenticated:
		return "unauthenticated"
	case ReasonForbidden:
		return "forbidden"
	default:
		return "none"
	}
}

// Decision is the verdict for one request.
type Decision struct {
	Allowed bool
	Reason  Reason
	// Rule is the rule that decided; Index is its position in the table.
	Rule  Rule
	Index int
}

// Err maps a denial to errors.ErrUnauthenticated or errors.ErrForbidden.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonForbidden:
		return errors.ErrForbidden
	default:
		return errors.ErrUnauthenticated
	}
}

// Engine evaluates requests against a table. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	table *Table
}

func NewEngine(t *Table) *Engine {
	if t == nil {
		t = DefaultTable()
	}
	return &Engine{table: t}
}

// Authorize decides a request. token is the verified access token, or nil when
// the request carried none or it failed verification.
func (e *Engine) Authorize(method, reqPath string, token *generates.AccessToken) Decision {
	p := CleanPath(reqPath)
	for i, r := range e.table.rules {
		if !r.Matches(method, p) {
			continue
		}
		return decide(r, i, token)
	}
	// unreachable for a validated table; fail closed anyway
	return Decision{Reason: ReasonUnauthenticated, Index: -1}
}

func decide(r Rule, i int, token *generates.AccessToken) Decision {
	d := Decision{Rule: r, Index: i}
	switch r.Access.kind {
	case accessAny:
		d.Allowed = true
	case accessAuthenticated:
		if token == nil {
			d.Reason = ReasonUnauthenticated
		} else {
			d.Allowed = true
		}
	default:
		switch {
		case token == nil:
			d.Reason = ReasonUnauthenticated
		case token.HasAnyRole(r.Access.roles...):
			d.Allowed = true
		default:
			d.Reason = ReasonForbidden
		}
	}
	return d
}
