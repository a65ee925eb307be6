package permission

import "strings"

// Method is a set of HTTP methods as a bitmask value.
// A zero Method matches every method.
type Method int

const (
	GET Method = 1 << iota
	HEAD
	POST
	PUT
	PATCH
	DELETE
	OPTIONS

	AnyMethod Method = 0

	// Combined
	READ Method = GET | HEAD
)

var methodNames = []struct {
	m    Method
	name string
}{
	{GET, "GET"},
	{HEAD, "HEAD"},
	{POST, "POST"},
	{PUT, "PUT"},
	{PATCH, "PATCH"},
	{DELETE, "DELETE"},
	{OPTIONS, "OPTIONS"},
}

// ParseMethod converts an HTTP method name to Method, case-insensitive.
// Returns ok=false if the method is not recognized.
func ParseMethod(s string) (Method, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, n := range methodNames {
		if n.name == s {
			return n.m, true
		}
	}
	return 0, false
}

// Matches reports whether method is in the set.
func (m Method) Matches(method string) bool {
	if m == AnyMethod {
		return true
	}
	p, ok := ParseMethod(method)
	return ok && m&p == p
}

func (m Method) String() string {
	if m == AnyMethod {
		return "*"
	}
	var parts []string
	for _, n := range methodNames {
		if m&n.m == n.m {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
