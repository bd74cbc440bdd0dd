package policy

import (
	"errors"
	"sort"
)

// Registry holds the closed set of role policies an engine enforces. It is
// built once, validated, and never mutated afterwards; lookups are safe for
// concurrent use without locking.
type Registry struct {
	policies map[string]Password
	maxReuse int
}

// NewRegistry validates every policy and freezes the set. The role keys of
// the input map override each policy's Name field so that lookup and
// reporting always agree.
func NewRegistry(policies map[string]Password) (*Registry, error) {
	if len(policies) == 0 {
		return nil, errors.New("at least one role policy is required")
	}

	frozen := make(map[string]Password, len(policies))
	maxReuse := 0
	for role, p := range policies {
		p.Name = role
		if err := p.validate(); err != nil {
			return nil, err
		}
		if p.PreventReuse > maxReuse {
			maxReuse = p.PreventReuse
		}
		frozen[role] = p
	}

	return &Registry{policies: frozen, maxReuse: maxReuse}, nil
}

// Get returns the policy registered for role. The boolean is false when the
// role is outside the registered set, which callers treat as a configuration
// error rather than a runtime condition.
func (r *Registry) Get(role string) (Password, bool) {
	p, ok := r.policies[role]
	return p, ok
}

// MaxReuseDepth is the largest PreventReuse across all registered policies.
// It bounds the retained history length for every user.
func (r *Registry) MaxReuseDepth() int {
	return r.maxReuse
}

// Roles returns the registered role names in sorted order.
func (r *Registry) Roles() []string {
	roles := make([]string, 0, len(r.policies))
	for role := range r.policies {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
