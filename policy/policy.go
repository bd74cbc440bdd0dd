package policy

import (
	"errors"
	"fmt"
)

// Password is the immutable rule set governing credentials for one role.
//
// Password instances are intended to be configured during initialization and
// then treated as immutable. The Registry copies them on construction, so
// later mutation of the caller's value has no effect.
type Password struct {
	Name string

	MinLength int
	MaxLength int

	RequireUppercase bool
	RequireLowercase bool
	RequireDigit     bool
	RequireSymbol    bool

	// PreventReuse is the number of most recent passwords (including the
	// active one) a new password is checked against.
	PreventReuse int

	// MaxAgeDays bounds the credential lifetime. Zero means the credential
	// is already expired when stored, which is only useful in tests.
	MaxAgeDays int

	// LockoutAttempts is the failed-verification threshold after which the
	// credential is locked. Zero disables lockout.
	LockoutAttempts int

	// MinComplexityScore is the minimum analyzer score (0-100) accepted at
	// store time.
	MinComplexityScore int
}

// RequiredClasses reports how many character classes the policy demands.
func (p Password) RequiredClasses() int {
	n := 0
	if p.RequireUppercase {
		n++
	}
	if p.RequireLowercase {
		n++
	}
	if p.RequireDigit {
		n++
	}
	if p.RequireSymbol {
		n++
	}
	return n
}

func (p Password) validate() error {
	if p.Name == "" {
		return errors.New("policy name must not be empty")
	}
	if p.MinLength <= 0 {
		return fmt.Errorf("policy %q: min length must be > 0", p.Name)
	}
	if p.MinLength > p.MaxLength {
		return fmt.Errorf("policy %q: min length %d exceeds max length %d", p.Name, p.MinLength, p.MaxLength)
	}
	if p.RequiredClasses() > p.MinLength {
		return fmt.Errorf("policy %q: %d required character classes cannot fit in min length %d", p.Name, p.RequiredClasses(), p.MinLength)
	}
	if p.PreventReuse < 0 {
		return fmt.Errorf("policy %q: prevent-reuse depth must be >= 0", p.Name)
	}
	if p.MaxAgeDays < 0 {
		return fmt.Errorf("policy %q: max age days must be >= 0", p.Name)
	}
	if p.LockoutAttempts < 0 {
		return fmt.Errorf("policy %q: lockout attempts must be >= 0", p.Name)
	}
	if p.MinComplexityScore < 0 || p.MinComplexityScore > 100 {
		return fmt.Errorf("policy %q: min complexity score must be within [0,100]", p.Name)
	}
	return nil
}

// Defaults returns the built-in role policies. Callers may replace or extend
// them through the engine builder; the set shown here is what an engine
// constructed without explicit policies enforces.
func Defaults() map[string]Password {
	return map[string]Password{
		"admin": {
			Name:               "admin",
			MinLength:          12,
			MaxLength:          128,
			RequireUppercase:   true,
			RequireLowercase:   true,
			RequireDigit:       true,
			RequireSymbol:      true,
			PreventReuse:       10,
			MaxAgeDays:         60,
			LockoutAttempts:    3,
			MinComplexityScore: 60,
		},
		"manager": {
			Name:               "manager",
			MinLength:          10,
			MaxLength:          128,
			RequireUppercase:   true,
			RequireLowercase:   true,
			RequireDigit:       true,
			RequireSymbol:      true,
			PreventReuse:       5,
			MaxAgeDays:         90,
			LockoutAttempts:    5,
			MinComplexityScore: 50,
		},
		"employee": {
			Name:               "employee",
			MinLength:          8,
			MaxLength:          128,
			RequireUppercase:   true,
			RequireLowercase:   true,
			RequireDigit:       true,
			RequireSymbol:      false,
			PreventReuse:       3,
			MaxAgeDays:         120,
			LockoutAttempts:    5,
			MinComplexityScore: 40,
		},
		"vendor": {
			Name:               "vendor",
			MinLength:          8,
			MaxLength:          64,
			RequireUppercase:   true,
			RequireLowercase:   true,
			RequireDigit:       true,
			RequireSymbol:      false,
			PreventReuse:       1,
			MaxAgeDays:         30,
			LockoutAttempts:    3,
			MinComplexityScore: 30,
		},
	}
}
