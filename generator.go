package goCred

import (
	"fmt"

	"github.com/MrEthical07/goCred/internal"
	"github.com/MrEthical07/goCred/policy"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// Generate produces a random password for the role's policy at the default
// length max(MinLength+2, 12). The result is policy-valid by construction:
// every required character class is present regardless of length.
func (e *Engine) Generate(role string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	p, ok := e.registry.Get(role)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	length := p.MinLength + 2
	if length < 12 {
		length = 12
	}
	if length > p.MaxLength {
		length = p.MaxLength
	}
	return e.generate(p, length)
}

// GenerateLength produces a random password of an explicit length, which
// must lie within the role policy's bounds.
func (e *Engine) GenerateLength(role string, length int) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	p, ok := e.registry.Get(role)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if length < p.MinLength || length > p.MaxLength {
		return "", fmt.Errorf("length %d outside policy bounds [%d,%d]", length, p.MinLength, p.MaxLength)
	}
	return e.generate(p, length)
}

func (e *Engine) generate(p policy.Password, length int) (string, error) {
	classes := requiredClassSets(p)

	var alphabet []rune
	for _, class := range classes {
		alphabet = append(alphabet, class...)
	}
	if len(alphabet) == 0 {
		// No class required: sample from everything but symbols.
		alphabet = []rune(upperChars + lowerChars + digitChars)
	}

	out := make([]rune, 0, length)

	// One draw per required class first, so class presence holds for any
	// output length.
	for _, class := range classes {
		r, err := internal.PickRune(class)
		if err != nil {
			return "", err
		}
		out = append(out, r)
	}

	for len(out) < length {
		r, err := internal.PickRune(alphabet)
		if err != nil {
			return "", err
		}
		out = append(out, r)
	}

	// Shuffle so the class-seeded characters are not front-loaded.
	if err := internal.ShuffleRunes(out); err != nil {
		return "", err
	}

	e.metricInc(MetricGenerated)
	return string(out), nil
}

func requiredClassSets(p policy.Password) [][]rune {
	var classes [][]rune
	if p.RequireUppercase {
		classes = append(classes, []rune(upperChars))
	}
	if p.RequireLowercase {
		classes = append(classes, []rune(lowerChars))
	}
	if p.RequireDigit {
		classes = append(classes, []rune(digitChars))
	}
	if p.RequireSymbol {
		classes = append(classes, []rune(symbolChars))
	}
	return classes
}
