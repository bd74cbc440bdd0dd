package goCred

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Scoring weights. The composite is clamped to [0,100] after all checks.
const (
	lengthBonus     = 20
	classBonus      = 15
	entropyBonusCap = 20
	patternPenalty  = 20
	breachPenalty   = 30
)

// guessesPerSecond is the assumed offline adversary rate for crack-time
// estimates.
const guessesPerSecond = 1e9

var dictionaryTokens = []string{
	"password",
	"qwerty",
	"letmein",
	"welcome",
	"admin",
	"123456",
	"abc123",
	"iloveyou",
	"dragon",
	"monkey",
}

// Analyze scores a password against the role's policy. Structural
// deficiencies are reported through Score and Feedback, never as an error;
// the only error case is an unregistered role.
func (e *Engine) Analyze(pw string, role string) (PasswordMetrics, error) {
	if e == nil {
		return PasswordMetrics{}, ErrEngineNotReady
	}
	p, ok := e.registry.Get(role)
	if !ok {
		return PasswordMetrics{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	e.metricInc(MetricAnalyzed)

	var (
		score    int
		feedback []string
	)

	runes := []rune(pw)
	if len(runes) < p.MinLength {
		feedback = append(feedback, fmt.Sprintf("must be at least %d characters", p.MinLength))
	} else {
		score += lengthBonus
	}
	if len(runes) > p.MaxLength {
		// The hard bound is enforced at store time; here it is advisory.
		feedback = append(feedback, fmt.Sprintf("exceeds maximum length of %d characters", p.MaxLength))
	}

	for _, check := range []struct {
		required bool
		present  bool
		missing  string
	}{
		{p.RequireUppercase, containsClass(runes, unicode.IsUpper), "add an uppercase letter"},
		{p.RequireLowercase, containsClass(runes, unicode.IsLower), "add a lowercase letter"},
		{p.RequireDigit, containsClass(runes, unicode.IsDigit), "add a digit"},
		{p.RequireSymbol, containsSymbol(runes), "add a symbol"},
	} {
		if !check.required {
			continue
		}
		if check.present {
			score += classBonus
		} else {
			feedback = append(feedback, check.missing)
		}
	}

	entropyBits := entropy(runes)
	bonus := int(entropyBits / 5)
	if bonus > entropyBonusCap {
		bonus = entropyBonusCap
	}
	score += bonus

	if hasRepeatRun(runes) {
		feedback = append(feedback, "avoid repeating the same character")
		score -= patternPenalty
	}
	if hasSequentialRun(runes) {
		feedback = append(feedback, "avoid sequential characters")
		score -= patternPenalty
	}
	if token := dictionaryToken(pw); token != "" {
		feedback = append(feedback, fmt.Sprintf("avoid common words like %q", token))
		score -= patternPenalty
	}

	compromised := e.breach.Contains(pw)
	if compromised {
		feedback = append(feedback, "this password appears in known breaches")
		score -= breachPenalty
		e.metricInc(MetricBreachHit)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return PasswordMetrics{
		Strength:    strengthFor(score),
		Score:       score,
		Feedback:    feedback,
		EntropyBits: entropyBits,
		CrackTime:   crackTime(entropyBits),
		Compromised: compromised,
	}, nil
}

func strengthFor(score int) Strength {
	switch {
	case score >= 90:
		return StrengthExcellent
	case score >= 75:
		return StrengthStrong
	case score >= 60:
		return StrengthGood
	case score >= 40:
		return StrengthFair
	default:
		return StrengthWeak
	}
}

func containsClass(runes []rune, class func(rune) bool) bool {
	for _, r := range runes {
		if class(r) {
			return true
		}
	}
	return false
}

func containsSymbol(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// entropy is log2(distinctChars ^ length): the standard alphabet-size model,
// with the alphabet taken as the distinct characters actually used.
func entropy(runes []rune) float64 {
	if len(runes) == 0 {
		return 0
	}
	distinct := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		distinct[r] = struct{}{}
	}
	if len(distinct) < 2 {
		return 0
	}
	return float64(len(runes)) * math.Log2(float64(len(distinct)))
}

func hasRepeatRun(runes []rune) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func hasSequentialRun(runes []rune) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		alnum := isASCIIAlnum(runes[i]) && isASCIIAlnum(runes[i-1])
		if alnum && runes[i] == runes[i-1]+1 {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func isASCIIAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func dictionaryToken(pw string) string {
	lowered := strings.ToLower(pw)
	for _, token := range dictionaryTokens {
		if strings.Contains(lowered, token) {
			return token
		}
	}
	return ""
}

// crackTime renders an offline-guessing estimate at guessesPerSecond for the
// average case (half the keyspace, hence entropyBits-1).
func crackTime(entropyBits float64) string {
	if entropyBits <= 1 {
		return "instantly"
	}

	seconds := math.Exp2(entropyBits-1) / guessesPerSecond

	const (
		minute  = 60
		hour    = 60 * minute
		day     = 24 * hour
		year    = 365 * day
		century = 100 * year
	)

	switch {
	case seconds < 1:
		return "instantly"
	case seconds < hour:
		minutes := int(seconds / minute)
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("%d minutes", minutes)
	case seconds < day:
		return fmt.Sprintf("%d hours", int(seconds/hour))
	case seconds < year:
		return fmt.Sprintf("%d days", int(seconds/day))
	case seconds < century:
		return fmt.Sprintf("%d years", int(seconds/year))
	default:
		return "centuries"
	}
}
