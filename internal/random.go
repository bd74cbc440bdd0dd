package internal

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// UniformInt draws a uniform value in [0, n) from crypto/rand. Statistical
// generators are never acceptable here: generated passwords and salts must be
// unpredictable to an attacker who knows the generation time.
func UniformInt(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("uniform bound must be > 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// PickRune draws one rune uniformly from the set.
func PickRune(set []rune) (rune, error) {
	i, err := UniformInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// ShuffleRunes applies a Fisher-Yates permutation in place using
// crypto/rand draws.
func ShuffleRunes(runes []rune) error {
	for i := len(runes) - 1; i > 0; i-- {
		j, err := UniformInt(i + 1)
		if err != nil {
			return err
		}
		runes[i], runes[j] = runes[j], runes[i]
	}
	return nil
}
