// Package normalize cleans text extracted from PDF text layers so that it is
// safe for ASCII-oriented consumers.
//
// Every rune runs through a short decision procedure: a fixed replacement
// table, ASCII and Latin-1 passthrough, and a compatibility-decomposition
// fallback for letters, numbers, punctuation, symbols and separators.
// Anything else becomes a single space. The result never contains a rune
// outside [0,127] and [160,255].
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownPolicy is returned by ParsePolicy for an unrecognised name.
var ErrUnknownPolicy = errors.New("unknown normalization policy")

// Outcome tags the branch of the decision procedure that produced a rune's
// replacement.
type Outcome int

const (
	// Mapped means the rune was found in the replacement table.
	Mapped Outcome = iota
	// ASCIIPassthrough means the rune was below 128 and kept.
	ASCIIPassthrough
	// Latin1Passthrough means the rune was in [160,255] and kept.
	Latin1Passthrough
	// Decomposed means NFKD produced a single rune in range.
	Decomposed
	// Stripped means NFKD followed by dropping non-ASCII left something.
	Stripped
	// SpaceFallback means the rune became a single space.
	SpaceFallback
)

func (o Outcome) String() string {
	switch o {
	case Mapped:
		return "mapped"
	case ASCIIPassthrough:
		return "ascii"
	case Latin1Passthrough:
		return "latin1"
	case Decomposed:
		return "decomposed"
	case Stripped:
		return "stripped"
	case SpaceFallback:
		return "space"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Policy selects the final character range of cleaned text.
type Policy string

const (
	// PolicyLatin1 keeps ASCII and the Latin-1 supplement.
	PolicyLatin1 Policy = "latin1"
	// PolicyASCII additionally folds the Latin-1 output down to ASCII.
	PolicyASCII Policy = "ascii"
)

// ParsePolicy converts a configuration value into a Policy. The empty string
// selects PolicyLatin1.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyLatin1:
		return PolicyLatin1, nil
	case PolicyASCII:
		return PolicyASCII, nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownPolicy, s, PolicyLatin1, PolicyASCII)
	}
}

// Normalizer applies the cleaning pass under a fixed policy. The zero value
// uses PolicyLatin1. A Normalizer holds no mutable state and is safe for
// concurrent use.
type Normalizer struct {
	policy Policy
}

// New returns a Normalizer for the given policy.
func New(policy Policy) *Normalizer {
	return &Normalizer{policy: policy}
}

// Policy returns the policy the Normalizer applies.
func (n *Normalizer) Policy() Policy {
	if n == nil || n.policy == "" {
		return PolicyLatin1
	}
	return n.policy
}

// Normalize cleans raw according to the Normalizer's policy.
func (n *Normalizer) Normalize(raw string) string {
	out := Normalize(raw)
	if n.Policy() == PolicyASCII {
		return ASCIIFold(out)
	}
	return out
}

// Normalize cleans raw under PolicyLatin1. It never fails; in the worst case
// every rune becomes a space.
func Normalize(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			// Invalid byte: nothing to decompose.
			sb.WriteByte(' ')
			continue
		}
		_, s := Classify(r)
		sb.WriteString(s)
	}
	return sb.String()
}

// Classify runs the decision procedure for a single rune and returns the
// branch taken together with the replacement text.
func Classify(r rune) (Outcome, string) {
	if s, ok := replacements[r]; ok {
		return Mapped, s
	}
	if r < utf8.RuneSelf {
		return ASCIIPassthrough, string(r)
	}
	if inLatin1(r) {
		return Latin1Passthrough, string(r)
	}
	if !decomposable(r) {
		return SpaceFallback, " "
	}

	d := norm.NFKD.String(string(r))
	if utf8.RuneCountInString(d) == 1 {
		if dr, _ := utf8.DecodeRuneInString(d); inRange(dr) {
			return Decomposed, d
		}
	}

	stripped, err := stripNonASCII(string(r))
	if err != nil || stripped == "" {
		return SpaceFallback, " "
	}
	return Stripped, stripped
}

// ASCIIFold decomposes s and drops every rune that is still non-ASCII
// afterwards. Accented Latin letters keep their base letter.
func ASCIIFold(s string) string {
	out, err := stripNonASCII(s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if r < utf8.RuneSelf {
				return r
			}
			return -1
		}, s)
	}
	return out
}

// InRange reports whether r may appear in cleaned text.
func InRange(r rune) bool {
	return inRange(r)
}

func inRange(r rune) bool {
	return r < utf8.RuneSelf || inLatin1(r)
}

func inLatin1(r rune) bool {
	return r >= 0xA0 && r <= 0xFF
}

// decomposable reports whether r is a letter, number, punctuation, symbol or
// separator.
func decomposable(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.IsPunct(r) ||
		unicode.IsSymbol(r) ||
		unicode.In(r, unicode.Z)
}

var nonASCII = runes.Predicate(func(r rune) bool {
	return r >= utf8.RuneSelf
})

// stripNonASCII applies NFKD and removes the remaining non-ASCII runes. The
// chained transformer is stateful, so a fresh one is built per call.
func stripNonASCII(s string) (string, error) {
	t := transform.Chain(norm.NFKD, runes.Remove(nonASCII))
	out, _, err := transform.String(t, s)
	if err != nil {
		return "", err
	}
	return out, nil
}
