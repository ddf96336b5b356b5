package booking

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hhgcare/hhg/internal/shared/id"
)

const (
	DefaultNumberPrefix = "HHG"
	DefaultMaxProbes    = 1000

	partnerCodeLength = 3
	phoneDigitsLength = 4
	fallbackLength    = 4

	// Digits 1-9 times 24 letters.
	letterDigitSuffixes = 9 * 24
)

// suffixLetters omits I and O, which read as 1 and 0.
const suffixLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"

type NumberGenerator interface {
	Generate(ctx context.Context, partnerName, phone string) (string, error)
}

// PrefixNumberGenerator issues numbers of the form
// PREFIX-<partner code>-<last 4 phone digits>-<suffix>, picking the first
// suffix not already used under that prefix. It does not reserve the number;
// the unique index on booking_number is the final arbiter.
type PrefixNumberGenerator struct {
	lookup       NumberLookup
	prefix       string
	maxProbes    int
	randomSuffix func() (string, error)
}

func NewPrefixNumberGenerator(lookup NumberLookup, prefix string, maxProbes int) *PrefixNumberGenerator {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	if maxProbes <= 0 {
		maxProbes = DefaultMaxProbes
	}
	return &PrefixNumberGenerator{
		lookup:    lookup,
		prefix:    prefix,
		maxProbes: maxProbes,
		randomSuffix: func() (string, error) {
			return id.GenerateFrom(id.Base36Upper, fallbackLength)
		},
	}
}

// Generate returns the next free number for the partner and phone. When every
// probed suffix is taken it falls back to a random one, which may collide.
func (g *PrefixNumberGenerator) Generate(ctx context.Context, partnerName, phone string) (string, error) {
	prefix := fmt.Sprintf("%s-%s-%s", g.prefix, PartnerCode(partnerName), PhoneDigits(phone))

	existing, err := g.lookup.ListNumbersWithPrefix(ctx, prefix+"-")
	if err != nil {
		return "", fmt.Errorf("failed to list booking numbers for prefix %s: %w", prefix, err)
	}

	taken := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		taken[n] = struct{}{}
	}

	for i := 0; i < g.maxProbes; i++ {
		candidate := prefix + "-" + SuffixAt(i)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}

	suffix, err := g.randomSuffix()
	if err != nil {
		return "", fmt.Errorf("failed to generate fallback suffix: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// SuffixAt returns the i-th suffix in allocation order: A1..A9, B1..Z9, then
// two-letter pairs AA, AB, ... which cycle every 576 indices.
func SuffixAt(i int) string {
	if i < letterDigitSuffixes {
		return string(suffixLetters[i/9]) + string(rune('1'+i%9))
	}
	j := i - letterDigitSuffixes
	n := len(suffixLetters)
	return string(suffixLetters[(j/n)%n]) + string(suffixLetters[j%n])
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// PartnerCode is the first three ASCII letters of the partner name with
// diacritics removed, uppercased and padded with X.
func PartnerCode(partnerName string) string {
	folded, _, err := transform.String(stripMarks, partnerName)
	if err != nil {
		folded = partnerName
	}

	var b strings.Builder
	for _, r := range folded {
		if b.Len() == partnerCodeLength {
			break
		}
		// Đ has no decomposition.
		if r == 'Đ' || r == 'đ' {
			r = 'D'
		}
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	for b.Len() < partnerCodeLength {
		b.WriteByte('X')
	}
	return b.String()
}

// PhoneDigits is the last four digits of phone, left-padded with zeros.
func PhoneDigits(phone string) string {
	var digits []byte
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) > phoneDigitsLength {
		digits = digits[len(digits)-phoneDigitsLength:]
	}
	return strings.Repeat("0", phoneDigitsLength-len(digits)) + string(digits)
}
