// Package casealt implements the alternating-case phrase transform.
//
// A phrase of at least MinWords words is rewritten so that its letters
// alternate between upper and lower case, starting with upper case. Only
// letters take part in the alternation: spaces, digits and punctuation are
// copied unchanged and do not advance it.
//
//	"the quick fox"  ->  "ThE qUiCk FoX"
//
// Shorter phrases are not transformed. They produce a rejection advisory
// instead, which is an ordinary result and not an error.
package casealt

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

// Alternation selects which characters advance the upper/lower alternation.
type Alternation string

const (
	// AlternateLetters advances on ASCII letters only.
	AlternateLetters Alternation = "letters"

	// AlternateNonSpace advances on every character other than U+0020,
	// punctuation and digits included. Kept for parity with older output.
	AlternateNonSpace Alternation = "non-space"
)

// ParseAlternation validates an alternation name from configuration.
func ParseAlternation(s string) (Alternation, error) {
	switch Alternation(s) {
	case AlternateLetters, AlternateNonSpace:
		return Alternation(s), nil
	default:
		return "", fmt.Errorf("unknown alternation %q (want %q or %q)", s, AlternateLetters, AlternateNonSpace)
	}
}

// DefaultMinWords is the smallest phrase that gets transformed.
const DefaultMinWords = 3

// Options configures Transform.
type Options struct {
	MinWords    int
	Alternation Alternation
}

// DefaultOptions returns a three-word minimum with letter-only alternation.
func DefaultOptions() Options {
	return Options{MinWords: DefaultMinWords, Alternation: AlternateLetters}
}

// Advisory returns the rejection text for phrases shorter than minWords.
func Advisory(minWords int) string {
	return fmt.Sprintf("Please enter at least %d words.", minWords)
}

// Result is the outcome of one Transform call.
type Result struct {
	// Input is the phrase as received.
	Input string

	// Text is the transformed phrase, or the advisory when Rejected.
	Text string

	// Rejected is set when the phrase had fewer than MinWords words.
	Rejected bool

	// Words is the word count of the trimmed phrase.
	Words int
}

// Transform trims the phrase, checks its word count and, if long enough,
// alternates the case of its letters. log may be nil.
func Transform(phrase string, opts Options, log *slog.Logger) Result {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.MinWords <= 0 {
		opts.MinWords = DefaultMinWords
	}
	if opts.Alternation == "" {
		opts.Alternation = AlternateLetters
	}

	log.Info("string processing started")

	trimmed := strings.TrimSpace(phrase)
	words := len(strings.Fields(trimmed))
	if words < opts.MinWords {
		advisory := Advisory(opts.MinWords)
		log.Info("phrase rejected", "words", words, "min_words", opts.MinWords)
		return Result{Input: phrase, Text: advisory, Rejected: true, Words: words}
	}

	text := Alternate(trimmed, opts.Alternation)
	log.Info("processing completed", "output", text)
	return Result{Input: phrase, Text: text, Words: words}
}

// Alternate applies the case alternation to s without any word-count check.
// The alternation always starts with upper case.
func Alternate(s string, mode Alternation) string {
	var b strings.Builder
	b.Grow(len(s))

	upper := true
	for _, r := range s {
		switch {
		case mode == AlternateNonSpace && r != ' ':
			if upper {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			upper = !upper
		case mode != AlternateNonSpace && isASCIILetter(r):
			if upper {
				b.WriteRune(toUpperASCII(r))
			} else {
				b.WriteRune(toLowerASCII(r))
			}
			upper = !upper
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func toUpperASCII(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func toLowerASCII(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
