// Package pattern implements the tiered text pattern matcher.
//
// A pattern compiles to the cheapest adequate strategy, chosen once from the
// pattern's shape and never re-evaluated:
//
//   - a single literal uses a plain substring scan,
//   - an alternation of literals uses an Aho-Corasick automaton,
//   - anything else uses the regexp engine.
//
// Strategy choice is a performance detail only: equivalent patterns return
// identical match sets regardless of tier.
package pattern

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Strategy identifies the compiled representation of a pattern.
type Strategy int

const (
	// StrategyLiteral is a single-substring search.
	StrategyLiteral Strategy = iota
	// StrategyMultiLiteral is a multi-pattern automaton over literal
	// alternatives.
	StrategyMultiLiteral
	// StrategyRegex is the full regular-expression engine.
	StrategyRegex
)

func (s Strategy) String() string {
	switch s {
	case StrategyLiteral:
		return "literal"
	case StrategyMultiLiteral:
		return "multi-literal"
	case StrategyRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// PatternError reports a pattern that failed to compile. The requesting
// check decides whether that is fatal or the pattern should be skipped.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// LineMatch is one non-overlapping match located in a buffer. Matches are
// transient; they are consumed immediately by the calling check.
type LineMatch struct {
	// Line is the 1-indexed line number of the match.
	Line int
	// ByteOffset is the offset of the match start within the buffer.
	ByteOffset int
	// Text is the matched text.
	Text string
	// LineContent is the full text of the matched line.
	LineContent string
}

// CompiledPattern is an immutable compiled pattern, safe for concurrent use
// across all files processed by a check.
type CompiledPattern struct {
	source   string
	strategy Strategy

	literal string
	trie    *ahocorasick.AhoCorasick
	re      *regexp.Regexp
}

// metachars are the regexp metacharacters that disqualify a pattern from the
// literal tiers.
const metachars = `\.+*?()[]{}^$`

// Compile builds the cheapest matcher adequate for source.
func Compile(source string) (*CompiledPattern, error) {
	if !strings.ContainsAny(source, metachars) {
		if !strings.Contains(source, "|") {
			if source == "" {
				return nil, &PatternError{Pattern: source, Err: fmt.Errorf("empty pattern")}
			}
			return &CompiledPattern{source: source, strategy: StrategyLiteral, literal: source}, nil
		}
		alts := strings.Split(source, "|")
		ok := true
		for _, alt := range alts {
			if alt == "" {
				ok = false
				break
			}
		}
		if ok {
			p := CompileLiterals(alts)
			p.source = source
			return p, nil
		}
	}

	re, err := regexp.Compile(source)
	if err != nil {
		return nil, &PatternError{Pattern: source, Err: err}
	}
	return &CompiledPattern{source: source, strategy: StrategyRegex, re: re}, nil
}

// CompileLiterals builds a multi-literal matcher directly from a list of
// literal alternatives, bypassing shape detection.
func CompileLiterals(literals []string) *CompiledPattern {
	// Leftmost-first matching mirrors the regexp engine's alternation
	// semantics, keeping the tiers observably equivalent.
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		MatchKind: ahocorasick.LeftMostFirstMatch,
		DFA:       true,
	})
	trie := builder.Build(literals)
	return &CompiledPattern{
		source:   strings.Join(literals, "|"),
		strategy: StrategyMultiLiteral,
		trie:     &trie,
	}
}

// Source returns the original pattern text.
func (p *CompiledPattern) Source() string { return p.source }

// Strategy returns the tier the pattern compiled to.
func (p *CompiledPattern) Strategy() Strategy { return p.strategy }

// FindAll returns every non-overlapping match in buf in ascending line
// order. The caller supplies the buffer's LineIndex so that many patterns
// can share one index per buffer; passing nil computes a private one.
func (p *CompiledPattern) FindAll(buf []byte, lines *LineIndex) []LineMatch {
	if lines == nil {
		lines = NewLineIndex(buf)
	}

	var spans [][2]int
	switch p.strategy {
	case StrategyLiteral:
		off := 0
		for {
			i := bytes.Index(buf[off:], []byte(p.literal))
			if i < 0 {
				break
			}
			at := off + i
			spans = append(spans, [2]int{at, at + len(p.literal)})
			off = at + len(p.literal)
		}
	case StrategyMultiLiteral:
		for _, m := range p.trie.FindAll(string(buf)) {
			spans = append(spans, [2]int{m.Start(), m.End()})
		}
	case StrategyRegex:
		for _, loc := range p.re.FindAllIndex(buf, -1) {
			spans = append(spans, [2]int{loc[0], loc[1]})
		}
	}

	if len(spans) == 0 {
		return nil
	}
	matches := make([]LineMatch, 0, len(spans))
	for _, span := range spans {
		line := lines.Line(span[0])
		matches = append(matches, LineMatch{
			Line:        line,
			ByteOffset:  span[0],
			Text:        string(buf[span[0]:span[1]]),
			LineContent: lines.LineContent(line),
		})
	}
	return matches
}
