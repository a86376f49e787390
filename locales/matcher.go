package locales

import (
	"fmt"
	"regexp"

	"github.com/inboxkit/replyparser/internal/segment"
)

// HeaderLookahead is how many extra lines a header matcher may consume
// beyond the line it starts on, for clients that wrap the
// "On DATE, NAME wrote:" line.
const HeaderLookahead = 2

// Locale-independent matchers, folded in after every locale's own.
var (
	// "-----Original Message-----" style separators.
	builtinHeaders = []string{
		`-{5,} ?original message ?-{5,}`,
	}
	// The "--" delimiter line, one-dash signatures ("-John") and the
	// 32+ underscore Outlook separator.
	builtinSignatures = []string{
		`[-_]{2}`,
		`- ?\w.*`,
		`[-_]{32,} ?`,
	}
)

// MatcherSet is the compiled union of one or more pattern sets, built
// once per parser and shared read-only by every parse.
type MatcherSet struct {
	locales     []string
	headers     []*regexp.Regexp
	signatures  []*regexp.Regexp
	disclaimers []*regexp.Regexp
}

var _ segment.Matchers = (*MatcherSet)(nil)

func newMatcherSet(sets []*PatternSet) (*MatcherSet, error) {
	m := &MatcherSet{}
	compile := func(dst *[]*regexp.Regexp, patterns []string, f func(string) (*regexp.Regexp, error)) error {
		for _, p := range patterns {
			re, err := f(p)
			if err != nil {
				return err
			}
			*dst = append(*dst, re)
		}
		return nil
	}

	for _, set := range sets {
		m.locales = append(m.locales, set.Locale)
		if err := compile(&m.headers, set.Headers, compileHeader); err != nil {
			return nil, fmt.Errorf("locale %s: %w", set.Locale, err)
		}
		if err := compile(&m.signatures, set.Signatures, compileLine); err != nil {
			return nil, fmt.Errorf("locale %s: %w", set.Locale, err)
		}
		if err := compile(&m.disclaimers, set.Disclaimers, compileOpener); err != nil {
			return nil, fmt.Errorf("locale %s: %w", set.Locale, err)
		}
	}
	if err := compile(&m.headers, builtinHeaders, compileHeader); err != nil {
		return nil, err
	}
	if err := compile(&m.signatures, builtinSignatures, compileLine); err != nil {
		return nil, err
	}
	return m, nil
}

// Locales returns the merged locale codes in evaluation order.
func (m *MatcherSet) Locales() []string {
	return append([]string(nil), m.locales...)
}

// MatchHeader reports how many lines starting at lines[start] form a
// quote header. Matchers run in locale order, each trying the smallest
// lookahead window first; the window never grows across a blank line or
// a change in quote-depth class, and a header that would need lines
// beyond end-of-input simply does not match.
func (m *MatcherSet) MatchHeader(lines []string, start int) int {
	if start >= len(lines) || lines[start] == "" {
		return 0
	}
	maxWindow := len(lines) - start
	if maxWindow > HeaderLookahead+1 {
		maxWindow = HeaderLookahead + 1
	}
	quoted := segment.QuoteDepth(lines[start]) > 0

	for _, re := range m.headers {
		window := lines[start]
		for n := 1; n <= maxWindow; n++ {
			if n > 1 {
				next := lines[start+n-1]
				if next == "" || (segment.QuoteDepth(next) > 0) != quoted {
					break
				}
				window += "\n" + next
			}
			if re.MatchString(window) {
				return n
			}
		}
	}
	return 0
}

// MatchSignature reports whether an unquoted line opens a signature
// block.
func (m *MatcherSet) MatchSignature(line string) bool {
	for _, re := range m.signatures {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// MatchDisclaimer reports whether a line opens a disclaimer block.
func (m *MatcherSet) MatchDisclaimer(line string) bool {
	for _, re := range m.disclaimers {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// quotePrefix lets every pattern match inside quoted lines, mirroring
// how mail clients re-quote headers of embedded replies.
const quotePrefix = `(?:> ?)*`

// compileHeader anchors a header pattern to cover its whole lookahead
// window, so trailing text on the last line defeats the match.
func compileHeader(p string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\A` + quotePrefix + `(?:` + p + `)\z`)
}

// compileLine anchors a signature pattern to cover the whole line.
func compileLine(p string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\A` + quotePrefix + `(?:` + p + `)\z`)
}

// compileOpener anchors a disclaimer pattern to the start of the line
// only; the rest of the line is part of the disclaimer anyway.
func compileOpener(p string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\A` + quotePrefix + `(?:` + p + `)`)
}
