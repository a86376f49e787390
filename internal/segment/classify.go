package segment

// Tag is the classification of a single line, before any sticky
// block state (an open signature or disclaimer run) is applied.
type Tag int

const (
	TagPlain Tag = iota
	TagHeader
	TagSignatureOpen
	TagDisclaimerOpen
)

// Classify labels the line at lines[i]. It returns the tag, the line's
// quote depth, and, for headers, how many lines the matcher consumed
// (headers may wrap across a bounded lookahead window).
//
// Precedence when several tags could apply: header > disclaimer >
// signature. Quote depth is reported independently; a line at depth > 0
// that matches nothing is simply quoted. Signature openers are only
// recognized on unquoted lines and never on the very first line of the
// document, so a mail consisting of a lone salutation keeps its body.
func Classify(lines []string, i int, m Matchers) (Tag, int, int) {
	line := lines[i]
	depth := QuoteDepth(line)

	if n := m.MatchHeader(lines, i); n > 0 {
		return TagHeader, depth, n
	}
	if m.MatchDisclaimer(line) {
		return TagDisclaimerOpen, depth, 0
	}
	if depth == 0 && i > 0 && m.MatchSignature(line) {
		return TagSignatureOpen, depth, 0
	}
	return TagPlain, depth, 0
}
