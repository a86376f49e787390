package segment

import "strings"

// Split walks the normalized text top to bottom and partitions it into
// ordered, non-overlapping segments. A boundary opens when the line's
// role differs from the open segment's, when quote depth crosses
// between 0 and >0, and after every header (headers never absorb the
// lines that follow them).
//
// Blank lines never force a boundary on their own: they attach to the
// segment they fall within. The one exception is a blank run between a
// quoted block and a return to unquoted plain text, which belongs to
// the new unquoted segment.
func Split(text string, m Matchers) []Segment {
	s := splitter{matchers: m, lines: strings.Split(text, "\n")}
	s.run()
	return s.segs
}

type stickyState int

const (
	stickyNone stickyState = iota
	stickySignature
	stickyDisclaimer
)

type splitter struct {
	matchers Matchers
	lines    []string
	segs     []Segment

	cur       *Segment
	curQuoted bool // quote-depth class (>0) of the open segment

	pending      []string // blank lines awaiting attribution
	pendingStart int

	sticky       stickyState
	stickyQuoted bool // depth class the open disclaimer run started at
}

func (s *splitter) run() {
	for i := 0; i < len(s.lines); {
		line := s.lines[i]
		if line == "" {
			if len(s.pending) == 0 {
				s.pendingStart = i
			}
			s.pending = append(s.pending, line)
			i++
			continue
		}

		tag, depth, consumed := Classify(s.lines, i, s.matchers)
		quoted := depth > 0

		if tag == TagHeader {
			s.sticky = stickyNone
			s.placeHeader(i, consumed, quoted)
			i += consumed
			continue
		}

		s.place(s.resolve(tag, quoted), quoted, i, line)
		i++
	}

	// Trailing blank lines close out whatever segment is open. A body
	// made of blank lines only still yields one lossless segment.
	if s.cur == nil && len(s.pending) > 0 {
		s.open(RoleNewContent, false, s.pendingStart)
	}
	s.absorbPending()
	s.close()
}

// resolve applies the sticky block state on top of the line's own tag.
// An open signature run extends until quoted content interrupts it; an
// open disclaimer run extends until the quote-depth class changes.
// Headers are handled before resolve is called and end either run.
func (s *splitter) resolve(tag Tag, quoted bool) Role {
	switch s.sticky {
	case stickySignature:
		if !quoted {
			return RoleSignature
		}
		s.sticky = stickyNone
	case stickyDisclaimer:
		if quoted == s.stickyQuoted {
			return RoleDisclaimer
		}
		s.sticky = stickyNone
	}

	switch tag {
	case TagDisclaimerOpen:
		s.sticky = stickyDisclaimer
		s.stickyQuoted = quoted
		return RoleDisclaimer
	case TagSignatureOpen:
		s.sticky = stickySignature
		return RoleSignature
	}
	if quoted {
		return RoleQuoted
	}
	return RoleNewContent
}

// placeHeader emits the consumed lines as a standalone header segment.
// Preceding blank lines stay with the segment before the header.
func (s *splitter) placeHeader(i, consumed int, quoted bool) {
	s.absorbPending()
	s.close()
	s.open(RoleHeader, quoted, i)
	s.absorbPending() // blanks at the very start of the document
	s.cur.Lines = append(s.cur.Lines, s.lines[i:i+consumed]...)
	s.close()
}

func (s *splitter) place(role Role, quoted bool, i int, line string) {
	if s.cur != nil && s.cur.Role == role && s.curQuoted == quoted {
		s.absorbPending()
		s.cur.Lines = append(s.cur.Lines, line)
		return
	}

	// Blank lines between a quoted block and returning unquoted text
	// lead the new segment; everywhere else they trail the old one.
	joinNew := s.cur == nil ||
		(role == RoleNewContent && !quoted && s.cur.Role == RoleQuoted)

	start := i
	if joinNew && len(s.pending) > 0 {
		start = s.pendingStart
	}
	if !joinNew {
		s.absorbPending()
	}
	s.close()
	s.open(role, quoted, start)
	if joinNew {
		s.absorbPending()
	}
	s.cur.Lines = append(s.cur.Lines, line)
}

func (s *splitter) open(role Role, quoted bool, start int) {
	s.cur = &Segment{Role: role, Start: start}
	s.curQuoted = quoted
}

func (s *splitter) close() {
	if s.cur != nil {
		s.segs = append(s.segs, *s.cur)
		s.cur = nil
	}
}

func (s *splitter) absorbPending() {
	if s.cur == nil || len(s.pending) == 0 {
		return
	}
	s.cur.Lines = append(s.cur.Lines, s.pending...)
	s.pending = nil
}
