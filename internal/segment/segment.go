// Package segment labels the lines of a decoded mail body and groups
// them into maximal same-role runs. It has no knowledge of locales;
// pattern matching is supplied through the Matchers interface.
package segment

import "strings"

// Role is the tag a segment carries.
type Role int

const (
	RoleNewContent Role = iota // text authored in this reply
	RoleHeader                 // "On ... wrote:" style quote header
	RoleQuoted                 // ">"-prefixed quoted content
	RoleSignature              // closing salutation block
	RoleDisclaimer             // legal boilerplate block
)

func (r Role) String() string {
	switch r {
	case RoleNewContent:
		return "new-content"
	case RoleHeader:
		return "header"
	case RoleQuoted:
		return "quoted"
	case RoleSignature:
		return "signature"
	case RoleDisclaimer:
		return "disclaimer"
	default:
		return "unknown"
	}
}

// Segment is a maximal run of lines sharing one role. Concatenating the
// lines of all segments in order reproduces the normalized input text
// exactly; no line is dropped or duplicated.
type Segment struct {
	Role  Role
	Start int // index of the segment's first line in the normalized text
	Lines []string
}

// Text joins the segment's lines back into their original text.
func (s Segment) Text() string { return strings.Join(s.Lines, "\n") }

// Matchers is the compiled pattern surface the classifier needs.
// locales.MatcherSet implements it.
type Matchers interface {
	// MatchHeader reports how many lines starting at lines[start] form a
	// quote header, or 0 if none do.
	MatchHeader(lines []string, start int) int
	// MatchSignature reports whether line opens a signature block.
	MatchSignature(line string) bool
	// MatchDisclaimer reports whether line opens a disclaimer block.
	MatchDisclaimer(line string) bool
}

// Normalize prepares a raw body for segmentation: CRLF line endings
// become LF and every line loses its leading and trailing whitespace.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// QuoteDepth counts the leading ">" quote markers of a line. Markers
// may be separated by single spaces ("> > text" is depth 2).
func QuoteDepth(line string) int {
	depth := 0
	for i := 0; i < len(line); {
		switch {
		case line[i] == '>':
			depth++
			i++
		case line[i] == ' ' && depth > 0 && i+1 < len(line) && line[i+1] == '>':
			i++
		default:
			return depth
		}
	}
	return depth
}
