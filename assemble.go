package replyparser

import (
	"strings"

	"github.com/inboxkit/replyparser/internal/segment"
)

// assemble folds the tagged segment stream into reply records. Every
// new-content segment starts a reply that extends through the header,
// quoted, signature and disclaimer segments following it; a leading run
// with no new-content (a pure forward) still forms its own reply.
func assemble(segs []segment.Segment) []Reply {
	var groups [][]segment.Segment
	for _, sg := range segs {
		if sg.Role == segment.RoleNewContent || len(groups) == 0 {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], sg)
	}

	replies := make([]Reply, 0, len(groups))
	for _, group := range groups {
		replies = append(replies, buildReply(group))
	}
	return replies
}

func buildReply(group []segment.Segment) Reply {
	var reply Reply
	var all, full, body []string

	for _, sg := range group {
		all = append(all, sg.Lines...)
		if sg.Role != segment.RoleHeader {
			full = append(full, sg.Lines...)
		}
		if sg.Role == segment.RoleNewContent {
			body = append(body, sg.Lines...)
		}

		switch sg.Role {
		case segment.RoleHeader:
			reply.Headers = appendBlock(reply.Headers, sg)
		case segment.RoleSignature:
			reply.Signatures = appendBlock(reply.Signatures, sg)
		case segment.RoleDisclaimer:
			reply.Disclaimers = appendBlock(reply.Disclaimers, sg)
		}
	}

	reply.Content = strings.Join(all, "\n")
	reply.FullBody = collapseEdges(strings.Join(full, "\n"))
	reply.Body = collapseEdges(strings.Join(body, "\n"))
	return reply
}

func appendBlock(dst []string, sg segment.Segment) []string {
	if text := strings.TrimSpace(sg.Text()); text != "" {
		dst = append(dst, text)
	}
	return dst
}

// collapseEdges removes the blank lines the engine attributed to a
// segment edge: every leading blank line and at most one trailing
// blank line. Interior whitespace is kept verbatim so bodies round-trip
// predictably.
func collapseEdges(s string) string {
	s = strings.TrimLeft(s, "\n")
	return strings.TrimSuffix(s, "\n")
}
