// Package replyparser splits the plain-text body of an email thread
// into the sequence of distinct human-authored replies it contains,
// separating each reply's new content from quoted prior messages,
// locale-specific "wrote:" headers, signatures and legal disclaimers.
//
// The input must already be decoded plain text; fetching, charset and
// MIME handling are the caller's concern. A Parser is immutable once
// built and safe for concurrent use:
//
//	p, err := replyparser.NewParser(replyparser.Options{
//		Languages:      []string{"de"},
//		IncludeEnglish: true,
//	})
//	if err != nil { ... }
//	msg := p.Read(body)
//	latest := msg.LatestReply()
package replyparser

import (
	"fmt"
	"strings"

	"github.com/inboxkit/replyparser/internal/segment"
	"github.com/inboxkit/replyparser/locales"
)

// Options configures a Parser.
type Options struct {
	// Languages are the locale codes to match patterns for, in priority
	// order. Empty means the default language only.
	Languages []string

	// DefaultLanguage resolves requested codes that are not registered.
	// When empty, an unknown code makes NewParser fail with
	// locales.UnknownLocaleError.
	DefaultLanguage string

	// IncludeEnglish folds the English pattern set in last. Many
	// non-English mail clients still emit English-style headers for
	// embedded quotes, so this is usually wanted in multi-language
	// environments.
	IncludeEnglish bool

	// Registry overrides the built-in pattern registry, e.g. one with
	// extra locales registered. Nil uses the built-ins.
	Registry *locales.Registry
}

// Parser splits email bodies. It holds only compiled, read-only
// matcher state; parse calls are pure functions of their input.
type Parser struct {
	matchers  *locales.MatcherSet
	languages []string
}

// NewParser builds a parser for the configured locale set.
func NewParser(opts Options) (*Parser, error) {
	registry := opts.Registry
	if registry == nil {
		registry = locales.NewRegistry()
	}

	langs := opts.Languages
	if len(langs) == 0 {
		if opts.DefaultLanguage != "" {
			langs = []string{opts.DefaultLanguage}
		} else {
			langs = []string{locales.DefaultLocale}
		}
	}

	matchers, err := registry.Merge(langs, opts.DefaultLanguage, opts.IncludeEnglish)
	if err != nil {
		return nil, fmt.Errorf("building matcher set: %w", err)
	}
	return &Parser{matchers: matchers, languages: matchers.Locales()}, nil
}

// Languages returns the resolved locale codes in matcher order.
func (p *Parser) Languages() []string {
	return append([]string(nil), p.languages...)
}

// Read parses a mail body into its ordered replies, newest first in
// document order. Empty or whitespace-only input yields a Message with
// no replies; that is a data outcome, not an error.
func (p *Parser) Read(text string) *Message {
	normalized := segment.Normalize(text)
	msg := &Message{Text: normalized, Languages: p.Languages()}
	if strings.TrimSpace(normalized) == "" {
		return msg
	}
	msg.Replies = assemble(segment.Split(normalized, p.matchers))
	return msg
}

// ParseReply returns just the newest reply's body: the top-of-thread
// text with headers, quotes, signatures and disclaimers stripped. It
// is shorthand over Read, not a separate algorithm.
func (p *Parser) ParseReply(text string) string {
	return p.Read(text).LatestReply()
}

// Message is a parsed email body. It is read-only to the caller.
type Message struct {
	// Text is the normalized body the replies were cut from.
	Text string
	// Languages is the locale set the parse used.
	Languages []string
	// Replies in document order; the first is the newest.
	Replies []Reply
}

// LatestReply returns the first reply's body, or "" if the message has
// no replies.
func (m *Message) LatestReply() string {
	if len(m.Replies) == 0 {
		return ""
	}
	return m.Replies[0].Body
}

// Reply is one human-authored content block with the header, quoted,
// signature and disclaimer text attributed to it. All fields are fixed
// at parse time.
type Reply struct {
	// Content is the reply's raw text as written: headers, quotes,
	// signatures and disclaimers still present.
	Content string

	// FullBody is Content with the header segments removed.
	FullBody string

	// Body is the newly authored text only: headers, quoted content,
	// signatures and disclaimers all removed. May be empty, e.g. for a
	// pure forward.
	Body string

	// Headers, Signatures and Disclaimers are the matched blocks in
	// document order, whitespace-trimmed.
	Headers     []string
	Signatures  []string
	Disclaimers []string
}
