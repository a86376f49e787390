// Package locales holds the per-language pattern dictionaries the
// parser matches quote headers, signatures and disclaimers with.
// Pattern sets are data, not code: the built-in languages ship as
// embedded YAML files under patterns/, and callers add a language by
// registering another file, never by changing the engine.
package locales

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed patterns/*.yaml
var builtinFS embed.FS

// DefaultLocale is the fallback language and the set folded in last
// when a matcher set is built with English forced.
const DefaultLocale = "en"

// PatternSet is one language's matcher dictionary. The three lists are
// ordered: earlier patterns win ambiguous matches. Patterns are Go
// regular expressions; see MatcherSet for how they are anchored.
type PatternSet struct {
	Locale      string   `yaml:"locale"`
	Headers     []string `yaml:"headers"`
	Signatures  []string `yaml:"signatures"`
	Disclaimers []string `yaml:"disclaimers"`
}

// Validate checks the locale code and compiles every pattern the way
// the matcher will, so a bad set is rejected at registration time
// rather than at first parse.
func (s *PatternSet) Validate() error {
	if strings.TrimSpace(s.Locale) == "" {
		return fmt.Errorf("pattern set: locale code is required")
	}
	for _, p := range s.Headers {
		if _, err := compileHeader(p); err != nil {
			return fmt.Errorf("locale %s: header pattern %q: %w", s.Locale, p, err)
		}
	}
	for _, p := range s.Signatures {
		if _, err := compileLine(p); err != nil {
			return fmt.Errorf("locale %s: signature pattern %q: %w", s.Locale, p, err)
		}
	}
	for _, p := range s.Disclaimers {
		if _, err := compileOpener(p); err != nil {
			return fmt.Errorf("locale %s: disclaimer pattern %q: %w", s.Locale, p, err)
		}
	}
	return nil
}

// UnknownLocaleError reports a requested locale code that is not
// registered while no default locale is configured to fall back to.
type UnknownLocaleError struct {
	Code string
}

func (e *UnknownLocaleError) Error() string {
	return fmt.Sprintf("unknown locale %q and no default locale configured", e.Code)
}

// Registry maps locale codes to their pattern sets. It is read-only
// after setup and safe to share across concurrent parses.
type Registry struct {
	sets map[string]*PatternSet
}

// NewRegistry returns a registry preloaded with the built-in pattern
// sets. The embedded data is part of the build; a set that fails to
// load is a packaging bug, so loading panics rather than erroring.
func NewRegistry() *Registry {
	r := &Registry{sets: make(map[string]*PatternSet)}
	entries, err := builtinFS.ReadDir("patterns")
	if err != nil {
		panic(fmt.Sprintf("locales: reading embedded patterns: %v", err))
	}
	for _, entry := range entries {
		data, err := builtinFS.ReadFile("patterns/" + entry.Name())
		if err != nil {
			panic(fmt.Sprintf("locales: reading %s: %v", entry.Name(), err))
		}
		var set PatternSet
		if err := yaml.Unmarshal(data, &set); err != nil {
			panic(fmt.Sprintf("locales: parsing %s: %v", entry.Name(), err))
		}
		if err := r.Register(set); err != nil {
			panic(fmt.Sprintf("locales: registering %s: %v", entry.Name(), err))
		}
	}
	return r
}

// Register validates a pattern set and adds it under its canonical
// locale code, replacing any previous set for that code.
func (r *Registry) Register(set PatternSet) error {
	if err := set.Validate(); err != nil {
		return err
	}
	set.Locale = Canonical(set.Locale)
	r.sets[set.Locale] = &set
	return nil
}

// LoadFile registers a pattern set from a YAML file. This is the
// extension point for adding a language without touching the engine.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading pattern file: %w", err)
	}
	var set PatternSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("parsing pattern file %s: %w", path, err)
	}
	return r.Register(set)
}

// Get returns the pattern set for a locale code, or an
// UnknownLocaleError if the code is not registered.
func (r *Registry) Get(code string) (*PatternSet, error) {
	if set, ok := r.sets[Canonical(code)]; ok {
		return set, nil
	}
	return nil, &UnknownLocaleError{Code: code}
}

// Locales lists the registered locale codes, sorted.
func (r *Registry) Locales() []string {
	codes := make([]string, 0, len(r.sets))
	for code := range r.sets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Merge builds the matcher set for a parse request. Requested codes
// keep their order and duplicates are dropped; an unknown code resolves
// to defaultLocale when one is given and fails otherwise. With
// forceEnglish the English set is appended last unless already present,
// so caller-specified locales win ambiguous matches.
func (r *Registry) Merge(codes []string, defaultLocale string, forceEnglish bool) (*MatcherSet, error) {
	var sets []*PatternSet
	seen := make(map[string]bool)

	add := func(code string) error {
		set, err := r.Get(code)
		if err != nil {
			if defaultLocale == "" {
				return err
			}
			if set, err = r.Get(defaultLocale); err != nil {
				return fmt.Errorf("default locale: %w", err)
			}
		}
		if seen[set.Locale] {
			return nil
		}
		seen[set.Locale] = true
		sets = append(sets, set)
		return nil
	}

	for _, code := range codes {
		if err := add(code); err != nil {
			return nil, err
		}
	}
	if forceEnglish && !seen[DefaultLocale] {
		if err := add(DefaultLocale); err != nil {
			return nil, err
		}
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("merge: no locales requested")
	}
	return newMatcherSet(sets)
}

// Canonical normalizes a locale code: trimmed, lowercased, and reduced
// to its base language ("en-US" and "EN" both become "en"). Codes the
// language parser rejects pass through lowercased, so custom
// registry keys keep working.
func Canonical(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if tag, err := language.Parse(code); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	return code
}
