package locales

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLocales(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"da", "de", "en", "fr", "it", "ja", "nl", "pl"}, r.Locales())

	set, err := r.Get("en")
	require.NoError(t, err)
	assert.NotEmpty(t, set.Headers)
	assert.NotEmpty(t, set.Signatures)
	assert.NotEmpty(t, set.Disclaimers)
}

func TestGetUnknownLocale(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("xx")
	require.Error(t, err)

	var unknown *UnknownLocaleError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "xx", unknown.Code)
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"EN", "en"},
		{" de ", "de"},
		{"en-US", "en"},
		{"de-AT", "de"},
		{"deu", "de"},
		{"not-a-locale!", "not-a-locale!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Canonical(tt.in), "code %q", tt.in)
	}
}

func TestMergeOrderAndDedup(t *testing.T) {
	r := NewRegistry()

	m, err := r.Merge([]string{"de", "EN", "de-DE"}, "", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, m.Locales())
}

func TestMergeForceEnglishAppendsLast(t *testing.T) {
	r := NewRegistry()

	m, err := r.Merge([]string{"fr", "de"}, "", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"fr", "de", "en"}, m.Locales())

	// Already-present English keeps its caller-given position.
	m, err = r.Merge([]string{"en", "de"}, "", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "de"}, m.Locales())
}

func TestMergeUnknownLocaleFallsBackToDefault(t *testing.T) {
	r := NewRegistry()

	m, err := r.Merge([]string{"xx"}, "en", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, m.Locales())
}

func TestMergeUnknownLocaleWithoutDefaultFails(t *testing.T) {
	r := NewRegistry()

	_, err := r.Merge([]string{"xx"}, "", false)
	var unknown *UnknownLocaleError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "xx", unknown.Code)
}

func TestRegisterCustomLocale(t *testing.T) {
	r := NewRegistry()
	err := r.Register(PatternSet{
		Locale:  "sv",
		Headers: []string{`(?s)den\s.+?skrev\s.+?:`},
		Signatures: []string{
			`med vänliga hälsningar.*`,
		},
	})
	require.NoError(t, err)

	m, err := r.Merge([]string{"sv"}, "", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"sv"}, m.Locales())
	assert.True(t, m.MatchSignature("Med vänliga hälsningar"))
}

func TestRegisterRejectsBadPatternSet(t *testing.T) {
	r := NewRegistry()

	err := r.Register(PatternSet{Headers: []string{`ok`}})
	assert.ErrorContains(t, err, "locale code is required")

	err = r.Register(PatternSet{Locale: "xy", Headers: []string{`(unclosed`}})
	assert.ErrorContains(t, err, "header pattern")

	err = r.Register(PatternSet{Locale: "xy", Signatures: []string{`[bad`}})
	assert.ErrorContains(t, err, "signature pattern")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sv.yaml")
	data := "locale: sv\nheaders:\n  - '(?s)den\\s.+?skrev\\s.+?:'\nsignatures:\n  - 'hälsningar.*'\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	r := NewRegistry()
	require.NoError(t, r.LoadFile(path))

	set, err := r.Get("sv")
	require.NoError(t, err)
	assert.Len(t, set.Headers, 1)

	assert.Error(t, r.LoadFile(filepath.Join(dir, "missing.yaml")))
}
