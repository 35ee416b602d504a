package lexicon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	lx, err := Load()
	require.NoError(t, err)

	require.Equal(t, 1, lx.Version)
	require.Len(t, lx.Cues, 12)
	require.Contains(t, lx.Cues, "just what i needed")
	require.Equal(t, []string{"not", "but", "though", "however", "although"}, lx.Contrast)
	require.Len(t, lx.Positive, 8)
	require.Len(t, lx.Negative, 8)
	require.Equal(t, []string{"ok", "fine", "thanks", "good"}, lx.Polite)
	require.Equal(t, []string{"stupid", "bad", "dumb", "ugly", "taste"}, lx.Rude)
	require.ElementsMatch(t, []string{"not", "never", "no", "don’t"}, lx.Negation)
	require.Equal(t, "i", lx.Self)
}

func TestTermsDedupesAcrossLists(t *testing.T) {
	lx := MustLoad()
	// bad, ugly, love, great, perfect, amazing and not appear in more than one list
	total := len(lx.Cues) + len(lx.Contrast) + len(lx.Positive) + len(lx.Negative) +
		len(lx.Polite) + len(lx.Rude) + len(lx.Negation)
	require.Less(t, lx.Terms(), total)
}

func TestParseCleansTerms(t *testing.T) {
	lx, err := Parse([]byte(`{
		"version": 1,
		"cues": [" Sure ", "sure", ""],
		"contrast": ["but"],
		"positive": ["nice"],
		"negative": ["sad"],
		"polite": ["ok"],
		"rude": ["dumb"],
		"negation": ["no"],
		"self": " I "
	}`))
	require.NoError(t, err)
	require.Equal(t, []string{"sure"}, lx.Cues)
	require.Equal(t, "i", lx.Self)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"bad json":      `{`,
		"wrong version": `{"version": 2}`,
		"empty list":    `{"version":1,"cues":[],"contrast":["a"],"positive":["a"],"negative":["a"],"polite":["a"],"rude":["a"],"negation":["a"],"self":"i"}`,
		"no self":       `{"version":1,"cues":["a"],"contrast":["a"],"positive":["a"],"negative":["a"],"polite":["a"],"rude":["a"],"negation":["a"]}`,
	}
	for name, raw := range cases {
		_, err := Parse([]byte(raw))
		require.Error(t, err, name)
	}
}
