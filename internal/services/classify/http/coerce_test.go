package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoerceText(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{``, "", false},
		{`null`, "", false},
		{`false`, "", false},
		{`0`, "", false},
		{`-0`, "", false},
		{`0.0`, "", false},
		{`-0.0`, "", false},
		{`""`, "", false},
		{`[]`, "", false},
		{`{}`, "", false},
		{`"  "`, "  ", true},
		{`"café"`, "café", true},
		{`true`, "True", true},
		{`42`, "42", true},
		{`-1.5`, "-1.5", true},
		{`1.50`, "1.5", true},
		{`1e2`, "100.0", true},
		{`1e16`, "1e+16", true},
		{`1e-05`, "1e-05", true},
		{`1e400`, "inf", true},
		{`123456789012345678901`, "123456789012345678901", true},
		{`["a", 1, 2.0, true, null]`, `['a', 1, 2.0, True, None]`, true},
		{`{"a":1}`, `{'a': 1}`, true},
		{`{"k": "it's", "b": [1, {}], "k2": "a\nb"}`, `{'k': "it's", 'b': [1, {}], 'k2': 'a\nb'}`, true},
		{`{"a":1,"b":2,"a":3}`, `{'a': 3, 'b': 2}`, true},
		{`["\u00e9\u00a0\t"]`, `['é\xa0\t']`, true},
	}
	for _, c := range cases {
		got, ok := CoerceText(json.RawMessage(c.raw))
		require.Equal(t, c.ok, ok, c.raw)
		require.Equal(t, c.want, got, c.raw)
	}
}
