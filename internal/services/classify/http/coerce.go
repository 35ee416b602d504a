package http

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// CoerceText turns the raw text value into the string the model sees
// falsy JSON values (absent, null, false, 0, "", [], {}) report ok=false
// strings pass through; everything else is rendered as repr text, the form the
// training data used for non string cells: true -> "True", 1.50 -> "1.5",
// ["a", null] -> "['a', None]", {"k": 1} -> "{'k': 1}"
func CoerceText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, s != ""
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	text, err := reprValue(dec)
	if err != nil {
		return "", false
	}
	switch text {
	case "None", "False", "[]", "{}":
		return "", false
	}
	if raw[0] != '[' && raw[0] != '{' {
		if f, err := strconv.ParseFloat(text, 64); err == nil && f == 0 {
			return "", false
		}
	}
	return text, true
}

// reprValue renders the next JSON value on dec; objects keep first-seen key order
// and a repeated key keeps its position with the last value
func reprValue(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			var parts []string
			for dec.More() {
				s, err := reprValue(dec)
				if err != nil {
					return "", err
				}
				parts = append(parts, s)
			}
			if _, err := dec.Token(); err != nil {
				return "", err
			}
			return "[" + strings.Join(parts, ", ") + "]", nil
		}
		var keys []string
		vals := map[string]string{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return "", err
			}
			k, _ := kt.(string)
			s, err := reprValue(dec)
			if err != nil {
				return "", err
			}
			if _, seen := vals[k]; !seen {
				keys = append(keys, k)
			}
			vals[k] = s
		}
		if _, err := dec.Token(); err != nil {
			return "", err
		}
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = reprString(k) + ": " + vals[k]
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	case string:
		return reprString(v), nil
	case json.Number:
		return reprNumber(v), nil
	case bool:
		if v {
			return "True", nil
		}
		return "False", nil
	default:
		return "None", nil
	}
}

// reprNumber keeps integer literals and renders the rest as shortest floats
func reprNumber(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if strings.TrimLeft(s, "-0") == "" {
			return "0"
		}
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return s
	}
	return reprFloat(f)
}

// reprFloat uses fixed notation for decimal exponents in [-4, 16) and always shows a fraction
func reprFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if f != 0 && (exp < -4 || exp >= 16) {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// reprString single quotes s unless it holds a single quote and no double quote
func reprString(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < ' ' || r == 0x7f:
			b.WriteString(`\x` + hex2(int(r)))
		case r < 0x7f || unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			b.WriteString(`\x` + hex2(int(r)))
		case r <= 0xffff:
			b.WriteString(`\u` + pad(strconv.FormatInt(int64(r), 16), 4))
		default:
			b.WriteString(`\U` + pad(strconv.FormatInt(int64(r), 16), 8))
		}
	}
	b.WriteRune(quote)
	return b.String()
}

func hex2(v int) string { return pad(strconv.FormatInt(int64(v), 16), 2) }

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
