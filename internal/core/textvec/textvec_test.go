package textvec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func vocab(terms ...string) map[string]int {
	m := make(map[string]int, len(terms))
	for i, t := range terms {
		m[t] = i
	}
	return m
}

func TestCount_Basic(t *testing.T) {
	v, err := New(Config{Kind: KindCount, Vocabulary: vocab("great", "love", "this")})
	require.NoError(t, err)
	require.Equal(t, 3, v.Dim())
	require.Equal(t, KindCount, v.Kind())

	rows, err := v.Transform([]string{"Great, GREAT... love it", "nothing here"})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 1, 0}, rows[0])
	require.Equal(t, []float64{0, 0, 0}, rows[1])
}

func TestTFIDF_L2AndIDF(t *testing.T) {
	v, err := New(Config{
		Kind:       KindTFIDF,
		Vocabulary: vocab("great", "day"),
		IDF:        []float64{2, 1},
	})
	require.NoError(t, err)

	row := v.TransformOne("great day")
	// raw weights 2 and 1, l2 norm sqrt(5)
	require.InDelta(t, 2/math.Sqrt(5), row[0], 1e-12)
	require.InDelta(t, 1/math.Sqrt(5), row[1], 1e-12)

	var sq float64
	for _, x := range row {
		sq += x * x
	}
	require.InDelta(t, 1, sq, 1e-12)
}

func TestTFIDF_SublinearBinaryL1(t *testing.T) {
	sub, err := New(Config{Vocabulary: vocab("so", "good"), IDF: []float64{1, 1}, SublinearTF: true, Norm: ptr("")})
	require.NoError(t, err)
	require.InDelta(t, 1+math.Log(3), sub.TransformOne("so so so good")[0], 1e-12)

	bin, err := New(Config{Kind: KindCount, Vocabulary: vocab("so", "good"), Binary: true, Norm: ptr("l1")})
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 0.5}, bin.TransformOne("so so so good"))
}

func TestAnalyze_NgramsStopWordsAndPattern(t *testing.T) {
	v, err := New(Config{
		Kind:       KindCount,
		Vocabulary: vocab("thanks", "lot", "thanks lot"),
		NgramRange: [2]int{1, 2},
		StopWords:  []string{"a"},
	})
	require.NoError(t, err)
	// "a" is too short for the token pattern anyway; "x" likewise
	require.Equal(t, []string{"thanks", "lot", "thanks lot"}, v.Analyze("Thanks a lot x"))
	require.Equal(t, []float64{1, 1, 1}, v.TransformOne("thanks a lot"))

	bi, err := New(Config{Kind: KindCount, Vocabulary: vocab("oh wonderful"), NgramRange: [2]int{2, 2}})
	require.NoError(t, err)
	require.Equal(t, []string{"oh wonderful", "wonderful day"}, bi.Analyze("oh wonderful day"))

	custom, err := New(Config{Kind: KindCount, Vocabulary: vocab("a", "b"), TokenPattern: `(?u)\b\w+\b`})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1}, custom.TransformOne("a b"))

	keep, err := New(Config{Kind: KindCount, Vocabulary: vocab("Great", "great"), Lowercase: ptr(false)})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0}, keep.TransformOne("Great"))
}

func TestAnalyze_UnicodeWords(t *testing.T) {
	v, err := New(Config{Kind: KindCount, Vocabulary: vocab("café", "naïve")})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1}, v.TransformOne("Café, naïve!"))
}

func TestNew_Rejects(t *testing.T) {
	cases := map[string]Config{
		"empty vocab":      {},
		"bad kind":         {Kind: "hashing", Vocabulary: vocab("a")},
		"bad analyzer":     {Analyzer: "char", Vocabulary: vocab("a")},
		"sparse index":     {Kind: KindCount, Vocabulary: map[string]int{"a": 0, "b": 2}},
		"duplicate index":  {Kind: KindCount, Vocabulary: map[string]int{"a": 0, "b": 0}},
		"idf length":       {Vocabulary: vocab("a", "b"), IDF: []float64{1}},
		"bad norm":         {Kind: KindCount, Vocabulary: vocab("a"), Norm: ptr("max")},
		"bad ngram":        {Kind: KindCount, Vocabulary: vocab("a"), NgramRange: [2]int{2, 1}},
		"bad token regexp": {Kind: KindCount, Vocabulary: vocab("a"), TokenPattern: `(`},
	}
	for name, cfg := range cases {
		_, err := New(cfg)
		require.Error(t, err, name)
	}
}

func TestTFIDF_UseIDFOff(t *testing.T) {
	v, err := New(Config{Vocabulary: vocab("a1", "b2"), UseIDF: ptr(false)})
	require.NoError(t, err)
	row := v.TransformOne("a1")
	require.Equal(t, []float64{1, 0}, row)
}
