package symbol_test

import (
	"testing"

	"github.com/fergusq/kfst-go/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	s, err := symbol.Parse("kissa")
	require.NoError(t, err)
	assert.Equal(t, "kissa", s.Text())
	assert.False(t, s.IsEpsilon())
	assert.False(t, s.IsUnknown())
}

func TestParseSpecial(t *testing.T) {
	for _, tc := range []struct {
		text    string
		epsilon bool
	}{
		{"@0@", true},
		{"@_EPSILON_SYMBOL_@", true},
		{"@_IDENTITY_SYMBOL_@", false},
		{"@_UNKNOWN_SYMBOL_@", false},
	} {
		s, err := symbol.Parse(tc.text)
		require.NoError(t, err)
		assert.Equal(t, tc.epsilon, s.IsEpsilon(), tc.text)
	}

	eps, _ := symbol.Parse("@0@")
	assert.Equal(t, symbol.Epsilon(), eps)
	eps2, _ := symbol.Parse("@_EPSILON_SYMBOL_@")
	assert.Equal(t, symbol.Epsilon(), eps2)
}

func TestParseFlagTwoParam(t *testing.T) {
	s, err := symbol.Parse("@U.case.nom@")
	require.NoError(t, err)
	assert.True(t, s.IsEpsilon())
	fk, key, value, hasValue, ok := s.Flag()
	require.True(t, ok)
	assert.Equal(t, symbol.FlagUnify, fk)
	assert.Equal(t, "case", key)
	assert.Equal(t, "nom", value)
	assert.True(t, hasValue)
	assert.Equal(t, "@U.case.nom@", s.Text())
}

func TestParseFlagOneParam(t *testing.T) {
	s, err := symbol.Parse("@R.case@")
	require.NoError(t, err)
	fk, key, _, hasValue, ok := s.Flag()
	require.True(t, ok)
	assert.Equal(t, symbol.FlagRequire, fk)
	assert.Equal(t, "case", key)
	assert.False(t, hasValue)
	assert.Equal(t, "@R.case@", s.Text())
}

func TestParseNotAFlagWhenTooShort(t *testing.T) {
	// "@U.@" has length 4, not > 4, so it must fall back to String.
	s, err := symbol.Parse("@U.@")
	require.NoError(t, err)
	assert.False(t, s.IsFlag())
	assert.Equal(t, "@U.@", s.Text())
}

func TestSymbolEquality(t *testing.T) {
	a := symbol.NewString("a", false)
	b := symbol.NewString("a", false)
	c := symbol.NewString("a", true)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, symbol.Epsilon(), symbol.Epsilon())
	assert.NotEqual(t, symbol.Epsilon(), symbol.Identity())
}

func TestSortByDescendingLength(t *testing.T) {
	syms := []symbol.Symbol{
		symbol.NewString("a", false),
		symbol.NewString("ab", false),
		symbol.NewString("abc", false),
	}
	symbol.SortByDescendingLength(syms)
	require.Len(t, syms, 3)
	assert.Equal(t, "abc", syms[0].Text())
	assert.Equal(t, "ab", syms[1].Text())
	assert.Equal(t, "a", syms[2].Text())
}

func TestSortByLengthThenText(t *testing.T) {
	syms := []symbol.Symbol{
		symbol.NewString("b", false),
		symbol.NewString("aa", false),
		symbol.NewString("a", false),
	}
	symbol.SortByLengthThenText(syms)
	got := []string{syms[0].Text(), syms[1].Text(), syms[2].Text()}
	assert.Equal(t, []string{"a", "b", "aa"}, got)
}

func TestRawSymbol(t *testing.T) {
	var payload [symbol.RawPayloadLen]byte
	payload[0] = 0b11
	s := symbol.NewRaw(payload)
	assert.True(t, s.IsEpsilon())
	assert.True(t, s.IsUnknown())
}
