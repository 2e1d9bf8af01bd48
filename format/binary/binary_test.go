package binary_test

import (
	"testing"

	"github.com/fergusq/kfst-go/errs"
	"github.com/fergusq/kfst-go/format"
	"github.com/fergusq/kfst-go/format/binary"
	"github.com/fergusq/kfst-go/symbol"
	"github.com/fergusq/kfst-go/transducer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTransducer(t *testing.T) *transducer.Transducer {
	t.Helper()
	a := symbol.NewString("a", false)
	b := symbol.NewString("b", false)
	x := symbol.NewString("x", false)

	return transducer.FromRules(
		map[uint32]float64{2: 0.5},
		map[uint32]map[symbol.Symbol][]transducer.Transition{
			0: {a: {{To: 1, Out: x, Weight: 1.25}}},
			1: {b: {{To: 2, Out: b, Weight: 0}}},
		},
		[]symbol.Symbol{a, b, x},
		false,
	)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tr := smallTransducer(t)

	encoded, err := binary.Encode(tr)
	require.NoError(t, err)
	require.True(t, len(encoded) >= 4)
	assert.Equal(t, format.BinaryMagic, string(encoded[0:4]))

	decoded, err := binary.Decode(encoded, false)
	require.NoError(t, err)

	results1, err := tr.Lookup("ab", 0, false)
	require.NoError(t, err)
	results2, err := decoded.Lookup("ab", 0, false)
	require.NoError(t, err)
	assert.Equal(t, results1, results2)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	tr := smallTransducer(t)
	encoded, err := binary.Encode(tr)
	require.NoError(t, err)

	corrupt := append([]byte(nil), encoded...)
	corrupt[0] = 'X'

	_, err = binary.Decode(corrupt, false)
	assert.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	tr := smallTransducer(t)
	encoded, err := binary.Encode(tr)
	require.NoError(t, err)

	corrupt := append([]byte(nil), encoded...)
	corrupt[4] = 0xFF
	corrupt[5] = 0xFF

	_, err = binary.Decode(corrupt, false)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, err := binary.Decode([]byte("KFS"), false)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedBody(t *testing.T) {
	tr := smallTransducer(t)
	encoded, err := binary.Encode(tr)
	require.NoError(t, err)

	_, err = binary.Decode(encoded[:len(encoded)-4], false)
	assert.Error(t, err)
}

// TestEncodeRefusesOversizedAlphabet exercises the symbol-count capacity
// boundary at the value the wire format's 16-bit header field can
// actually hold (65535), not the literal 65536 round number: a count of
// 65536 would wrap to zero in that field, so the boundary enforced here
// is one below the nominal 2^16 index space.
func TestEncodeRefusesOversizedAlphabet(t *testing.T) {
	symbols := make([]symbol.Symbol, format.MaxSymbols)
	for i := range symbols {
		symbols[i] = symbol.NewString(syntheticSymbolText(i), false)
	}
	finalStates := map[uint32]float64{0: 0}
	rules := map[uint32]map[symbol.Symbol][]transducer.Transition{}

	tr := transducer.FromRules(finalStates, rules, symbols, false)
	_, err := binary.Encode(tr)
	require.NoError(t, err)

	symbols = append(symbols, symbol.NewString(syntheticSymbolText(len(symbols)), false))
	tr = transducer.FromRules(finalStates, rules, symbols, false)
	_, err = binary.Encode(tr)
	require.Error(t, err)

	var capErr *format.CapacityError
	assert.ErrorAs(t, err, &capErr)
}

func syntheticSymbolText(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	var b []byte
	b = append(b, letters[i%26])
	b = append(b, letters[(i/26)%26])
	b = append(b, letters[(i/26/26)%26])
	b = append(b, letters[(i/26/26/26)%26])
	return string(b)
}

func TestEncodeOmitsWeightFieldWhenUnweighted(t *testing.T) {
	a := symbol.NewString("a", false)
	tr := transducer.FromRules(
		map[uint32]float64{1: 0},
		map[uint32]map[symbol.Symbol][]transducer.Transition{
			0: {a: {{To: 1, Out: a, Weight: 0}}},
		},
		[]symbol.Symbol{a},
		false,
	)

	encoded, err := binary.Encode(tr)
	require.NoError(t, err)
	assert.Equal(t, byte(0), encoded[16])

	decoded, err := binary.Decode(encoded, false)
	require.NoError(t, err)
	results, err := decoded.Lookup("a", 0, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, float64(0), results[0].Weight)
}
