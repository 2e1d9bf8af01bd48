package att_test

import (
	"testing"

	"github.com/fergusq/kfst-go/format/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTextualWithEscapedSeparators(t *testing.T) {
	data := "4\n0\t1\t@_TAB_@\ta\n1\t2\tb\t@_TAB_@x\n2\t3\t@_SPACE_@\tc\n3\t4\td\t@_SPACE_@\n"

	tr, err := att.Decode([]byte(data), false)
	require.NoError(t, err)

	results, err := tr.Lookup("\tb d", 0, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a\txc ", results[0].Output)
	assert.Equal(t, float64(0), results[0].Weight)
}

func TestDecodeRejectsMalformedLine(t *testing.T) {
	_, err := att.Decode([]byte("0\t1\ttoo\tfew\tfields\ttoo\tmany\n"), false)
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedField(t *testing.T) {
	_, err := att.Decode([]byte("notanumber\n"), false)
	assert.Error(t, err)
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	tr, err := att.Decode([]byte("\n\n4\n\n"), false)
	require.NoError(t, err)
	w, ok := tr.IsFinal(4)
	require.True(t, ok)
	assert.Equal(t, float64(0), w)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := "4\n0\t1\t@_TAB_@\ta\n1\t2\tb\t@_TAB_@x\n2\t3\t@_SPACE_@\tc\n3\t4\td\t@_SPACE_@\t1.5\n"

	tr, err := att.Decode([]byte(data), false)
	require.NoError(t, err)

	reEncoded := att.Encode(tr)
	tr2, err := att.Decode(reEncoded, false)
	require.NoError(t, err)

	results1, err := tr.Lookup("\tb d", 0, true)
	require.NoError(t, err)
	results2, err := tr2.Lookup("\tb d", 0, true)
	require.NoError(t, err)
	assert.Equal(t, results1, results2)
}

func TestEncodeOmitsZeroWeights(t *testing.T) {
	tr, err := att.Decode([]byte("0\n"), false)
	require.NoError(t, err)
	encoded := string(att.Encode(tr))
	assert.Equal(t, "0\n", encoded)
}
