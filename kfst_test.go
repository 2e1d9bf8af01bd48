package kfst

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const textualFixture = "0\t1\ta\tx\t1.5\n1\n"

// TestFromTextualBytesRoundTripsThroughFile verifies the file-based
// textual constructors behave the same as their in-memory counterparts.
func TestFromTextualBytesRoundTripsThroughFile(t *testing.T) {
	tr, err := FromTextualBytes([]byte(textualFixture), false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "analyser.att")
	require.NoError(t, ToTextualFile(tr, path))

	fromFile, err := FromTextualFile(path, false)
	require.NoError(t, err)

	results1, err := tr.Lookup("a", 0, false)
	require.NoError(t, err)
	results2, err := fromFile.Lookup("a", 0, false)
	require.NoError(t, err)
	require.Equal(t, results1, results2)
}

// TestFromBinaryBytesRoundTripsThroughFile exercises the binary file
// constructors against the textual fixture re-encoded in binary form.
func TestFromBinaryBytesRoundTripsThroughFile(t *testing.T) {
	tr, err := FromTextualBytes([]byte(textualFixture), false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "analyser.kfst")
	require.NoError(t, ToBinaryFile(tr, path))

	fromFile, err := FromBinaryFile(path, false)
	require.NoError(t, err)

	results1, err := tr.Lookup("a", 0, false)
	require.NoError(t, err)
	results2, err := fromFile.Lookup("a", 0, false)
	require.NoError(t, err)
	require.Equal(t, results1, results2)
}

// TestFromTextualFileReturnsErrorOnMissingPath verifies the os.ReadFile
// failure path is surfaced rather than swallowed.
func TestFromTextualFileReturnsErrorOnMissingPath(t *testing.T) {
	_, err := FromTextualFile(filepath.Join(t.TempDir(), "missing.att"), false)
	require.Error(t, err)
}
