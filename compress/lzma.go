package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/fergusq/kfst-go/errs"
)

// LZMACodec compresses and decompresses the xz-container LZMA2 stream
// used by the binary transducer format's body. It is stateless and safe
// for concurrent use.
type LZMACodec struct{}

var _ Codec = LZMACodec{}

// NewLZMACodec returns the LZMA/xz codec used by format/binary.
func NewLZMACodec() LZMACodec { return LZMACodec{} }

// Compress returns data compressed into an xz stream.
func (LZMACodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressionFailure, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressionFailure, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressionFailure, err)
	}
	return buf.Bytes(), nil
}

// Decompress reads an xz stream and returns its decompressed contents.
func (LZMACodec) Decompress(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressionFailure, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressionFailure, err)
	}
	return out, nil
}
