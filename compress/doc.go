// Package compress provides the compressed-body codec used by the
// binary transducer format (format/binary).
//
// The wire format fixed by the binary codec is an xz-container LZMA2
// stream — the format Python's lzma.compress/lzma.decompress produce
// and consume by default, which is what the original KFST binary format
// this package is compatible with actually writes. The interfaces here
// mirror a Compressor/Decompressor/Codec split so that a second codec
// could be added later without touching format/binary, even though only
// one concrete implementation is wired up today: the wire format is
// fixed by spec, so there is no second caller for a different algorithm
// to serve.
package compress
