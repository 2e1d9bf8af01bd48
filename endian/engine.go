// Package endian provides the byte-order engine the binary transducer
// format's fixed-layout integers are read and written through.
//
// This extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder into a single interface, the way mebo's
// endian package does for its configurable-byte-order blobs. Unlike
// mebo's blobs, the binary transducer wire format fixes its byte order
// to big-endian with no host-endianness selection, so this package
// exposes only that one engine rather than mebo's full little/big/host
// selection surface.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from the standard
// library into a single interface for convenient byte-order operations.
// binary.BigEndian satisfies it directly.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// BigEndianEngine returns the engine the binary transducer format is
// fixed to.
func BigEndianEngine() EndianEngine {
	return binary.BigEndian
}
