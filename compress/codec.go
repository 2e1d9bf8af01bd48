package compress

// Compressor compresses a complete byte buffer in one call.
//
// There are no files or descriptors held across calls: every Compressor
// implementation consumes its whole input and returns its whole output
// in a single round trip, matching the binary codec's "decoders consume
// an entire byte buffer in one call; encoders produce an entire byte
// buffer in one call" resource model.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a complete byte buffer in one call.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of a single compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}
