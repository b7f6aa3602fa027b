// Package rans implements a byte-oriented range Asymmetric Numeral System
// (rANS) entropy coder. A static frequency model is built once from a
// corpus, and the encoder and decoder transform a single integer state
// register to represent the whole symbol stream, achieving compression
// close to the Shannon limit of the model.
//
// The compressed stream carries neither the model nor the input length;
// both must be handed to the decoder out of band by whatever system uses
// this package.
package rans

import (
	"github.com/pkg/errors"
)

const (
	// modelBits is the probability resolution. Frequencies are scaled so
	// they sum to 1<<modelBits, giving 4096 tokens to distribute over the
	// 256 byte values. Finest representable probability is 1/4096.
	modelBits = 12

	// stateBits is the width of the coder state register. Between symbols
	// the state is kept inside [lowBound, lowBound<<bitsPerChunk).
	stateBits = 31

	// bitsPerChunk is the renormalization granularity. The coder moves the
	// state one byte at a time, which is what makes the stream
	// byte-oriented.
	bitsPerChunk = 8

	encTotal = 1 << modelBits
	probMask = encTotal - 1
	lowBound = 1 << (stateBits - bitsPerChunk)
)

var (
	// ErrZeroFreq reports an attempt to encode a symbol the model assigns
	// zero probability, i.e. the model was not built from data containing
	// that symbol.
	ErrZeroFreq = errors.New("rans: symbol has zero frequency")

	// ErrCorrupt reports a decode that cannot proceed: a truncated stream,
	// the wrong model, or a wrong declared length.
	ErrCorrupt = errors.New("rans: corrupt stream")
)

// Compress encodes data with the given model and returns the compressed
// stream: renormalization bytes in encode order followed by the final
// 4-byte coder state, little-endian.
func Compress(m *Model, data []byte) ([]byte, error) {
	out, _, err := NewEncoder(m).Encode(data)
	return out, err
}

// Decompress decodes length bytes from a stream produced by Compress with
// the same model.
func Decompress(m *Model, comp []byte, length int) ([]byte, error) {
	return NewDecoder(m).Decode(comp, length)
}
