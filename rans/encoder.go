package rans

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Encoder compresses byte sequences against a shared immutable Model.
//
// Renormalization bytes are appended in the same order symbols are
// consumed, with no buffer reversal at encode time. This keeps the
// encoder's working memory minimal; the decoder is the side that reads the
// stream back to front.
type Encoder struct {
	model *Model
	low   uint64 // lower bound of the valid state interval
}

// NewEncoder creates an encoder for the given model.
func NewEncoder(m *Model) *Encoder {
	return &Encoder{model: m, low: lowBound}
}

// Encode compresses data and returns the stream together with the final
// coder state. The state is also the trailing 4 bytes of the stream,
// little-endian; it is returned separately for hosts that track it on
// their own.
//
// Encoding a symbol with zero frequency in the model fails with
// ErrZeroFreq and produces no output.
func (e *Encoder) Encode(data []byte) ([]byte, uint64, error) {
	x := e.low
	out := make([]byte, 0, len(data)/2+4)

	for i, b := range data {
		f := uint64(e.model.Freq(b))
		if f == 0 {
			return nil, 0, errors.Wrapf(ErrZeroFreq, "symbol %#02x at offset %d", b, i)
		}

		// Flush bytes until the encode step below cannot push the state
		// past its upper bound. The state fits a 31-bit register but the
		// intermediate multiply needs 64-bit headroom.
		bound := ((e.low >> modelBits) << bitsPerChunk) * f
		for x >= bound {
			out = append(out, byte(x))
			x >>= bitsPerChunk
		}

		// C(x,s) = (x/f << modelBits) + x%f + cdf[s]
		x = (x/f)<<modelBits + x%f + uint64(e.model.Cdf(b))
	}

	out = binary.LittleEndian.AppendUint32(out, uint32(x))
	return out, x, nil
}
