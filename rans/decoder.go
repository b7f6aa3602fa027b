package rans

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Decoder reconstructs byte sequences from streams produced by an Encoder
// with the same Model.
type Decoder struct {
	model *Model
	low   uint64
	mask  uint64

	// slots maps every position in the normalized probability interval to
	// the symbol that owns it: slots[i] = s for i in [cdf(s), cdf(s+1)).
	slots [encTotal]byte
}

// NewDecoder creates a decoder for the given model. The inverse symbol
// table is built once here and reused across Decode calls.
func NewDecoder(m *Model) *Decoder {
	d := &Decoder{model: m, low: lowBound, mask: probMask}
	for s := 0; s < 256; s++ {
		for i := m.cdf[s]; i < m.cdf[s+1]; i++ {
			d.slots[i] = byte(s)
		}
	}
	return d
}

// Decode reconstructs length symbols from comp.
//
// The stream is consumed back to front: the encoder appends
// renormalization bytes in symbol order and flushes its final state last,
// so the decoder seeds its state from the tail and walks a cursor toward
// the head. Symbols come out in reverse and are written back to front into
// the output, restoring original order without an extra pass.
func (d *Decoder) Decode(comp []byte, length int) ([]byte, error) {
	if len(comp) < 4 {
		return nil, errors.Wrapf(ErrCorrupt, "stream too short for state: %d bytes", len(comp))
	}

	// The encoder wrote the state little-endian; reading the reversed
	// stream's first 4 bytes big-endian is the same as reading the tail
	// little-endian.
	pos := len(comp) - 4
	x := uint64(binary.LittleEndian.Uint32(comp[pos:]))

	out := make([]byte, length)
	for n := length - 1; n >= 0; n-- {
		s := d.slots[x&d.mask]
		f := uint64(d.model.Freq(s))
		if f == 0 {
			return nil, errors.Wrapf(ErrCorrupt, "slot %d maps to zero-frequency symbol %#02x", x&d.mask, s)
		}

		// D(x) = f[s]*(x >> modelBits) + (x & mask) - cdf[s]
		x = f*(x>>modelBits) + (x & d.mask) - uint64(d.model.Cdf(s))

		// Pull bytes back in until the state is inside its interval again,
		// the inverse of the encoder's downward renormalization.
		for x < d.low {
			if pos == 0 {
				return nil, errors.Wrap(ErrCorrupt, "stream exhausted during renormalization")
			}
			pos--
			x = x<<bitsPerChunk | uint64(comp[pos])
		}

		out[n] = s
	}

	return out, nil
}
