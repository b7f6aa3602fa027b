package rans

// Model is a static byte-frequency model: per-symbol occurrence counts
// rescaled so they sum exactly to 1<<modelBits, plus the exclusive prefix
// sums (CDF) that map a position in the probability interval back to its
// owning symbol.
//
// A Model is immutable after BuildModel returns and may be shared by any
// number of concurrent encoders and decoders.
type Model struct {
	freqs [256]uint32
	cdf   [257]uint32
	scale uint32
}

// BuildModel counts symbol occurrences in corpus and normalizes them so
// every symbol that occurs keeps a frequency of at least 1. Symbols absent
// from the corpus end up with frequency 0 and cannot be encoded.
func BuildModel(corpus []byte) *Model {
	m := &Model{scale: encTotal}

	var counts [256]uint64
	for _, b := range corpus {
		counts[b]++
	}
	total := uint64(len(corpus))
	if total == 0 {
		return m
	}

	// Raise every present symbol to at least total/scale+1 before scaling.
	// A plain proportional scale-down rounds rare symbols to zero, which
	// would make them unencodable. Raising a count inflates the total,
	// which can push other symbols below the bar, so repeat until a pass
	// changes nothing.
	for {
		added := uint64(0)
		limit := total/encTotal + 1
		for i, c := range counts {
			if c != 0 && c < limit {
				added += limit - c
				counts[i] = limit
			}
		}
		if added == 0 {
			break
		}
		total += added
	}

	sum := uint32(0)
	top := 0
	for i, c := range counts {
		f := uint32(c * encTotal / total)
		m.freqs[i] = f
		sum += f
		if f > m.freqs[top] {
			top = i
		}
	}
	// Floor scaling undershoots the scale unless total divides it evenly.
	// Park the remainder on the most frequent symbol so the frequencies sum
	// to the scale exactly and the decoder's slot table has no holes.
	m.freqs[top] += encTotal - sum

	cf := uint32(0)
	for i, f := range m.freqs {
		m.cdf[i] = cf
		cf += f
	}
	m.cdf[256] = cf

	return m
}

// Freq returns the normalized frequency of sym. Zero means sym did not
// occur in the corpus the model was built from.
func (m *Model) Freq(sym byte) uint32 {
	return m.freqs[sym]
}

// Cdf returns the sum of the normalized frequencies of all symbols below
// sym.
func (m *Model) Cdf(sym byte) uint32 {
	return m.cdf[sym]
}

// Total returns the fixed value the normalized frequencies sum to.
func (m *Model) Total() uint32 {
	return m.scale
}
