// Package pbcodec entropy-codes protobuf messages with the rans coder.
//
// A Codec owns a single frequency model trained once from representative
// sample messages. The model is shared by every Compress and Decompress
// call and never travels with the data, so both sides must be constructed
// from the same samples.
package pbcodec

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"

	"github.com/egonelbre/exp-rans-compression/rans"
)

// Codec compresses and decompresses protobuf messages against a shared
// static model.
type Codec struct {
	model *rans.Model
}

// Train builds a Codec from sample messages. The model is trained on the
// wire encoding of the samples padded with one occurrence of every byte
// value, so a message containing bytes the samples never produced still
// encodes, just at a poor rate.
func Train(samples ...proto.Message) (*Codec, error) {
	corpus := make([]byte, 0, 1024)
	for i, msg := range samples {
		wire, err := proto.Marshal(msg)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal sample %d", i)
		}
		corpus = append(corpus, wire...)
	}
	for v := 0; v < 256; v++ {
		corpus = append(corpus, byte(v))
	}

	return &Codec{model: rans.BuildModel(corpus)}, nil
}

// Compress marshals msg and entropy-codes the wire bytes. The marshaled
// length is prefixed as a varint; the coder itself does not carry it.
func (c *Codec) Compress(msg proto.Message) ([]byte, error) {
	wire, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}

	comp, err := rans.Compress(c.model, wire)
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}

	out := protowire.AppendVarint(nil, uint64(len(wire)))
	return append(out, comp...), nil
}

// Decompress reverses Compress into msg.
func (c *Codec) Decompress(data []byte, msg proto.Message) error {
	length, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return errors.Wrap(protowire.ParseError(n), "length prefix")
	}

	wire, err := rans.Decompress(c.model, data[n:], int(length))
	if err != nil {
		return errors.Wrap(err, "decode")
	}

	return errors.Wrap(proto.Unmarshal(wire, msg), "unmarshal")
}
