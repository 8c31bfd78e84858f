// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// BlockHeaderLen is the exact on-wire size, in bytes, of a BlockHeader.
const BlockHeaderLen = 80

// BlockHeader is the 80-byte, little-endian header every block commits to.
// The node never downloads the block body it prefixes.
type BlockHeader struct {
	// Version is the block version, signalling which consensus rules to
	// apply.
	Version int32

	// PrevBlock is the hash of the previous block in the chain.
	PrevBlock chainhash.Hash

	// MerkleRoot commits to every transaction in the block body.
	MerkleRoot chainhash.Hash

	// Timestamp is the block creation time, seconds since the Unix
	// epoch.
	Timestamp uint32

	// Bits is the compact representation of the proof-of-work target
	// this header must satisfy.
	Bits uint32

	// Nonce is the value miners vary to satisfy the proof-of-work target.
	Nonce uint32
}

// BlockHash returns the double-SHA256 hash of the serialized header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	buf := make([]byte, 0, BlockHeaderLen)
	b := &sliceWriter{buf: buf}
	_ = h.Serialize(b)
	return chainhash.DoubleHashH(b.buf)
}

// Serialize writes the 80-byte wire encoding of h to w.
func (h *BlockHeader) Serialize(w io.Writer) error {
	var buf [BlockHeaderLen]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)
	_, err := w.Write(buf[:])
	return err
}

// Deserialize reads the 80-byte wire encoding of a header from r into h.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	var buf [BlockHeaderLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	h.Version = int32(binary.LittleEndian.Uint32(buf[0:4]))
	copy(h.PrevBlock[:], buf[4:36])
	copy(h.MerkleRoot[:], buf[36:68])
	h.Timestamp = binary.LittleEndian.Uint32(buf[68:72])
	h.Bits = binary.LittleEndian.Uint32(buf[72:76])
	h.Nonce = binary.LittleEndian.Uint32(buf[76:80])
	return nil
}

// sliceWriter is a trivial io.Writer over a growable byte slice, used where
// pulling in bytes.Buffer would be overkill for an 80-byte fixed encode.
type sliceWriter struct {
	buf []byte
}

func (s *sliceWriter) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}
