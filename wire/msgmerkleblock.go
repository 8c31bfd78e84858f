// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// MsgMerkleBlock carries a block header plus a partial Merkle branch
// proving which transactions of interest (matched against a previously
// loaded bloom filter) are included in the block. This node parses the
// branch's shape but does not itself verify Merkle inclusion — that
// verification is the caller's job once it has decoded the branch (full
// Merkle-tree verification of block bodies is out of scope here).
type MsgMerkleBlock struct {
	Header       BlockHeader
	Transactions uint32
	Hashes       []*chainhash.Hash
	Flags        []byte
}

func (m *MsgMerkleBlock) Command() string { return CmdMerkleBlock }

func (m *MsgMerkleBlock) MaxPayloadLength(pver uint32) uint32 {
	return BlockHeaderLen + 4 +
		uint32(VarIntSerializeSize(MaxInvEntries)) + MaxInvEntries*chainhash.HashSize +
		uint32(VarIntSerializeSize(MaxInvEntries)) + MaxInvEntries
}

func (m *MsgMerkleBlock) BtcEncode(w io.Writer, pver uint32) error {
	if err := m.Header.Serialize(w); err != nil {
		return err
	}

	var txBuf [4]byte
	binary.LittleEndian.PutUint32(txBuf[:], m.Transactions)
	if _, err := w.Write(txBuf[:]); err != nil {
		return err
	}

	if len(m.Hashes) > MaxInvEntries {
		return errMaxEntries(m.Command())
	}
	if err := WriteVarInt(w, uint64(len(m.Hashes))); err != nil {
		return err
	}
	for _, h := range m.Hashes {
		if _, err := w.Write(h[:]); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, uint64(len(m.Flags))); err != nil {
		return err
	}
	_, err := w.Write(m.Flags)
	return err
}

func (m *MsgMerkleBlock) BtcDecode(r io.Reader, pver uint32) error {
	if err := m.Header.Deserialize(r); err != nil {
		return err
	}

	var txBuf [4]byte
	if _, err := io.ReadFull(r, txBuf[:]); err != nil {
		return err
	}
	m.Transactions = binary.LittleEndian.Uint32(txBuf[:])

	hashCount, err := ReadVarIntCapped(r)
	if err != nil {
		return err
	}
	hashes := make([]*chainhash.Hash, 0, hashCount)
	for i := uint64(0); i < hashCount; i++ {
		var h chainhash.Hash
		if _, err := io.ReadFull(r, h[:]); err != nil {
			return err
		}
		hashes = append(hashes, &h)
	}
	m.Hashes = hashes

	flagCount, err := ReadVarIntCapped(r)
	if err != nil {
		return err
	}
	flags := make([]byte, flagCount)
	if _, err := io.ReadFull(r, flags); err != nil {
		return err
	}
	m.Flags = flags

	return nil
}
