// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// MsgGetBlockTxn requests specific transactions from a compact block by
// differentially-encoded index (BIP0152). This node never originates one
// (it has no block or mempool to fill the request from) but decodes it for
// protocol completeness.
type MsgGetBlockTxn struct {
	BlockHash chainhash.Hash
	Indexes   []uint64
}

func (m *MsgGetBlockTxn) Command() string { return CmdGetBlockTxn }

func (m *MsgGetBlockTxn) MaxPayloadLength(pver uint32) uint32 {
	return chainhash.HashSize + uint32(VarIntSerializeSize(MaxInvEntries)) + MaxInvEntries*9
}

func (m *MsgGetBlockTxn) BtcEncode(w io.Writer, pver uint32) error {
	if _, err := w.Write(m.BlockHash[:]); err != nil {
		return err
	}
	if len(m.Indexes) > MaxInvEntries {
		return errMaxEntries(m.Command())
	}
	if err := WriteVarInt(w, uint64(len(m.Indexes))); err != nil {
		return err
	}
	for _, idx := range m.Indexes {
		if err := WriteVarInt(w, idx); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgGetBlockTxn) BtcDecode(r io.Reader, pver uint32) error {
	if _, err := io.ReadFull(r, m.BlockHash[:]); err != nil {
		return err
	}
	count, err := ReadVarIntCapped(r)
	if err != nil {
		return err
	}
	indexes := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		idx, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		indexes = append(indexes, idx)
	}
	m.Indexes = indexes
	return nil
}
