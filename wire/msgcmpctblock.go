// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
)

// MsgCmpctBlock carries a compact block announcement (BIP0152): a header,
// a nonce for short-ID salting, and a list of 6-byte short transaction
// IDs. This node never reconstructs a block from short IDs (no mempool,
// no block storage); it decodes the envelope far enough to stay framed
// correctly and keeps the prefilled-transaction trailer as an opaque blob.
type MsgCmpctBlock struct {
	Header        BlockHeader
	Nonce         uint64
	ShortIDs      [][6]byte
	PrefilledTxns []byte
}

func (m *MsgCmpctBlock) Command() string                    { return CmdCmpctBlock }
func (m *MsgCmpctBlock) MaxPayloadLength(pver uint32) uint32 { return MaxMessagePayload }

func (m *MsgCmpctBlock) BtcEncode(w io.Writer, pver uint32) error {
	if err := m.Header.Serialize(w); err != nil {
		return err
	}
	var nonceBuf [8]byte
	binary.LittleEndian.PutUint64(nonceBuf[:], m.Nonce)
	if _, err := w.Write(nonceBuf[:]); err != nil {
		return err
	}
	if len(m.ShortIDs) > MaxInvEntries {
		return errMaxEntries(m.Command())
	}
	if err := WriteVarInt(w, uint64(len(m.ShortIDs))); err != nil {
		return err
	}
	for _, id := range m.ShortIDs {
		if _, err := w.Write(id[:]); err != nil {
			return err
		}
	}
	_, err := w.Write(m.PrefilledTxns)
	return err
}

func (m *MsgCmpctBlock) BtcDecode(r io.Reader, pver uint32) error {
	if err := m.Header.Deserialize(r); err != nil {
		return err
	}

	var nonceBuf [8]byte
	if _, err := io.ReadFull(r, nonceBuf[:]); err != nil {
		return err
	}
	m.Nonce = binary.LittleEndian.Uint64(nonceBuf[:])

	count, err := ReadVarIntCapped(r)
	if err != nil {
		return err
	}
	ids := make([][6]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		var id [6]byte
		if _, err := io.ReadFull(r, id[:]); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	m.ShortIDs = ids

	trailer, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.PrefilledTxns = trailer
	return nil
}
