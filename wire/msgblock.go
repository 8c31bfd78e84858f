// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgBlock carries a full serialized block. This node never requests one
// (it does not validate or store block bodies); the header
// prefix is parsed into Header and the transaction list is kept as an
// opaque trailing blob. The peer's default dispatch table has no handler
// for block, so an unsolicited one is discarded.
type MsgBlock struct {
	Header        BlockHeader
	RawTxsTrailer []byte
}

func (m *MsgBlock) Command() string                    { return CmdBlock }
func (m *MsgBlock) MaxPayloadLength(pver uint32) uint32 { return MaxMessagePayload }

func (m *MsgBlock) BtcEncode(w io.Writer, pver uint32) error {
	if err := m.Header.Serialize(w); err != nil {
		return err
	}
	_, err := w.Write(m.RawTxsTrailer)
	return err
}

func (m *MsgBlock) BtcDecode(r io.Reader, pver uint32) error {
	if err := m.Header.Deserialize(r); err != nil {
		return err
	}
	trailer, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.RawTxsTrailer = trailer
	return nil
}
