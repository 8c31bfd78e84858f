// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// BlockHeaderAndTxnCount pairs a header with the transaction count trailing
// it in a headers message. The node is header-only, so TxnCount is
// retained only because the wire format carries it; it is typically 0 for
// header-only sync and is never used to fetch a block body.
type BlockHeaderAndTxnCount struct {
	Header   BlockHeader
	TxnCount uint64
}

// MsgHeaders carries a batch of block headers, the sync driver's primary
// response message.
type MsgHeaders struct {
	Headers []*BlockHeaderAndTxnCount
}

func (m *MsgHeaders) Command() string { return CmdHeaders }

func (m *MsgHeaders) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(MaxInvEntries)) + MaxInvEntries*(BlockHeaderLen+1)
}

// AddBlockHeader appends a header/count pair, rejecting it past
// MaxInvEntries.
func (m *MsgHeaders) AddBlockHeader(h *BlockHeaderAndTxnCount) error {
	if len(m.Headers)+1 > MaxInvEntries {
		return errMaxEntries(m.Command())
	}
	m.Headers = append(m.Headers, h)
	return nil
}

func (m *MsgHeaders) BtcEncode(w io.Writer, pver uint32) error {
	if len(m.Headers) > MaxInvEntries {
		return errMaxEntries(m.Command())
	}
	if err := WriteVarInt(w, uint64(len(m.Headers))); err != nil {
		return err
	}
	for _, entry := range m.Headers {
		if err := entry.Header.Serialize(w); err != nil {
			return err
		}
		if err := WriteVarInt(w, entry.TxnCount); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgHeaders) BtcDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarIntCapped(r)
	if err != nil {
		return err
	}

	headers := make([]*BlockHeaderAndTxnCount, 0, count)
	for i := uint64(0); i < count; i++ {
		entry := &BlockHeaderAndTxnCount{}
		if err := entry.Header.Deserialize(r); err != nil {
			return err
		}
		txnCount, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		entry.TxnCount = txnCount
		headers = append(headers, entry)
	}
	m.Headers = headers
	return nil
}
