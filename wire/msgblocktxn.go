// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// MsgBlockTxn answers a getblocktxn request with the requested transactions
// (BIP0152). This node never requests one, so the transaction list is kept
// as an opaque trailing blob.
type MsgBlockTxn struct {
	BlockHash chainhash.Hash
	RawTxns   []byte
}

func (m *MsgBlockTxn) Command() string                    { return CmdBlockTxn }
func (m *MsgBlockTxn) MaxPayloadLength(pver uint32) uint32 { return MaxMessagePayload }

func (m *MsgBlockTxn) BtcEncode(w io.Writer, pver uint32) error {
	if _, err := w.Write(m.BlockHash[:]); err != nil {
		return err
	}
	_, err := w.Write(m.RawTxns)
	return err
}

func (m *MsgBlockTxn) BtcDecode(r io.Reader, pver uint32) error {
	if _, err := io.ReadFull(r, m.BlockHash[:]); err != nil {
		return err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.RawTxns = raw
	return nil
}
