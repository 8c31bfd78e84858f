// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgTx carries a serialized transaction. This node does not parse
// transaction, script, or witness structure; it stores the raw payload
// verbatim so the message can still be
// framed, counted against MaxMessagePayload, and round-tripped for any
// handler that only needs the bytes (e.g. relaying is not implemented, but
// decoding must not panic on a well-formed tx this node will never use).
type MsgTx struct {
	Raw []byte
}

func (m *MsgTx) Command() string                    { return CmdTx }
func (m *MsgTx) MaxPayloadLength(pver uint32) uint32 { return MaxMessagePayload }

func (m *MsgTx) BtcEncode(w io.Writer, pver uint32) error {
	_, err := w.Write(m.Raw)
	return err
}

func (m *MsgTx) BtcDecode(r io.Reader, pver uint32) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.Raw = raw
	return nil
}
