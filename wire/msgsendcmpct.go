// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
)

// MsgSendCmpct negotiates compact block relay (BIP0152). This node never
// requests compact blocks (it doesn't store block bodies) but parses and
// serializes the negotiation message so a handshake that offers it doesn't
// fail.
type MsgSendCmpct struct {
	Announce bool
	Version  uint64
}

func (m *MsgSendCmpct) Command() string                    { return CmdSendCmpct }
func (m *MsgSendCmpct) MaxPayloadLength(pver uint32) uint32 { return 9 }

func (m *MsgSendCmpct) BtcEncode(w io.Writer, pver uint32) error {
	announce := byte(0)
	if m.Announce {
		announce = 1
	}
	if _, err := w.Write([]byte{announce}); err != nil {
		return err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], m.Version)
	_, err := w.Write(buf[:])
	return err
}

func (m *MsgSendCmpct) BtcDecode(r io.Reader, pver uint32) error {
	var announceBuf [1]byte
	if _, err := io.ReadFull(r, announceBuf[:]); err != nil {
		return err
	}
	m.Announce = announceBuf[0] != 0

	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	m.Version = binary.LittleEndian.Uint64(buf[:])
	return nil
}
