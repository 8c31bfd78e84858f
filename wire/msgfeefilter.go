// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
)

// MsgFeeFilter tells the peer not to announce transactions below
// MinFee satoshis/kvB.
type MsgFeeFilter struct {
	MinFee int64
}

func (m *MsgFeeFilter) Command() string                    { return CmdFeeFilter }
func (m *MsgFeeFilter) MaxPayloadLength(pver uint32) uint32 { return 8 }

func (m *MsgFeeFilter) BtcEncode(w io.Writer, pver uint32) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(m.MinFee))
	_, err := w.Write(buf[:])
	return err
}

func (m *MsgFeeFilter) BtcDecode(r io.Reader, pver uint32) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	m.MinFee = int64(binary.LittleEndian.Uint64(buf[:]))
	return nil
}
