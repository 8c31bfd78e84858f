// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgNotFound answers a getdata request for objects the peer doesn't have.
type MsgNotFound struct {
	InvList []*InvVect
}

func (m *MsgNotFound) Command() string                    { return CmdNotFound }
func (m *MsgNotFound) MaxPayloadLength(pver uint32) uint32 { return invListMaxPayload() }
func (m *MsgNotFound) BtcEncode(w io.Writer, pver uint32) error {
	return writeInvList(w, m.Command(), m.InvList)
}
func (m *MsgNotFound) BtcDecode(r io.Reader, pver uint32) error {
	list, err := readInvList(r)
	if err != nil {
		return err
	}
	m.InvList = list
	return nil
}

// AddInvVect appends an inventory vector, rejecting it past MaxInvEntries.
func (m *MsgNotFound) AddInvVect(iv *InvVect) error {
	if len(m.InvList)+1 > MaxInvEntries {
		return errMaxEntries(m.Command())
	}
	m.InvList = append(m.InvList, iv)
	return nil
}
