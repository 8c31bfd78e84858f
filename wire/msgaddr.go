// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgAddr relays a list of known peer addresses.
type MsgAddr struct {
	AddrList []*NetAddress
}

func (m *MsgAddr) Command() string { return CmdAddr }

func (m *MsgAddr) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(MaxInvEntries)) + MaxInvEntries*timedNetAddressLen
}

// AddAddress appends na to the address list, rejecting it if doing so would
// exceed MaxInvEntries.
func (m *MsgAddr) AddAddress(na *NetAddress) error {
	if len(m.AddrList)+1 > MaxInvEntries {
		return errTooManyAddresses
	}
	m.AddrList = append(m.AddrList, na)
	return nil
}

var errTooManyAddresses = errMaxEntries("addr")

func (m *MsgAddr) BtcEncode(w io.Writer, pver uint32) error {
	if len(m.AddrList) > MaxInvEntries {
		return errTooManyAddresses
	}
	if err := WriteVarInt(w, uint64(len(m.AddrList))); err != nil {
		return err
	}
	for _, na := range m.AddrList {
		if err := writeNetAddress(w, na, true); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgAddr) BtcDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarIntCapped(r)
	if err != nil {
		return err
	}

	addrList := make([]*NetAddress, 0, count)
	for i := uint64(0); i < count; i++ {
		na, err := readNetAddress(r, true)
		if err != nil {
			return err
		}
		addrList = append(addrList, na)
	}
	m.AddrList = addrList
	return nil
}
