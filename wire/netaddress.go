// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
	"net"
)

// NetAddress represents a peer address as carried on the wire in the addr
// message, and (without its Timestamp) inside the version message's
// legacy addr_recv/addr_from fields.
type NetAddress struct {
	// Timestamp is when the address was last seen. Absent (zero) in the
	// legacy 26-byte version-message encoding.
	Timestamp uint32

	// Services is the bitmask of services the peer at this address
	// advertises.
	Services ServiceFlag

	// IP is always stored as 16 bytes; IPv4 addresses are mapped into
	// IPv6 using the ::ffff:a.b.c.d convention.
	IP net.IP

	// Port is the TCP port, host byte order in memory, big-endian on the
	// wire.
	Port uint16
}

// NewNetAddressIPPort builds a NetAddress from an IP and port, normalizing
// IPv4 addresses into their IPv6-mapped form.
func NewNetAddressIPPort(ip net.IP, port uint16, services ServiceFlag) *NetAddress {
	return &NetAddress{
		Services: services,
		IP:       ip.To16(),
		Port:     port,
	}
}

// legacyNetAddressLen is the size of a NetAddress without its timestamp, as
// used in the version message's addr_recv/addr_from fields.
const legacyNetAddressLen = 8 + 16 + 2

// timedNetAddressLen is the size of a NetAddress with its timestamp, as
// used in the addr message's address list.
const timedNetAddressLen = 4 + legacyNetAddressLen

func writeNetAddress(w io.Writer, na *NetAddress, withTimestamp bool) error {
	if withTimestamp {
		var tbuf [4]byte
		binary.LittleEndian.PutUint32(tbuf[:], na.Timestamp)
		if _, err := w.Write(tbuf[:]); err != nil {
			return err
		}
	}

	var buf [legacyNetAddressLen]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(na.Services))

	ip := na.IP.To16()
	if ip == nil {
		ip = net.IPv6zero
	}
	copy(buf[8:24], ip)

	binary.BigEndian.PutUint16(buf[24:26], na.Port)

	_, err := w.Write(buf[:])
	return err
}

func readNetAddress(r io.Reader, withTimestamp bool) (*NetAddress, error) {
	na := &NetAddress{}

	if withTimestamp {
		var tbuf [4]byte
		if _, err := io.ReadFull(r, tbuf[:]); err != nil {
			return nil, err
		}
		na.Timestamp = binary.LittleEndian.Uint32(tbuf[:])
	}

	var buf [legacyNetAddressLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}

	na.Services = ServiceFlag(binary.LittleEndian.Uint64(buf[0:8]))
	ip := make(net.IP, 16)
	copy(ip, buf[8:24])
	na.IP = ip
	na.Port = binary.BigEndian.Uint16(buf[24:26])

	return na, nil
}
