// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// ProtocolVersion is the latest protocol version this package supports for
// outbound VERSION messages.
const ProtocolVersion uint32 = 70012

// MultipleAddressVersion is the protocol version which added multiple
// addresses per message (pver >= MultipleAddressVersion).
const MultipleAddressVersion uint32 = 209

// NetAddressTimeVersion is the protocol version which added the timestamp
// field to network addresses (pver >= NetAddressTimeVersion).
const NetAddressTimeVersion uint32 = 31402

// BIP0031Version is the protocol version after which a pong message and
// nonce field in ping were added (pver > BIP0031Version).
const BIP0031Version uint32 = 60000

// BIP0035Version is the protocol version which added the mempool message
// (pver >= BIP0035Version).
const BIP0035Version uint32 = 60002

// BIP0037Version is the protocol version which added bloom filtering
// related messages and extended the version message with a relay flag
// (pver >= BIP0037Version).
const BIP0037Version uint32 = 70001

// RejectVersion is the protocol version which added the reject message.
const RejectVersion uint32 = 70002

// SendHeadersVersion is the protocol version which added the sendheaders
// message (pver >= SendHeadersVersion).
const SendHeadersVersion uint32 = 70012

// FeeFilterVersion is the protocol version which added the feefilter
// message.
const FeeFilterVersion uint32 = 70013

// MaxInvEntries is the maximum number of entries allowed in any list-bearing
// message (addr, inv, getdata, notfound, headers). Larger counts are
// rejected as malformed.
const MaxInvEntries = 50000

// CommandSize is the fixed size, in bytes, of the zero-padded ASCII command
// name in a message header.
const CommandSize = 12

// MessageHeaderSize is the number of bytes in a frame header: magic (4) +
// command (12) + length (4) + checksum (4).
const MessageHeaderSize = 4 + CommandSize + 4 + 4

// MaxMessagePayload is the maximum payload size this node will accept for
// any single message, to bound memory use against a misbehaving peer.
const MaxMessagePayload = 32 * 1024 * 1024

// ServiceFlag identifies services supported by a peer.
type ServiceFlag uint64

const (
	// SFNodeNetwork indicates the peer is a full node able to serve
	// complete blocks.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO indicates support for the getutxos/utxos messages.
	SFNodeGetUTXO

	// SFNodeBloom indicates support for bloom filtering (BIP0037).
	SFNodeBloom

	// SFNodeWitness indicates support for witness-carrying blocks and
	// transactions.
	SFNodeWitness

	// SFNodeNetworkLimited indicates the peer serves only a recent window
	// of blocks rather than the full chain.
	SFNodeNetworkLimited ServiceFlag = 1 << 10
)

// HasFlag reports whether f has the given service flag set.
func (f ServiceFlag) HasFlag(s ServiceFlag) bool {
	return f&s == s
}

func (f ServiceFlag) String() string {
	if f == 0 {
		return "0x0"
	}
	return fmt.Sprintf("0x%x", uint64(f))
}

// BitcoinNet identifies which network a message belongs to, carried as the
// first four bytes of every frame.
type BitcoinNet uint32

const (
	// MainNet is the production network.
	MainNet BitcoinNet = 0xd9b4bef9

	// TestNet is the legacy test network magic. --network_type "testnet"
	// does not select it: that name maps to TestNet3.
	TestNet BitcoinNet = 0xdab5bffa

	// TestNet3 is the network named "testnet3" in --network_type.
	TestNet3 BitcoinNet = 0x0709110b

	// RegTest is the local regression-test network. Not one of the three
	// standard network magics; chosen to collide with nothing above.
	RegTest BitcoinNet = 0x12141c16
)

var bnStrings = map[BitcoinNet]string{
	MainNet:  "MainNet",
	TestNet:  "TestNet",
	TestNet3: "TestNet3",
	RegTest:  "RegTest",
}

func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown BitcoinNet (0x%08x)", uint32(n))
}
