// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"math/big"

	"github.com/toole-brendan/spv-node/blockchain"
	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
	"github.com/toole-brendan/spv-node/wire"
)

// powLimitFromBits decodes a network's PowLimitBits into the big.Int it
// represents, panicking on a malformed constant — this only ever runs at
// package init against hard-coded bits fields, so a panic here can only
// mean a typo in this file.
func powLimitFromBits(bits uint32) *big.Int {
	limit, ok := blockchain.Target(bits)
	if !ok {
		panic("chaincfg: PowLimitBits does not decode to a valid target")
	}
	return limit
}

var (
	mainPowLimit     = powLimitFromBits(0x1d00ffff)
	testNet3PowLimit = powLimitFromBits(0x1d00ffff)
	regTestPowLimit  = powLimitFromBits(0x207fffff)
)

// Params defines the subset of a Bitcoin-style network's parameters an
// SPV header chain needs: enough to frame wire messages for the right
// network, seed a chain with the correct genesis header, and bound
// proof-of-work. It intentionally carries none of a full node's
// consensus parameters (subsidy schedule, BIP activation heights,
// address version bytes) since this node never validates or relays
// anything beyond headers.
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// Net is the magic value carried in every wire message header.
	Net wire.BitcoinNet

	// DefaultPort is the default peer-to-peer TCP port for the network.
	DefaultPort string

	// GenesisHeader is the hard-coded header of block 0.
	GenesisHeader wire.BlockHeader

	// GenesisHash is the hash of GenesisHeader, stored rather than
	// computed so a corrupt or mismatched hard-coded header is caught by
	// TestGenesisHeaderHashesMatch rather than silently trusted.
	GenesisHash chainhash.Hash

	// PowLimit is the highest allowed proof-of-work target for the
	// network, as a 256-bit unsigned integer.
	PowLimit *big.Int

	// PowLimitBits is PowLimit in compact ("bits") form.
	PowLimitBits uint32

	// PoWNoRetargeting disables difficulty retargeting entirely, as
	// regtest-style networks do.
	PoWNoRetargeting bool
}

// MainNetParams are the parameters for the production network.
var MainNetParams = Params{
	Name:          "mainnet",
	Net:           wire.MainNet,
	DefaultPort:   "8333",
	GenesisHeader: mainNetGenesisHeader,
	GenesisHash:   mainNetGenesisHash,
	PowLimit:      mainPowLimit,
	PowLimitBits:  0x1d00ffff,
}

// TestNet3Params are the parameters for the testnet3 network.
var TestNet3Params = Params{
	Name:          "testnet3",
	Net:           wire.TestNet3,
	DefaultPort:   "18333",
	GenesisHeader: testNet3GenesisHeader,
	GenesisHash:   testNet3GenesisHash,
	PowLimit:      testNet3PowLimit,
	PowLimitBits:  0x1d00ffff,
}

// RegressionNetParams are the parameters for the local regression-test
// network, where PoWNoRetargeting lets a harness mine headers without
// retarget gymnastics.
var RegressionNetParams = Params{
	Name:             "regtest",
	Net:              wire.RegTest,
	DefaultPort:      "18444",
	GenesisHeader:    regTestGenesisHeader,
	GenesisHash:      regTestGenesisHash,
	PowLimit:         regTestPowLimit,
	PowLimitBits:     0x207fffff,
	PoWNoRetargeting: true,
}

// ErrDuplicateNet describes an error where the parameters for a network
// could not be registered because the network magic is already in use by
// a default or previously-registered network.
var ErrDuplicateNet = errors.New("duplicate Bitcoin network")

var registeredNets = map[wire.BitcoinNet]*Params{
	wire.MainNet:  &MainNetParams,
	wire.TestNet3: &TestNet3Params,
	wire.RegTest:  &RegressionNetParams,
}

// Register adds params to the set of recognized networks so ParamsForNet
// can find it. It is an error to register a magic value that is already
// in use by a default or previously-registered network.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = params
	return nil
}

// ParamsForNet looks up the registered Params for a wire magic value, the
// way a freshly-accepted peer connection resolves which genesis and
// PowLimit to validate incoming headers against.
func ParamsForNet(net wire.BitcoinNet) (*Params, bool) {
	p, ok := registeredNets[net]
	return p, ok
}

// newHashFromStr converts a big-endian hex string into a chainhash.Hash,
// panicking on error. It is only ever called on hard-coded genesis
// hashes, so a panic here can only mean a mistyped constant caught at
// package init, never a runtime condition.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}
