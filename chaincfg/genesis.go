// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
	"github.com/toole-brendan/spv-node/wire"
)

// A header-only SPV node has no coinbase transaction or merkle tree to
// build — it only ever needs the genesis header and its hash, hard-coded
// here exactly as they appear on each network. Everything below is a
// constant, never computed, since there is nothing upstream of the
// genesis block to validate it against.

// mainNetGenesisHeader is the header of mainnet block 0.
var mainNetGenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: *newHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
	Timestamp:  1231006505,
	Bits:       0x1d00ffff,
	Nonce:      2083236893,
}

// mainNetGenesisHash is the hash of mainNetGenesisHeader, given in
// reversed (display) byte order as it would be printed by any other tool.
var mainNetGenesisHash = *newHashFromStr("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f")

// testNet3GenesisHeader is the header of testnet3 block 0.
var testNet3GenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: *newHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
	Timestamp:  1296688602,
	Bits:       0x1d00ffff,
	Nonce:      414098458,
}

var testNet3GenesisHash = *newHashFromStr("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943")

// regTestGenesisHeader is the header of the regression-test network's
// block 0. Regtest uses a deliberately trivial PowLimitBits so tests can
// mine headers without burning real work.
var regTestGenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: *newHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
	Timestamp:  1296688602,
	Bits:       0x207fffff,
	Nonce:      2,
}

var regTestGenesisHash = *newHashFromStr("0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206")
