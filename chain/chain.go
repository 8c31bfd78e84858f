// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain implements the header-only block chain engine: proof-of-
// work validation, orphan buffering, cumulative-difficulty tracking, and
// reorg detection. It holds no transaction or UTXO state — only headers.
package chain

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/decred/dcrd/lru"
	"github.com/toole-brendan/spv-node/blockchain"
	"github.com/toole-brendan/spv-node/chaincfg"
	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
	"github.com/toole-brendan/spv-node/wire"
)

// maxOrphanParents bounds the number of distinct parent hashes the orphan
// queue tracks at once. A node under a header-flood attack drops the
// oldest orphan buckets rather than growing without limit.
const maxOrphanParents = 1000

// orphanHeader buffers a header alongside the txnCount it arrived with,
// so a later cascade through connectOrphans still has it to hand to
// AddBlockFunc.
type orphanHeader struct {
	header   wire.BlockHeader
	txnCount uint32
}

// Node is a single header in the chain tree: every accepted header gets
// a Node, whether or not it ever sits on the active chain.
type Node struct {
	Hash                 chainhash.Hash
	Header               wire.BlockHeader
	Height               int32
	TxnCount             uint32
	CumulativeDifficulty blockchain.CompactTarget
	Parent               *Node
}

// Result reports the outcome of an Insert call.
type Result int

const (
	// Added means the header was accepted and linked into the tree.
	Added Result = iota
	// Duplicate means the header's hash was already known.
	Duplicate
	// Pending means the header's parent is unknown; it was buffered as
	// an orphan awaiting that parent.
	Pending
	// Rejected means the header failed its proof-of-work check.
	Rejected
)

func (r Result) String() string {
	switch r {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	case Pending:
		return "pending"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// AddBlockFunc is invoked once for each header as it is linked into the
// tree, whether or not it extends the active chain, and again for every
// header on a branch that a reorg makes active, in ascending height order
// along that branch. txnCount is the transaction count the
// header arrived with on the wire (see wire.BlockHeaderAndTxnCount);
// header-only sync never inspects it beyond passing it through to
// whatever persists the header.
type AddBlockFunc func(hash chainhash.Hash, height int32, header wire.BlockHeader, txnCount uint32)

// RemoveBlockFunc is invoked once per header detached from the active
// chain during a reorg, in descending height order (tip first).
type RemoveBlockFunc func(hash chainhash.Hash, height int32)

// Chain is the header tree rooted at a network's genesis block, with a
// single active chain (the branch with the greatest cumulative
// difficulty) tracked as the tip.
type Chain struct {
	mu       sync.RWMutex
	params   *chaincfg.Params
	nodes    map[chainhash.Hash]*Node
	genesis  *Node
	tip      *Node
	orphans  *lru.Map[chainhash.Hash, []orphanHeader]
	onAdd    AddBlockFunc
	onRemove RemoveBlockFunc
}

// New constructs a Chain pre-populated with params' hard-coded genesis
// header. onAdd and onRemove may be nil.
func New(params *chaincfg.Params, onAdd AddBlockFunc, onRemove RemoveBlockFunc) *Chain {
	genesis := &Node{
		Hash:                 params.GenesisHash,
		Header:               params.GenesisHeader,
		Height:               0,
		CumulativeDifficulty: blockchain.Work(params.GenesisHeader.Bits),
	}

	c := &Chain{
		params:   params,
		nodes:    map[chainhash.Hash]*Node{genesis.Hash: genesis},
		genesis:  genesis,
		tip:      genesis,
		orphans:  lru.NewMap[chainhash.Hash, []orphanHeader](maxOrphanParents),
		onAdd:    onAdd,
		onRemove: onRemove,
	}
	return c
}

// Tip returns the current active-chain tip.
func (c *Chain) Tip() *Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip
}

// Height returns the height of the active tip.
func (c *Chain) Height() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip.Height
}

// Node looks up a known header by hash, on or off the active chain.
func (c *Chain) Node(hash chainhash.Hash) (*Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.nodes[hash]
	return n, ok
}

// Insert validates and links header into the chain, computing its hash
// via double-SHA256. See InsertKnownHash to supply a precomputed hash.
// txnCount is the transaction count the header arrived with on the wire;
// pass 0 when it isn't known or doesn't apply.
func (c *Chain) Insert(header wire.BlockHeader, txnCount uint32) Result {
	return c.InsertKnownHash(header.BlockHash(), header, txnCount)
}

// InsertKnownHash is Insert with the header's hash supplied by the
// caller, skipping the recompute — used when a peer session has already
// hashed the header to look it up elsewhere.
func (c *Chain) InsertKnownHash(hash chainhash.Hash, header wire.BlockHeader, txnCount uint32) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insert(hash, header, txnCount)
}

func (c *Chain) insert(hash chainhash.Hash, header wire.BlockHeader, txnCount uint32) Result {
	if _, ok := c.nodes[hash]; ok {
		return Duplicate
	}

	if !checkProofOfWork(hash, header.Bits) {
		log.Debugf("rejecting header %s: insufficient proof of work", hash)
		return Rejected
	}

	parent, ok := c.nodes[header.PrevBlock]
	if !ok {
		c.queueOrphan(header, txnCount)
		return Pending
	}

	c.connect(hash, header, txnCount, parent)
	return Added
}

// connect links header (whose parent is already known) into the tree,
// updates the active tip if its branch now has greater cumulative
// difficulty, and recursively connects any buffered orphans whose parent
// is this new node.
func (c *Chain) connect(hash chainhash.Hash, header wire.BlockHeader, txnCount uint32, parent *Node) *Node {
	node := &Node{
		Hash:                 hash,
		Header:               header,
		Height:               parent.Height + 1,
		TxnCount:             txnCount,
		CumulativeDifficulty: blockchain.AddSaturating(parent.CumulativeDifficulty, blockchain.Work(header.Bits)),
		Parent:               parent,
	}
	c.nodes[hash] = node

	if blockchain.Compare(node.CumulativeDifficulty, c.tip.CumulativeDifficulty) > 0 {
		c.reorg(node)
	} else if c.onAdd != nil {
		c.onAdd(node.Hash, node.Height, node.Header, node.TxnCount)
	}

	c.connectOrphans(hash)
	return node
}

// connectOrphans attempts to connect every buffered orphan whose parent
// is parentHash, recursively chaining through however many generations
// are now connectable.
func (c *Chain) connectOrphans(parentHash chainhash.Hash) {
	children, ok := c.orphans.Get(parentHash)
	if !ok {
		return
	}
	c.orphans.Delete(parentHash)

	for _, child := range children {
		hash := child.header.BlockHash()
		if _, exists := c.nodes[hash]; exists {
			continue
		}
		if !checkProofOfWork(hash, child.header.Bits) {
			continue
		}
		parent := c.nodes[parentHash]
		c.connect(hash, child.header, child.txnCount, parent)
	}
}

// queueOrphan buffers header, with the txnCount it arrived with, under
// its parent hash for later connection.
func (c *Chain) queueOrphan(header wire.BlockHeader, txnCount uint32) {
	parentHash := header.PrevBlock
	existing, _ := c.orphans.Get(parentHash)
	existing = append(existing, orphanHeader{header: header, txnCount: txnCount})
	c.orphans.Put(parentHash, existing)
}

// reorg walks newTip and the current tip back to their lowest common
// ancestor, emits RemoveBlockFunc for the abandoned branch from tip down
// to the ancestor (descending height) and AddBlockFunc for the new
// branch from the ancestor up to newTip (ascending height), then
// switches the active tip.
func (c *Chain) reorg(newTip *Node) {
	oldTip := c.tip
	ancestor := lowestCommonAncestor(oldTip, newTip)

	for n := oldTip; n != ancestor; n = n.Parent {
		if c.onRemove != nil {
			c.onRemove(n.Hash, n.Height)
		}
	}

	var newBranch []*Node
	for n := newTip; n != ancestor; n = n.Parent {
		newBranch = append(newBranch, n)
	}
	for i := len(newBranch) - 1; i >= 0; i-- {
		n := newBranch[i]
		if c.onAdd != nil {
			c.onAdd(n.Hash, n.Height, n.Header, n.TxnCount)
		}
	}

	c.tip = newTip
}

func lowestCommonAncestor(a, b *Node) *Node {
	for a.Height > b.Height {
		a = a.Parent
	}
	for b.Height > a.Height {
		b = b.Parent
	}
	for a != b {
		a = a.Parent
		b = b.Parent
	}
	return a
}

// checkProofOfWork reports whether hash, interpreted as a 256-bit
// little-endian integer, does not exceed the target bits decodes to.
func checkProofOfWork(hash chainhash.Hash, bits uint32) bool {
	target, ok := blockchain.Target(bits)
	if !ok {
		return false
	}

	reversed := make([]byte, chainhash.HashSize)
	for i, b := range hash {
		reversed[chainhash.HashSize-1-i] = b
	}
	hashNum := new(big.Int).SetBytes(reversed)
	return hashNum.Cmp(target) <= 0
}

// Locator returns a sparse list of hashes from the active tip back
// toward genesis: the first 10 entries are consecutive, after which the
// spacing doubles on every entry. It always terminates at genesis and
// never exceeds limit entries — the same construction Bitcoin peers use
// to describe "what I have" without sending the whole chain.
func (c *Chain) Locator(limit int) []chainhash.Hash {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hashes := make([]chainhash.Hash, 0, limit)
	node := c.tip
	step := int32(1)
	for node != nil && len(hashes) < limit {
		hashes = append(hashes, node.Hash)
		if node.Height == 0 {
			break
		}
		if int32(len(hashes)) >= 10 {
			step *= 2
		}
		back := step
		if back > node.Height {
			back = node.Height
		}
		for i := int32(0); i < back; i++ {
			node = node.Parent
		}
	}
	return hashes
}
