// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// Cursor is a paginated walk over the secondary height index, ordered by
// height then hash. Each page holds up to PageSize (hash, record) pairs
// in Hashes and Records, exposing a first/prior/next/last/move_to
// interface.
type Cursor struct {
	store    *Store
	pageSize int
	offset   uint32

	Hashes  []chainhash.Hash
	Records []BlockHeaderRecord
}

// NewCursor returns a cursor over s using the default page size.
func (s *Store) NewCursor() *Cursor {
	return &Cursor{store: s, pageSize: PageSize}
}

// First populates the page starting at height 0.
func (c *Cursor) First() error {
	return c.MoveTo(0)
}

// Next advances the page's starting height by one and repopulates it.
func (c *Cursor) Next() error {
	return c.MoveTo(c.offset + 1)
}

// Prior moves the page's starting height back by one, clamped at 0.
func (c *Cursor) Prior() error {
	if c.offset == 0 {
		return c.MoveTo(0)
	}
	return c.MoveTo(c.offset - 1)
}

// Last populates the final page: the most recent up-to-pageSize records
// in the store, walked backward from the greatest known height and
// returned in ascending order.
func (c *Cursor) Last() error {
	it := c.store.secondary.NewIterator(nil, nil)
	defer it.Release()

	var hashes []chainhash.Hash
	var records []BlockHeaderRecord
	for ok := it.Last(); ok && len(hashes) < c.pageSize; ok = it.Prev() {
		var hash chainhash.Hash
		copy(hash[:], it.Value())
		rec, err := c.store.Get(hash)
		if err != nil {
			return err
		}
		hashes = append(hashes, hash)
		records = append(records, *rec)
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("headerdb: cursor last: %w", err)
	}

	for i, j := 0, len(hashes)-1; i < j; i, j = i+1, j-1 {
		hashes[i], hashes[j] = hashes[j], hashes[i]
		records[i], records[j] = records[j], records[i]
	}

	startHeight := uint32(0)
	if len(records) > 0 {
		startHeight = records[0].Height
	}
	c.offset = startHeight
	c.Hashes = hashes
	c.Records = records
	return nil
}

// MoveTo repopulates the page with up to pageSize entries starting at
// height, in ascending (height, hash) order.
func (c *Cursor) MoveTo(height uint32) error {
	rng := &util.Range{Start: heightPrefix(height)}
	it := c.store.secondary.NewIterator(rng, nil)
	defer it.Release()

	hashes := make([]chainhash.Hash, 0, c.pageSize)
	records := make([]BlockHeaderRecord, 0, c.pageSize)
	for len(hashes) < c.pageSize && it.Next() {
		var hash chainhash.Hash
		copy(hash[:], it.Value())
		rec, err := c.store.Get(hash)
		if err != nil {
			return err
		}
		hashes = append(hashes, hash)
		records = append(records, *rec)
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("headerdb: cursor move to %d: %w", height, err)
	}

	c.offset = height
	c.Hashes = hashes
	c.Records = records
	return nil
}
