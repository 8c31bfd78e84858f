// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package headerdb implements the durable, crash-safe block header store:
// a primary table keyed by block hash plus a height-indexed secondary
// table that tolerates multiple entries per height, one per branch
// reaching it. Both tables are goleveldb environments, each with their
// own write-ahead log and crash recovery.
package headerdb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

const (
	primaryDBName   = "headers.db"
	secondaryDBName = "headers-height.db"

	// PageSize is the default cursor page length: one difficulty epoch,
	// carried over unchanged from the original store's page size.
	PageSize = 2016
)

// ErrNotFound is returned by Get when no record exists for a hash.
var ErrNotFound = errors.New("headerdb: record not found")

// Store is the durable, crash-safe header store.
type Store struct {
	dir       string
	primary   *leveldb.DB
	secondary *leveldb.DB
}

// Open opens (creating if absent) the primary and secondary databases
// inside dir. Every Put/Del commits to both before returning, as two
// separate writes (primary first, then the height index); the pair is not
// atomic, so a crash between them leaves the record in one table only.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("headerdb: creating %s: %w", dir, err)
	}

	primary, err := leveldb.OpenFile(filepath.Join(dir, primaryDBName), &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("headerdb: opening primary db: %w", err)
	}

	secondary, err := leveldb.OpenFile(filepath.Join(dir, secondaryDBName), &opt.Options{})
	if err != nil {
		primary.Close()
		return nil, fmt.Errorf("headerdb: opening secondary db: %w", err)
	}

	log.Infof("header store opened at %s", dir)
	return &Store{dir: dir, primary: primary, secondary: secondary}, nil
}

// Close releases both backing environments.
func (s *Store) Close() error {
	errP := s.primary.Close()
	errS := s.secondary.Close()
	if errP != nil {
		return fmt.Errorf("headerdb: closing primary db: %w", errP)
	}
	if errS != nil {
		return fmt.Errorf("headerdb: closing secondary db: %w", errS)
	}
	return nil
}

// heightKey builds the secondary index key: a big-endian height so
// lexicographic byte order matches numeric order, followed by the hash so
// every (height, hash) pair is unique and all hashes sharing a height
// sort contiguously under a common prefix.
func heightKey(height uint32, hash chainhash.Hash) []byte {
	key := make([]byte, 4+chainhash.HashSize)
	binary.BigEndian.PutUint32(key[0:4], height)
	copy(key[4:], hash[:])
	return key
}

func heightPrefix(height uint32) []byte {
	prefix := make([]byte, 4)
	binary.BigEndian.PutUint32(prefix, height)
	return prefix
}

// Get returns the record stored for hash, or ErrNotFound.
func (s *Store) Get(hash chainhash.Hash) (*BlockHeaderRecord, error) {
	data, err := s.primary.Get(hash[:], nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("headerdb: get %s: %w", hash, err)
	}
	return deserializeRecord(data)
}

// Put stores rec under hash in the primary table and indexes it by
// height in the secondary table, reporting whether this was a fresh
// insert (true) or replaced an existing record (false). Re-inserting an
// identical (hash, record) pair is a no-op from the caller's point of
// view: chain callbacks must tolerate exactly this.
func (s *Store) Put(hash chainhash.Hash, rec BlockHeaderRecord) (inserted bool, err error) {
	existing, err := s.Get(hash)
	switch {
	case err == nil:
		inserted = false
	case errors.Is(err, ErrNotFound):
		inserted = true
	default:
		return false, err
	}

	data, err := rec.serialize()
	if err != nil {
		return false, fmt.Errorf("headerdb: serializing record for %s: %w", hash, err)
	}
	if err := s.primary.Put(hash[:], data, nil); err != nil {
		return false, fmt.Errorf("headerdb: put %s: %w", hash, err)
	}

	if existing != nil && existing.Height != rec.Height {
		if err := s.secondary.Delete(heightKey(existing.Height, hash), nil); err != nil {
			return false, fmt.Errorf("headerdb: removing stale height index for %s: %w", hash, err)
		}
	}
	if err := s.secondary.Put(heightKey(rec.Height, hash), hash[:], nil); err != nil {
		return false, fmt.Errorf("headerdb: indexing height for %s: %w", hash, err)
	}

	return inserted, nil
}

// Del removes hash's record from both tables, reporting whether a record
// existed to remove.
func (s *Store) Del(hash chainhash.Hash) (removed bool, err error) {
	rec, err := s.Get(hash)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.primary.Delete(hash[:], nil); err != nil {
		return false, fmt.Errorf("headerdb: deleting %s: %w", hash, err)
	}
	if err := s.secondary.Delete(heightKey(rec.Height, hash), nil); err != nil {
		return false, fmt.Errorf("headerdb: deleting height index for %s: %w", hash, err)
	}
	return true, nil
}

// GetByHeight returns every record stored at height, including branches
// that never became, or no longer are, part of the active chain.
func (s *Store) GetByHeight(height uint32) ([]BlockHeaderRecord, error) {
	rng := util.BytesPrefix(heightPrefix(height))
	it := s.secondary.NewIterator(rng, nil)
	defer it.Release()

	var records []BlockHeaderRecord
	for it.Next() {
		var hash chainhash.Hash
		copy(hash[:], it.Value())
		rec, err := s.Get(hash)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("headerdb: scanning height %d: %w", height, err)
	}
	return records, nil
}
