// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash implements the 256-bit block hash type used throughout
// the node: a fixed 32-byte value with two distinct textual conventions —
// the raw, network byte order used for hashing and wire transmission, and
// the display-reversed, big-endian-looking hex string humans read block
// hashes in.
package chainhash

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashSize is the number of bytes in a block hash.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hex string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that has too many characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is a 32-byte, double-SHA256 block hash. Internally it is kept in the
// same byte order it is hashed and transmitted on the wire; only String and
// NewHashFromStr deal in the reversed, human-readable form.
type Hash [HashSize]byte

// String returns the Hash as the reversed, big-endian-looking hex string
// conventionally used to display block hashes.
func (h Hash) String() string {
	var reversed Hash
	for i, b := range h[:HashSize/2] {
		reversed[i], reversed[HashSize-1-i] = h[HashSize-1-i], b
	}
	return hex.EncodeToString(reversed[:])
}

// CloneBytes returns a copy of the raw bytes of the hash in network byte
// order, suitable for mutation without affecting h.
func (h Hash) CloneBytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// SetBytes sets the bytes of the hash to the network-byte-order bytes in
// newHash. It errors if newHash is not exactly HashSize bytes.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", len(newHash), HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// IsEqual returns true if h == other. Two nil hashes are considered equal.
func (h *Hash) IsEqual(other *Hash) bool {
	if h == nil && other == nil {
		return true
	}
	if h == nil || other == nil {
		return false
	}
	return *h == *other
}

// NewHash returns a new Hash from a byte slice in network byte order.
func NewHash(newHash []byte) (*Hash, error) {
	var h Hash
	if err := h.SetBytes(newHash); err != nil {
		return nil, err
	}
	return &h, nil
}

// NewHashFromStr creates a Hash from a display-reversed hex string such as
// those printed by String, or a block explorer.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	if err := Decode(ret, hash); err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the display-reversed hex string hash into the provided
// destination.
func Decode(dst *Hash, src string) error {
	// It is possible that the hash string has fewer characters than the
	// full length (the leading zero hex digits are dropped by some
	// peers). Pad it out so DecodeString doesn't choke.
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}

	var srcBytes []byte
	if len(src)%2 == 0 {
		srcBytes = []byte(src)
	} else {
		srcBytes = make([]byte, 1, len(src)+1)
		srcBytes[0] = '0'
		srcBytes = append(srcBytes, src...)
	}

	var reversedHash Hash
	_, err := hex.Decode(reversedHash[HashSize-hex.DecodedLen(len(srcBytes)):], srcBytes)
	if err != nil {
		return err
	}

	for i, b := range reversedHash[:HashSize/2] {
		dst[i], dst[HashSize-1-i] = reversedHash[HashSize-1-i], b
	}
	return nil
}

// HashB computes a single SHA-256 over b and returns the raw bytes. It
// delegates the hash primitive itself to the upstream btcsuite chainhash
// package; only the Hash value type and its display conventions are owned
// by this package.
func HashB(b []byte) []byte {
	return chainhash.HashB(b)
}

// DoubleHashB computes DoubleSHA256(b) and returns the raw bytes.
func DoubleHashB(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}

// DoubleHashH computes DoubleSHA256(b) and returns it as a Hash in network
// byte order.
func DoubleHashH(b []byte) Hash {
	var h Hash
	copy(h[:], chainhash.DoubleHashB(b))
	return h
}
