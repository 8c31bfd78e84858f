// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the primitive arithmetic a header chain
// needs: decoding and encoding the compact (a.k.a. "bits") representation
// of a 256-bit proof-of-work target, and the saturating addition used to
// accumulate per-branch difficulty. It does not validate headers or track
// chain state — that is the chain package's job.
package blockchain

import (
	"math/big"
)

// CompactTarget is the 32-bit packed representation of a 256-bit
// proof-of-work threshold: the low 24 bits are a mantissa, the high 8
// bits a byte exponent.
type CompactTarget uint32

// CompactNaN is the sentinel CompactTarget value produced when encoding a
// value that does not fit in 256 bits, or produced by AddSaturating on
// overflow. It is not a valid target or difficulty and never appears in a
// well-formed header's bits field; it exists purely as an internal
// overflow marker for cumulative-difficulty arithmetic.
const CompactNaN CompactTarget = 0xffffffff

var (
	bigOne  = big.NewInt(1)
	bigZero = big.NewInt(0)
)

// ToBig decodes c into the 256-bit unsigned integer it represents. ok is
// false if c is CompactNaN or otherwise decodes to a negative or
// over-256-bit value, in which case the returned *big.Int is nil.
//
// Ported from the compact-target convention used throughout the
// btcsuite/btcd family (the same encoding bitcoind calls nBits); see
// chaincfg/params.go in this module for the equivalent big.Int-based pow
// limit construction this decoding feeds into.
func ToBig(c CompactTarget) (result *big.Int, ok bool) {
	if c == CompactNaN {
		return nil, false
	}

	mantissa := uint32(c) & 0x007fffff
	isNegative := uint32(c)&0x00800000 != 0
	exponent := uint(uint32(c) >> 24)

	var n *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		n = big.NewInt(int64(mantissa))
	} else {
		n = big.NewInt(int64(mantissa))
		n.Lsh(n, 8*(exponent-3))
	}

	if isNegative {
		return nil, false
	}
	if n.BitLen() > 256 {
		return nil, false
	}
	return n, true
}

// FromBig encodes n, a non-negative integer of at most 256 bits, into its
// compact representation. It returns CompactNaN if n is negative or
// exceeds 256 bits.
func FromBig(n *big.Int) CompactTarget {
	if n.Sign() < 0 || n.BitLen() > 256 {
		return CompactNaN
	}
	if n.Sign() == 0 {
		return 0
	}

	exponent := uint(len(n.Bytes()))

	var mantissa uint32
	if exponent <= 3 {
		mantissa = uint32(n.Uint64())
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Rsh(n, 8*(exponent-3))
		mantissa = uint32(tn.Uint64())
	}

	// If the mantissa's high bit would be interpreted as a sign bit,
	// shift right one byte and bump the exponent so the value stays
	// positive.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	return CompactTarget(exponent<<24 | mantissa)
}

// Compare decodes a and b and returns -1, 0, or 1 as a < b, a == b, or
// a > b, treating CompactNaN (or any otherwise-undecodable value) as
// greater than every decodable value — an overflowed accumulator always
// wins a naive comparison, which is why AddSaturating exists to keep that
// from silently happening for a single block's difficulty.
func Compare(a, b CompactTarget) int {
	na, okA := ToBig(a)
	nb, okB := ToBig(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	default:
		return na.Cmp(nb)
	}
}

// AddSaturating decodes a and b to 256-bit integers, adds them, and
// re-encodes the sum as a CompactTarget. If either operand is CompactNaN,
// or the sum itself no longer fits in 256 bits, it returns CompactNaN.
//
// Every call loses the precision compact encoding can't carry (24 bits of
// mantissa) even when no overflow occurs — an expected approximation the
// redesign keeps rather than switching cumulative difficulty to an
// unbounded accumulator.
func AddSaturating(a, b CompactTarget) CompactTarget {
	na, okA := ToBig(a)
	nb, okB := ToBig(b)
	if !okA || !okB {
		return CompactNaN
	}
	sum := new(big.Int).Add(na, nb)
	return FromBig(sum)
}

// Target decodes bits as the 256-bit proof-of-work threshold a header hash
// must not exceed. ok is false for a malformed bits field.
func Target(bits uint32) (target *big.Int, ok bool) {
	return ToBig(CompactTarget(bits))
}

// Work computes the proof-of-work contributed by a header with the given
// bits, as 2^256 / (target+1) — the standard way of turning "a lower
// target is harder" into "a bigger number is more work" — truncated
// through the compact encoding so it can be accumulated with
// AddSaturating.
func Work(bits uint32) CompactTarget {
	target, ok := Target(bits)
	if !ok || target.Sign() == 0 {
		return CompactNaN
	}

	denominator := new(big.Int).Add(target, bigOne)
	numerator := new(big.Int).Lsh(bigOne, 256)
	work := new(big.Int).Div(numerator, denominator)
	return FromBig(work)
}
