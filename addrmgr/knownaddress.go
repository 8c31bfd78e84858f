// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrmgr

import (
	"math"
	"time"

	"github.com/toole-brendan/spv-node/wire"
)

const (
	// numMissingDays is how long an address may go with no reported
	// activity before it is marked bad.
	numMissingDays = 30

	// numRetries is the number of failed connection attempts a never-
	// succeeded address tolerates before it is marked bad.
	numRetries = 3

	// maxFailures is the number of failed attempts an address tolerates,
	// once it has gone minBadDays without a success, before it is marked
	// bad.
	maxFailures = 10

	// minBadDays is how long an address must have gone without a success
	// for its failure count to mark it bad.
	minBadDays = 7
)

// KnownAddress tracks a single peer address and our connection history
// with it: a table of these, keyed by ip:port, is all the peer discovery
// an SPV node does; it never performs active peer discovery beyond
// recording what it's told.
type KnownAddress struct {
	na          *wire.NetAddress
	attempts    int
	lastattempt time.Time
	lastsuccess time.Time
	tried       bool
}

// NetAddress returns the wire address this entry describes.
func (ka *KnownAddress) NetAddress() *wire.NetAddress {
	return ka.na
}

// isBad reports whether this address has failed enough, recently enough,
// that it should not be retried. Grounded in the addrmgr convention the
// teacher's export_test.go exposes (isBad/chance), generalized here to a
// node that doesn't maintain new/tried buckets, only a pass/fail history
// per address.
func (ka *KnownAddress) isBad() bool {
	if ka.lastattempt.After(time.Now().Add(-1 * time.Minute)) {
		return false
	}

	// Over a month since it was last seen at all: treat it as gone.
	lastSeen := time.Unix(int64(ka.na.Timestamp), 0)
	if lastSeen.Before(time.Now().Add(-1 * numMissingDays * 24 * time.Hour)) {
		return true
	}

	if ka.lastsuccess.IsZero() && ka.attempts >= numRetries {
		return true
	}

	if ka.lastsuccess.Before(time.Now().Add(-1*minBadDays*24*time.Hour)) && ka.attempts >= maxFailures {
		return true
	}

	return false
}

// chance returns this address's relative likelihood of being chosen for
// the next connection attempt: recently attempted or frequently failing
// addresses are down-weighted exponentially.
func (ka *KnownAddress) chance() float64 {
	now := time.Now()
	lastAttempt := now.Sub(ka.lastattempt)
	if lastAttempt < 0 {
		lastAttempt = 0
	}

	c := 1.0
	if lastAttempt < 10*time.Minute {
		c *= 0.01
	}
	c *= math.Pow(0.66, float64(ka.attempts))
	return c
}
