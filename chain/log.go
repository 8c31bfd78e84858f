// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import "github.com/btcsuite/btclog"

// log is the package-level logger used throughout chain. It defaults to
// discarding all output so the package is silent until a caller wires up
// a real backend with UseLogger, the same convention btcd-family
// subsystems use.
var log = btclog.Disabled

// UseLogger sets the package-wide logger. This should be called before
// the chain starts accepting headers if log output is desired.
func UseLogger(logger btclog.Logger) {
	log = logger
}
