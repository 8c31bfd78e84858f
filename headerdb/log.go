// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import "github.com/btcsuite/btclog"

// log is the package-level logger used throughout headerdb. It defaults to
// discarding all output so the package is silent until a caller wires up a
// real backend with UseLogger.
var log = btclog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
