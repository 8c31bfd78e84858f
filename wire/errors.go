// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "fmt"

// errMaxEntries builds the standard "too many entries" error for the
// named list-bearing message.
func errMaxEntries(command string) error {
	return fmt.Errorf("%s message exceeds the maximum of %d entries", command, MaxInvEntries)
}
