// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/toole-brendan/spv-node/wire"
)

// buildHeadersReject constructs the reject message this node sends back
// when a peer's headers batch fails chain validation. The original full
// node does this for every rejected message type; an SPV client only
// ever rejects headers, so this is the one reject path the sync driver
// needs. MsgReject.Hash is only meaningful for "tx"/"block" rejects, so a
// "headers" reject carries no hash and this takes none.
func buildHeadersReject(reason string) *wire.MsgReject {
	return &wire.MsgReject{
		Cmd:    wire.CmdHeaders,
		Code:   wire.RejectInvalid,
		Reason: reason,
	}
}
