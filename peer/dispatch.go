// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/toole-brendan/spv-node/chain"
	"github.com/toole-brendan/spv-node/wire"
)

// defaultHandlers returns the dispatch table installed on every new
// Session, keyed by message command. Application code overrides entries
// with SetHandler at startup.
func defaultHandlers() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		wire.CmdPing:    handlePing,
		wire.CmdPong:    handlePong,
		wire.CmdHeaders: handleHeaders,
		wire.CmdAddr:    handleAddr,
		wire.CmdReject:  handleReject,
		wire.CmdVersion: handleUnexpectedVersion,
		wire.CmdVerAck:  handleUnexpectedVerAck,
	}
}

// handlePing answers every PING with a PONG carrying the same nonce, the
// heartbeat required in any session state.
func handlePing(s *Session, msg wire.Message) error {
	ping := msg.(*wire.MsgPing)
	return s.Send(&wire.MsgPong{Nonce: ping.Nonce})
}

// handlePong is a no-op: this node never measures round-trip latency, it
// only answers the peer's pings.
func handlePong(s *Session, msg wire.Message) error {
	return nil
}

// handleHeaders implements the sync driver's HEADERS branch: insert every
// header in order. A header that fails chain validation is rejected
// (replied to with a reject message) and skipped, not treated as
// session-fatal — a bad header from an otherwise well-behaved peer
// doesn't warrant tearing down the connection. Persisting an accepted
// header is the chain engine's job (its AddBlockFunc callback), so this
// handler only drives insertion, not storage — that keeps orphan
// reconnects and reorg re-adds, which never pass back through here,
// persisted the same way a direct insert is. The session either requests
// more headers (non-empty batch) or settles into synced_idle (empty
// batch).
func handleHeaders(s *Session, msg wire.Message) error {
	headers := msg.(*wire.MsgHeaders)

	if len(headers.Headers) == 0 {
		s.state = StateSyncedIdle
		return nil
	}

	for _, entry := range headers.Headers {
		hash := entry.Header.BlockHash()
		result := s.cfg.Chain.Insert(entry.Header, uint32(entry.TxnCount))

		if result == chain.Rejected {
			reject := buildHeadersReject("proof-of-work or linkage validation failed")
			if sendErr := s.Send(reject); sendErr != nil {
				log.Warnf("failed sending reject for rejected header: %v", sendErr)
			}
			log.Debugf("rejected header %s, continuing session", hash)
			continue
		}
	}

	s.state = StateSyncing
	return s.requestHeaders()
}

// handleAddr records every advertised address in the address manager, the
// only peer-discovery behavior this node performs.
func handleAddr(s *Session, msg wire.Message) error {
	addrMsg := msg.(*wire.MsgAddr)
	if s.cfg.Addrs == nil {
		return nil
	}
	for _, na := range addrMsg.AddrList {
		s.cfg.Addrs.AddAddress(na)
	}
	return nil
}

// handleReject logs the peer's rejection of one of our own messages;
// there is nothing further for an SPV client to do with it.
func handleReject(s *Session, msg wire.Message) error {
	reject := msg.(*wire.MsgReject)
	log.Warnf("peer rejected %q: %s (code 0x%x)", reject.Cmd, reject.Reason, uint8(reject.Code))
	return nil
}

// handleUnexpectedVersion logs a VERSION received outside the handshake;
// it should never reach the dispatch table since the synchronous
// handshake consumes it directly, but a misbehaving peer that resends it
// must not crash the session.
func handleUnexpectedVersion(s *Session, msg wire.Message) error {
	log.Debugf("ignoring unexpected version message from %v after handshake", s.conn.RemoteAddr())
	return nil
}

func handleUnexpectedVerAck(s *Session, msg wire.Message) error {
	return nil
}
