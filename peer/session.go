// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer implements the single-connection session state machine:
// version handshake, ping/pong heartbeat, the header-sync request/
// response loop, and a bounded outbound queue over a nonblocking socket.
package peer

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/btcsuite/go-socks/socks"

	"github.com/toole-brendan/spv-node/addrmgr"
	"github.com/toole-brendan/spv-node/chain"
	"github.com/toole-brendan/spv-node/chaincfg"
	"github.com/toole-brendan/spv-node/wire"
)

// State names every point in the session state machine.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateHandshaking
	StateSyncedIdle
	StateSyncing
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateHandshaking:
		return "handshaking"
	case StateSyncedIdle:
		return "synced_idle"
	case StateSyncing:
		return "syncing"
	case StateTerminating:
		return "terminating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// defaultUserAgent identifies this node in its outbound VERSION message.
const defaultUserAgent = "/spv-node:0.1.0/"

// maxGetHeadersLocator is the locator length used for every GETHEADERS
// request, the first one and each follow-up: up to 100 hashes.
const maxGetHeadersLocator = 100

// Config carries everything a Session needs to dial and negotiate with a
// single full-node peer. Persisting accepted headers is the chain
// engine's concern (driven by its AddBlockFunc/RemoveBlockFunc
// callbacks), not the session's, so Config carries no store reference.
type Config struct {
	Params     *chaincfg.Params
	Chain      *chain.Chain
	Addrs      *addrmgr.AddrManager
	Host       string
	Port       string
	MaxRetries int
	// ProxyAddr, if set, routes the outbound dial through a SOCKS5
	// proxy at this address instead of dialing directly.
	ProxyAddr string
	UserAgent string
}

// Session is a single connection to a full-node peer, plus its derived
// state: negotiated version, peer start height, the send-headers
// preference, and the dispatch table.
type Session struct {
	cfg   Config
	state State

	conn net.Conn

	inbuf   []byte
	pending []wire.Message

	outMu  sync.Mutex
	outbuf []byte

	handlers map[string]HandlerFunc

	peerVersion int32
	peerHeight  int32
	sendHeaders bool

	retries int
	quit    chan struct{}
}

// HandlerFunc processes one fully-framed, already-parsed inbound message.
// Returning an error is session-fatal: it tears down the connection.
type HandlerFunc func(s *Session, msg wire.Message) error

// New constructs a Session in the disconnected state with the default
// dispatch table installed; callers may override individual handlers
// before calling Run.
func New(cfg Config) *Session {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	s := &Session{
		cfg:      cfg,
		state:    StateDisconnected,
		handlers: defaultHandlers(),
		quit:     make(chan struct{}),
	}
	return s
}

// SetHandler overrides the handler for command, a run-time dispatch-
// table override in place of fixed function-pointer struct fields.
func (s *Session) SetHandler(command string, h HandlerFunc) {
	s.handlers[command] = h
}

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// PeerVersion returns the negotiated peer protocol version, valid once
// past StateHandshaking.
func (s *Session) PeerVersion() int32 { return s.peerVersion }

// PeerHeight returns the peer's reported start height from its VERSION
// message.
func (s *Session) PeerHeight() int32 { return s.peerHeight }

func dialAddr(cfg Config) (net.Conn, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	if cfg.ProxyAddr != "" {
		proxy := &socks.Proxy{Addr: cfg.ProxyAddr}
		return proxy.Dial("tcp", addr)
	}
	return net.DialTimeout("tcp", addr, 10*time.Second)
}

// Connect dials the configured peer and runs the VERSION/VERACK
// handshake, leaving the session in StateSyncedIdle on success.
func (s *Session) Connect() error {
	s.state = StateConnecting
	if s.cfg.Addrs != nil {
		if ip := net.ParseIP(s.cfg.Host); ip != nil {
			if port, err := strconv.ParseUint(s.cfg.Port, 10, 16); err == nil {
				s.cfg.Addrs.Attempt(ip, uint16(port))
			}
		}
	}

	conn, err := dialAddr(s.cfg)
	if err != nil {
		s.state = StateDisconnected
		return fmt.Errorf("peer: dialing %s:%s: %w", s.cfg.Host, s.cfg.Port, err)
	}
	s.conn = conn
	s.state = StateHandshaking

	if err := s.handshake(); err != nil {
		conn.Close()
		s.state = StateDisconnected
		return err
	}

	if s.cfg.Addrs != nil {
		if ip := net.ParseIP(s.cfg.Host); ip != nil {
			if port, err := strconv.ParseUint(s.cfg.Port, 10, 16); err == nil {
				s.cfg.Addrs.Connected(ip, uint16(port))
			}
		}
	}

	s.state = StateSyncedIdle
	return nil
}

// handshake sends this node's VERSION message, then blocks on reading
// frames until the peer's VERSION and VERACK have both been processed.
func (s *Session) handshake() error {
	version, err := s.buildVersionMessage()
	if err != nil {
		return fmt.Errorf("peer: building version message: %w", err)
	}
	if err := s.sendImmediate(version); err != nil {
		return fmt.Errorf("peer: sending version: %w", err)
	}

	var gotVersion, gotVerAck bool
	for !gotVersion || !gotVerAck {
		msg, err := s.readMessage()
		if err != nil {
			return fmt.Errorf("peer: handshake: %w", err)
		}

		switch m := msg.(type) {
		case *wire.MsgVersion:
			s.peerVersion = m.ProtocolVersion
			s.peerHeight = m.LastBlock
			gotVersion = true
			if err := s.sendImmediate(&wire.MsgVerAck{}); err != nil {
				return fmt.Errorf("peer: sending verack: %w", err)
			}
		case *wire.MsgVerAck:
			gotVerAck = true
		default:
			// A well-behaved peer only sends version/verack this
			// early; anything else is ignored rather than failing
			// the handshake outright.
		}
	}
	return nil
}

func (s *Session) buildVersionMessage() (*wire.MsgVersion, error) {
	var nonceBuf [8]byte
	if _, err := rand.Read(nonceBuf[:]); err != nil {
		return nil, err
	}

	services := wire.SFNodeNetwork | wire.SFNodeNetworkLimited | wire.SFNodeWitness

	recvIP := net.ParseIP(s.cfg.Host)
	if recvIP == nil {
		recvIP = net.IPv4zero
	}
	port, _ := strconv.ParseUint(s.cfg.Port, 10, 16)

	var startHeight int32
	if s.cfg.Chain != nil {
		startHeight = s.cfg.Chain.Height()
	}

	return &wire.MsgVersion{
		ProtocolVersion: int32(wire.ProtocolVersion),
		Services:        services,
		Timestamp:       time.Now().Unix(),
		AddrRecv:        wire.NetAddress{IP: recvIP.To16(), Port: uint16(port)},
		AddrFrom:        wire.NetAddress{IP: net.IPv6zero, Port: 0},
		Nonce:           binary.LittleEndian.Uint64(nonceBuf[:]),
		UserAgent:       s.cfg.UserAgent,
		LastBlock:       startHeight,
		DisableRelayTx:  false,
	}, nil
}

// StartSync enters StateSyncing and sends the first GETHEADERS built from
// the chain's current locator.
func (s *Session) StartSync() error {
	s.state = StateSyncing
	return s.requestHeaders()
}

func (s *Session) requestHeaders() error {
	locator := s.cfg.Chain.Locator(maxGetHeadersLocator)
	msg := &wire.MsgGetHeaders{
		ProtocolVersion: minVersion(uint32(s.peerVersion), wire.ProtocolVersion),
	}
	for i := range locator {
		h := locator[i]
		if err := msg.AddBlockLocatorHash(&h); err != nil {
			return err
		}
	}
	return s.Send(msg)
}

func minVersion(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// HandleMessage dispatches msg to its registered handler, or logs and
// discards it if none is registered.
func (s *Session) HandleMessage(msg wire.Message) error {
	h, ok := s.handlers[msg.Command()]
	if !ok {
		log.Debugf("no handler registered for %q, discarding", msg.Command())
		return nil
	}
	return h(s, msg)
}

// Send queues msg on the outbound buffer under the outbound mutex; the
// event loop drains it on the next write-ready wakeup.
func (s *Session) Send(msg wire.Message) error {
	frame, err := wire.EncodeMessage(msg, minVersion(uint32(s.peerVersion), wire.ProtocolVersion), s.cfg.Params.Net)
	if err != nil {
		return err
	}
	s.outMu.Lock()
	s.outbuf = append(s.outbuf, frame...)
	s.outMu.Unlock()
	return nil
}

// sendImmediate writes msg straight to the connection, used only during
// the synchronous handshake before the event loop owns the socket.
func (s *Session) sendImmediate(msg wire.Message) error {
	frame, err := wire.EncodeMessage(msg, wire.ProtocolVersion, s.cfg.Params.Net)
	if err != nil {
		return err
	}
	_, err = s.conn.Write(frame)
	return err
}

// extractReady pulls as many complete, parsed messages as s.inbuf
// currently holds, trimming consumed bytes off its front and leaving any
// trailing partial frame for the next call. A non-fatal FrameError (bad
// checksum) or a parse error drops just that one message and continues;
// a fatal FrameError (bad magic or an oversized declared length) is
// returned to the caller, which must
// drop the connection.
func (s *Session) extractReady() ([]wire.Message, error) {
	var msgs []wire.Message
	for {
		consumed, command, payload, err := wire.ExtractFrame(s.inbuf, s.cfg.Params.Net)
		switch {
		case err == wire.ErrIncompleteFrame:
			return msgs, nil
		case err != nil:
			fe, ok := err.(*wire.FrameError)
			if !ok {
				return msgs, err
			}
			s.inbuf = s.inbuf[consumed:]
			if fe.Fatal {
				return msgs, fe
			}
			log.Debugf("dropping frame: %v", fe)
			continue
		default:
			s.inbuf = s.inbuf[consumed:]
			msg, perr := wire.ParsePayload(command, payload, wire.ProtocolVersion)
			if perr != nil {
				log.Debugf("dropping malformed %q payload: %v", command, perr)
				continue
			}
			msgs = append(msgs, msg)
		}
	}
}

// readMessage blocks, reading more bytes from the connection as needed,
// until exactly one framed message has been parsed. It is used only
// during the synchronous handshake; the steady-state event loop instead
// drives extractReady off nonblocking reads (see loop_unix.go).
func (s *Session) readMessage() (wire.Message, error) {
	for {
		msgs, err := s.extractReady()
		if len(msgs) > 0 {
			// extractReady may have parsed more than one message
			// out of already-buffered bytes (e.g. a peer that
			// coalesces VERSION and VERACK into one packet);
			// return the rest on the next call.
			if len(msgs) > 1 {
				s.pending = append(s.pending, msgs[1:]...)
			}
			return msgs[0], nil
		}
		if err != nil {
			return nil, err
		}
		if len(s.pending) > 0 {
			msg := s.pending[0]
			s.pending = s.pending[1:]
			return msg, nil
		}

		chunk := make([]byte, 4096)
		n, rerr := s.conn.Read(chunk)
		if n > 0 {
			s.inbuf = append(s.inbuf, chunk[:n]...)
		}
		if rerr != nil {
			return nil, rerr
		}
	}
}

// Close tears down the connection and clears buffered bytes.
func (s *Session) Close() error {
	s.state = StateDisconnected
	s.inbuf = nil
	s.pending = nil
	s.outMu.Lock()
	s.outbuf = nil
	s.outMu.Unlock()
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
