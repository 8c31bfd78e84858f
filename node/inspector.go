// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"net/http"
	"sync"
	"time"

	"github.com/btcsuite/websocket"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// InspectorEvent is one line of the read-only JSON feed a running node
// exposes over a websocket, letting an operator watch sync progress
// without polling the header database directly. This has no counterpart
// in the original full node's RPC surface; it is a supplemented feature
// scoped down from it (no control commands, no authentication, no
// request/response — broadcast only).
type InspectorEvent struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Height    int32           `json:"height,omitempty"`
	Hash      string          `json:"hash,omitempty"`
	PeerState string `json:"peer_state,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Inspector fans out InspectorEvents to every currently-connected
// websocket client. A slow or stalled client misses events while its
// queue is full rather than back-pressuring the rest.
type Inspector struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan InspectorEvent

	upgrader websocket.Upgrader
}

// NewInspector constructs an Inspector ready to be mounted on an
// http.ServeMux.
func NewInspector() *Inspector {
	return &Inspector{
		clients: make(map[*websocket.Conn]chan InspectorEvent),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and registers it as an event
// subscriber until the client disconnects.
func (in *Inspector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := in.upgrader.Upgrade(w, r, nil)
	if err != nil {
		nodeLog.Warnf("inspector: upgrade failed: %v", err)
		return
	}

	ch := make(chan InspectorEvent, 64)
	in.mu.Lock()
	in.clients[conn] = ch
	in.mu.Unlock()

	defer func() {
		in.mu.Lock()
		delete(in.clients, conn)
		in.mu.Unlock()
		conn.Close()
	}()

	for event := range ch {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}

// Broadcast delivers event to every connected client, dropping it for
// any client whose queue is already full rather than blocking.
func (in *Inspector) Broadcast(event InspectorEvent) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for conn, ch := range in.clients {
		select {
		case ch <- event:
		default:
			nodeLog.Debugf("inspector: dropping event for slow client %v", conn.RemoteAddr())
		}
	}
}

// headerAddedEvent builds the event broadcast whenever the chain engine
// reports a header through its add callback, on or off the active chain.
func headerAddedEvent(hash chainhash.Hash, height int32) InspectorEvent {
	return InspectorEvent{
		Type:      "header_added",
		Timestamp: time.Now().Unix(),
		Height:    height,
		Hash:      hash.String(),
	}
}

// headerRemovedEvent builds the event broadcast whenever a reorg detaches
// a header from the active chain.
func headerRemovedEvent(hash chainhash.Hash, height int32) InspectorEvent {
	return InspectorEvent{
		Type:      "header_removed",
		Timestamp: time.Now().Unix(),
		Height:    height,
		Hash:      hash.String(),
	}
}

// peerStateEvent builds the event broadcast whenever the managed peer
// session transitions state.
func peerStateEvent(state, detail string) InspectorEvent {
	return InspectorEvent{
		Type:      "peer_state",
		Timestamp: time.Now().Unix(),
		PeerState: state,
		Detail:    detail,
	}
}
