// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd || netbsd || openbsd

package peer

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// pollTickMillis bounds how long Run's poll call blocks before it
// re-checks the one-shot terminate flag.
const pollTickMillis = 100

// ioDeadline backstops every read/write the loop issues once poll has
// reported the socket ready, so a fd that changes state between the poll
// call and the syscall can never wedge the loop past the next tick.
const ioDeadline = 250 * time.Millisecond

var terminateRequested int32

// RequestTerminate arms the one-shot shutdown flag every running Session
// checks once per poll tick. It is safe to call from a signal handler.
func RequestTerminate() {
	atomic.StoreInt32(&terminateRequested, 1)
}

func wantsTerminate() bool {
	return atomic.LoadInt32(&terminateRequested) == 1
}

// WatchSignals arms SIGINT and SIGUSR1 as graceful-shutdown triggers:
// either one calls RequestTerminate exactly once, the first to arrive.
// SIGPIPE and SIGHUP are ignored entirely at the session level — a peer
// closing its write side or a controlling terminal hanging up must never
// kill the process outright.
func WatchSignals() {
	signal.Ignore(syscall.SIGPIPE, syscall.SIGHUP)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, unix.SIGUSR1)
	go func() {
		<-ch
		RequestTerminate()
	}()
}

func rawConnOf(conn net.Conn) (syscall.RawConn, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil, fmt.Errorf("peer: connection type %T exposes no raw file descriptor", conn)
	}
	return sc.SyscallConn()
}

// Run drives the session's steady-state event loop: once past the
// synchronous handshake, it owns the socket exclusively, polling at
// pollTickMillis for read-ready, write-ready (only while the outbound
// queue is non-empty), hangup, and error conditions. It returns when the
// connection closes, a handler reports a session-fatal error, or
// RequestTerminate has been called.
func (s *Session) Run() error {
	rc, err := rawConnOf(s.conn)
	if err != nil {
		return err
	}

	var fd int
	if ctrlErr := rc.Control(func(f uintptr) { fd = int(f) }); ctrlErr != nil {
		return fmt.Errorf("peer: reading raw fd: %w", ctrlErr)
	}

	// Drain any extra messages the handshake's synchronous reads already
	// pulled off the wire (e.g. a peer that coalesces VERACK with a
	// following PING into one packet) before handing the socket to poll.
	for len(s.pending) > 0 {
		msg := s.pending[0]
		s.pending = s.pending[1:]
		if err := s.HandleMessage(msg); err != nil {
			return err
		}
	}

	for {
		if wantsTerminate() {
			s.state = StateTerminating
			return nil
		}

		s.outMu.Lock()
		wantWrite := len(s.outbuf) > 0
		s.outMu.Unlock()

		events := int16(unix.POLLIN)
		if wantWrite {
			events |= int16(unix.POLLOUT)
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
		n, perr := unix.Poll(fds, pollTickMillis)
		if perr != nil {
			if perr == unix.EINTR {
				continue
			}
			return fmt.Errorf("peer: poll: %w", perr)
		}
		if n == 0 {
			continue
		}

		revents := fds[0].Revents
		if revents&(unix.POLLERR|unix.POLLHUP) != 0 {
			return errors.New("peer: connection closed by peer")
		}

		if revents&unix.POLLOUT != 0 {
			if err := s.flushOutbound(); err != nil {
				return err
			}
		}

		if revents&unix.POLLIN != 0 {
			if err := s.pumpInbound(); err != nil {
				return err
			}
		}
	}
}

// flushOutbound writes as much of the outbound queue as the socket will
// currently accept, leaving any remainder queued for the next write-ready
// wakeup.
func (s *Session) flushOutbound() error {
	s.outMu.Lock()
	buf := s.outbuf
	s.outMu.Unlock()
	if len(buf) == 0 {
		return nil
	}

	s.conn.SetWriteDeadline(time.Now().Add(ioDeadline))
	n, err := s.conn.Write(buf)

	s.outMu.Lock()
	s.outbuf = s.outbuf[n:]
	s.outMu.Unlock()

	if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("peer: writing outbound: %w", err)
	}
	return nil
}

// pumpInbound reads whatever is currently available, extracts and
// dispatches every complete frame it yields, and leaves any partial
// frame buffered for the next read-ready wakeup.
func (s *Session) pumpInbound() error {
	s.conn.SetReadDeadline(time.Now().Add(ioDeadline))
	chunk := make([]byte, 4096)
	n, err := s.conn.Read(chunk)
	if n > 0 {
		s.inbuf = append(s.inbuf, chunk[:n]...)
		msgs, extractErr := s.extractReady()
		for _, msg := range msgs {
			if herr := s.HandleMessage(msg); herr != nil {
				return herr
			}
		}
		if extractErr != nil {
			return extractErr
		}
	}
	if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("peer: reading inbound: %w", err)
	}
	return nil
}
