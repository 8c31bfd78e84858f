// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/toole-brendan/spv-node/addrmgr"
	"github.com/toole-brendan/spv-node/chain"
	"github.com/toole-brendan/spv-node/headerdb"
	"github.com/toole-brendan/spv-node/peer"
)

// logRotator writes to a rotating log file once initLogRotator has run.
// Until then it is nil and the backend writes to stdout only.
var logRotator *rotator.Rotator

// subsystemLoggers maps each package's logging tag to its btclog.Logger,
// mirroring btcd's log.go: one tag per subsystem so --debuglevel can
// target any of them independently.
var subsystemLoggers = map[string]btclog.Logger{}

var backendLog = btclog.NewBackend(logWriter{})

type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// initLogRotator opens (creating if necessary) a rotating log file at
// logFile, capped at 10MiB per file with 3 rolls retained, the same
// bound btcd-family nodes use for their default logging setup.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("node: creating log directory: %w", err)
	}

	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("node: initializing log rotation: %w", err)
	}
	logRotator = r
	return nil
}

func logger(subsystem string) btclog.Logger {
	l, ok := subsystemLoggers[subsystem]
	if ok {
		return l
	}
	l = backendLog.Logger(subsystem)
	subsystemLoggers[subsystem] = l
	return l
}

// useLoggers wires every subsystem's package-level logger to this
// process's backend, then applies level to each — the direct equivalent
// of btcd's log.go useLogger loop.
func useLoggers(level btclog.Level) {
	chainLog := logger("CHAN")
	chainLog.SetLevel(level)
	chain.UseLogger(chainLog)

	headerdbLog := logger("HDDB")
	headerdbLog.SetLevel(level)
	headerdb.UseLogger(headerdbLog)

	addrmgrLog := logger("ADXR")
	addrmgrLog.SetLevel(level)
	addrmgr.UseLogger(addrmgrLog)

	peerLog := logger("PEER")
	peerLog.SetLevel(level)
	peer.UseLogger(peerLog)

	nodeLog.SetLevel(level)
}

// nodeLog is this package's own logger, tagged "NODE".
var nodeLog = logger("NODE")

// setLogLevels parses a "subsystem=level,subsystem=level" string as
// accepted by --debuglevel, falling back to applying a single bare level
// to every subsystem when no '=' is present.
func setLogLevels(debugLevel string) error {
	if debugLevel == "" {
		debugLevel = "info"
	}

	if level, ok := btclog.LevelFromString(debugLevel); ok {
		useLoggers(level)
		return nil
	}

	// Wire every subsystem at the default level first, so each tag is
	// registered before the per-subsystem overrides below apply.
	useLoggers(btclog.LevelInfo)

	for _, spec := range splitDebugLevel(debugLevel) {
		subsystem, levelStr, err := splitSubsystemLevel(spec)
		if err != nil {
			return err
		}
		level, ok := btclog.LevelFromString(levelStr)
		if !ok {
			return fmt.Errorf("node: invalid log level %q for subsystem %q", levelStr, subsystem)
		}
		l, ok := subsystemLoggers[subsystem]
		if !ok {
			return fmt.Errorf("node: unknown subsystem %q", subsystem)
		}
		l.SetLevel(level)
	}
	return nil
}

func splitDebugLevel(s string) []string {
	var parts []string
	start := 0
	for i, c := range s {
		if c == ',' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func splitSubsystemLevel(spec string) (subsystem, level string, err error) {
	for i, c := range spec {
		if c == '=' {
			return spec[:i], spec[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("node: malformed debuglevel clause %q, want subsystem=level", spec)
}
