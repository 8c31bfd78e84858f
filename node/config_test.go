// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/spv-node/chaincfg"
)

func TestSplitDebugLevelSingleBareLevel(t *testing.T) {
	parts := splitDebugLevel("debug")
	require.Equal(t, []string{"debug"}, parts)
}

func TestSplitDebugLevelMultipleClauses(t *testing.T) {
	parts := splitDebugLevel("CHAN=debug,PEER=trace")
	require.Equal(t, []string{"CHAN=debug", "PEER=trace"}, parts)
}

func TestSplitSubsystemLevelParsesClause(t *testing.T) {
	subsystem, level, err := splitSubsystemLevel("CHAN=debug")
	require.NoError(t, err)
	require.Equal(t, "CHAN", subsystem)
	require.Equal(t, "debug", level)
}

func TestSplitSubsystemLevelRejectsMalformedClause(t *testing.T) {
	_, _, err := splitSubsystemLevel("nodelimiter")
	require.Error(t, err)
}

func TestParamsForNetworkType(t *testing.T) {
	cases := map[string]*chaincfg.Params{
		"":         &chaincfg.MainNetParams,
		"mainnet":  &chaincfg.MainNetParams,
		"testnet":  &chaincfg.TestNet3Params,
		"testnet3": &chaincfg.TestNet3Params,
		"regtest":  &chaincfg.RegressionNetParams,
	}
	for networkType, want := range cases {
		got, err := paramsForNetworkType(networkType)
		require.NoError(t, err, networkType)
		require.Same(t, want, got, networkType)
	}
}

func TestParamsForNetworkTypeRejectsUnknown(t *testing.T) {
	_, err := paramsForNetworkType("not-a-network")
	require.Error(t, err)
}

func TestApplyFileConfigOnlyOverridesPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spvnode.conf")
	require.NoError(t, os.WriteFile(path, []byte(`{"fullnode":"10.0.0.5","port":"8333"}`), 0600))

	cfg := defaultConfig()
	require.NoError(t, applyFileConfig(&cfg, path))

	require.Equal(t, "10.0.0.5", cfg.FullNode)
	require.Equal(t, "8333", cfg.Port)
	require.Equal(t, defaultMaxRetries, cfg.MaxRetries, "unset JSON keys must not clobber defaults")
}

func TestApplyFileConfigIgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spvnode.conf")
	require.NoError(t, os.WriteFile(path, []byte(`{"fullnode":"10.0.0.5","port":"8333","bogus":"ignored"}`), 0600))

	cfg := defaultConfig()
	require.NoError(t, applyFileConfig(&cfg, path))
	require.Equal(t, "10.0.0.5", cfg.FullNode)
}
