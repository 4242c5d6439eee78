// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool"
)

const sampleConfig = `
owner: 0x7567d83b7b8d80addcb281a71d54fc7b3364ffed
denom: uluna
targetToken: 0x0000000000000000000000000000456e65726779
ratioSource: 0xd3ef28df6b553ed2fc47259e8134319cb1121a2a
feeRate: 30
ratio: "1.02"
`

func TestLoadPoolConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	settings, err := loadPoolConfig(path)
	require.NoError(t, err)

	assert.Equal(t, pool.Config{
		Owner:       lswap.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"),
		Denom:       "uluna",
		TargetToken: lswap.MustParseAddress("0x0000000000000000000000000000456e65726779"),
		RatioSource: lswap.MustParseAddress("0xd3ef28df6b553ed2fc47259e8134319cb1121a2a"),
		FeeRate:     30,
	}, settings.config)
	require.NotNil(t, settings.ratio)
	assert.Equal(t, "1.02", settings.ratio.String())

	_, err = loadPoolConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodePoolConfigDefaults(t *testing.T) {
	settings, err := decodePoolConfig(strings.NewReader("denom: uluna\n"))
	require.NoError(t, err)
	assert.Equal(t, pool.DefaultFeeRate, settings.config.FeeRate)
	assert.True(t, settings.config.Owner.IsZero())
	assert.Nil(t, settings.ratio)
}

func TestDecodePoolConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "denom: uluna\nfee: 1\n"},
		{"bad owner", "owner: 0x12\n"},
		{"bad ratio", "ratio: abc\n"},
		{"bad fee", "feeRate: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePoolConfig(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}
